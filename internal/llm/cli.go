package llm

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// maxStderrInError caps how much of the executable's stderr is kept in errors.
const maxStderrInError = 512

// commandFunc builds the command for an invocation; replaced in tests.
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// cliHandler runs "<executable> run <model> <prompt>" and returns stdout.
type cliHandler struct {
	executable string
	command    commandFunc
}

func newCLIHandler(executable string) *cliHandler {
	return &cliHandler{executable: executable, command: exec.CommandContext}
}

// Handle runs the executable to completion. A non-zero exit, a missing
// executable or an expired context all yield an *InvocationError.
func (h *cliHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	runCtx, cancel := withTimeout(ctx, req)
	defer cancel()

	cmd := h.command(runCtx, h.executable, "run", req.Model, req.Prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	latency := time.Since(start)

	if err != nil {
		return nil, h.classify(runCtx, err, stderr.String())
	}

	return &Response{
		Content:   stdout.String(),
		LatencyMs: latency.Milliseconds(),
	}, nil
}

func (h *cliHandler) classify(ctx context.Context, err error, stderr string) *InvocationError {
	invErr := &InvocationError{
		Backend:  BackendCLI,
		ExitCode: -1,
		Stderr:   truncate(strings.TrimSpace(stderr), maxStderrInError),
		Cause:    err,
	}

	if t := contextErrorType(ctx); t != "" {
		invErr.Type = t
		return invErr
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		invErr.Type = ErrorTypeProcess
		invErr.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		invErr.Type = ErrorTypeUnavailable
	default:
		// Start failures such as permission denied land here.
		invErr.Type = ErrorTypeUnavailable
	}
	return invErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
