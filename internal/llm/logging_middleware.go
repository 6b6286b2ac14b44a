package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// previewLength bounds prompt and response previews when redaction is off.
const previewLength = 200

// loggingMiddleware records the lifecycle of each invocation.
// With redaction on, only lengths are logged; model output can be long and
// prompts are not secret but are noisy.
type loggingMiddleware struct {
	logger *slog.Logger
	redact bool
}

// NewLoggingMiddleware creates structured logging middleware.
// A nil logger falls back to slog.Default.
func NewLoggingMiddleware(logger *slog.Logger, redact bool) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	lm := &loggingMiddleware{
		logger: logger.With("component", "llm"),
		redact: redact,
	}
	return lm.middleware
}

func (m *loggingMiddleware) middleware(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		if req.TraceID == "" {
			req.TraceID = uuid.New().String()
		}

		m.logRequest(ctx, req)

		start := time.Now()
		resp, err := next.Handle(ctx, req)
		duration := time.Since(start)

		if err != nil {
			m.logger.ErrorContext(ctx, "model invocation failed",
				"request_id", req.TraceID,
				"backend", req.Backend,
				"model", req.Model,
				"level_number", req.LevelNumber,
				"duration_ms", duration.Milliseconds(),
				"error_type", ClassifyError(err),
				"error", err.Error())
			return nil, err
		}

		fields := []any{
			"request_id", req.TraceID,
			"backend", req.Backend,
			"model", req.Model,
			"level_number", req.LevelNumber,
			"duration_ms", duration.Milliseconds(),
		}
		if resp.CompletionTokens > 0 {
			fields = append(fields,
				"prompt_tokens", resp.PromptTokens,
				"completion_tokens", resp.CompletionTokens)
		}
		if m.redact {
			fields = append(fields, "response_length", len(resp.Content))
		} else {
			fields = append(fields, "response_preview", preview(resp.Content))
		}
		m.logger.InfoContext(ctx, "model invocation completed", fields...)

		return resp, nil
	})
}

func (m *loggingMiddleware) logRequest(ctx context.Context, req *Request) {
	fields := []any{
		"request_id", req.TraceID,
		"backend", req.Backend,
		"model", req.Model,
		"level_number", req.LevelNumber,
		"prompt_hash", req.PromptHash,
		"timeout_seconds", req.Timeout.Seconds(),
	}
	if m.redact {
		fields = append(fields, "prompt_length", len(req.Prompt))
	} else {
		fields = append(fields, "prompt_preview", preview(req.Prompt))
	}
	m.logger.InfoContext(ctx, "model invocation started", fields...)
}

func preview(s string) string {
	if len(s) > previewLength {
		return s[:previewLength] + "..."
	}
	return s
}
