package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultOllamaEndpoint is the address of a local Ollama server.
const DefaultOllamaEndpoint = "http://localhost:11434"

const maxErrorBody = 512

// ollamaHandler calls POST /api/generate with streaming disabled so the full
// completion arrives as one JSON document.
type ollamaHandler struct {
	endpoint string
	client   *http.Client
}

func newOllamaHandler(endpoint string, client *http.Client) *ollamaHandler {
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	if client == nil {
		// No client-level timeout; the request context carries any deadline.
		client = &http.Client{}
	}
	return &ollamaHandler{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int64  `json:"prompt_eval_count"`
	EvalCount       int64  `json:"eval_count"`
}

// Handle performs one generate call and returns the model's full response text.
func (h *ollamaHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	reqCtx, cancel := withTimeout(ctx, req)
	defer cancel()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return nil, &InvocationError{Type: ErrorTypeUnknown, Backend: BackendHTTP, Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, h.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &InvocationError{Type: ErrorTypeUnavailable, Backend: BackendHTTP, Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := h.client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		t := contextErrorType(reqCtx)
		if t == "" {
			t = ErrorTypeUnavailable
		}
		return nil, &InvocationError{Type: t, Backend: BackendHTTP, Cause: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return nil, &InvocationError{
			Type:       ErrorTypeStatus,
			Backend:    BackendHTTP,
			StatusCode: httpResp.StatusCode,
			Cause:      fmt.Errorf("ollama returned: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, &InvocationError{Type: ErrorTypeResponse, Backend: BackendHTTP, Cause: fmt.Errorf("decode response: %w", err)}
	}
	if !out.Done {
		return nil, &InvocationError{Type: ErrorTypeResponse, Backend: BackendHTTP, Cause: errors.New("response not marked done")}
	}

	return &Response{
		Content:          out.Response,
		LatencyMs:        latency.Milliseconds(),
		PromptTokens:     out.PromptEvalCount,
		CompletionTokens: out.EvalCount,
	}, nil
}
