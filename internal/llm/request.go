package llm

import "time"

// Backend names a way of reaching the model.
type Backend string

const (
	// BackendCLI runs the model executable once per prompt and captures stdout.
	BackendCLI Backend = "cli"

	// BackendHTTP calls a running Ollama server's generate endpoint.
	BackendHTTP Backend = "http"
)

// Request is one model invocation as seen by the handler chain.
type Request struct {
	// Backend identifies which handler serves the request; set by the client.
	Backend Backend `json:"backend"`

	// Model is the model identifier passed to the backend, e.g. "deepseek-r1".
	Model string `json:"model"`

	// Prompt is the full text sent to the model.
	Prompt string `json:"prompt"`

	// PromptHash is the hex SHA-256 of Prompt, carried for log correlation.
	PromptHash string `json:"prompt_hash"`

	// LevelNumber is the level the prompt asks for.
	LevelNumber int `json:"level_number"`

	// Timeout bounds the invocation; zero waits for completion.
	Timeout time.Duration `json:"timeout"`

	// TraceID correlates log lines; generated by the logging middleware if empty.
	TraceID string `json:"trace_id"`
}

// Response is the captured output of a successful invocation.
type Response struct {
	// Content is the full text produced by the model.
	Content string `json:"content"`

	// LatencyMs is the wall-clock duration of the backend call.
	LatencyMs int64 `json:"latency_ms"`

	// PromptTokens and CompletionTokens are reported by the HTTP backend only.
	PromptTokens     int64 `json:"prompt_tokens,omitempty"`
	CompletionTokens int64 `json:"completion_tokens,omitempty"`
}
