package llm

import (
	"net/http"
	"time"
)

// Model runner defaults.
const (
	DefaultExecutable = "ollama"
	DefaultModel      = "deepseek-r1"
)

// Rate limiting defaults, used only when rate limiting is enabled.
const (
	DefaultRequestsPerSecond = 0.2
	DefaultBurstSize         = 1
)

// Config selects and parameterises the model backend.
type Config struct {
	// Backend is "cli" or "http".
	Backend Backend

	// Executable is the model runner for the cli backend.
	Executable string

	// Model is the model identifier passed to either backend.
	Model string

	// Endpoint is the Ollama server base URL for the http backend.
	Endpoint string

	// Timeout bounds each invocation. Zero means wait for completion.
	Timeout time.Duration

	// RedactPrompts logs lengths instead of prompt and response previews.
	RedactPrompts bool

	// RateLimit spaces out invocations when enabled.
	RateLimit RateLimitConfig

	// HTTPClient overrides the client used by the http backend.
	HTTPClient *http.Client
}

// RateLimitConfig controls the local token bucket.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig runs "ollama run deepseek-r1 <prompt>" with no timeout.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendCLI,
		Executable:    DefaultExecutable,
		Model:         DefaultModel,
		Endpoint:      DefaultOllamaEndpoint,
		RedactPrompts: true,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurstSize,
		},
	}
}
