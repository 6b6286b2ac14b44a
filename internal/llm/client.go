package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahrav/levelforge/internal/domain"
)

// Client is the model invocation boundary: given a prompt, return the
// model's text or an error. It never retries.
type Client interface {
	Invoke(ctx context.Context, p domain.Prompt) (domain.RawOutput, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(context.Context, domain.Prompt) (domain.RawOutput, error)

// Invoke implements the Client interface.
func (f ClientFunc) Invoke(ctx context.Context, p domain.Prompt) (domain.RawOutput, error) {
	return f(ctx, p)
}

// Option customises a client built by NewClient.
type Option func(*clientOptions)

type clientOptions struct {
	logger *slog.Logger
	core   Handler
}

// WithLogger sets the logger used by the logging middleware.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithHandler replaces the backend handler, keeping the middleware chain.
func WithHandler(h Handler) Option {
	return func(o *clientOptions) { o.core = h }
}

type client struct {
	cfg     Config
	handler Handler
}

// NewClient builds a client for the configured backend wrapped in logging and,
// if enabled, rate limiting.
func NewClient(cfg Config, opts ...Option) (Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	core := o.core
	if core == nil {
		switch cfg.Backend {
		case BackendCLI:
			if cfg.Executable == "" {
				cfg.Executable = DefaultExecutable
			}
			core = newCLIHandler(cfg.Executable)
		case BackendHTTP:
			core = newOllamaHandler(cfg.Endpoint, cfg.HTTPClient)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
		}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	middlewares := []Middleware{NewLoggingMiddleware(o.logger, cfg.RedactPrompts)}
	if cfg.RateLimit.Enabled {
		rl, err := NewRateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		if err != nil {
			return nil, err
		}
		middlewares = append(middlewares, rl)
	}

	return &client{
		cfg:     cfg,
		handler: Chain(core, middlewares...),
	}, nil
}

// Invoke sends the prompt through the handler chain and returns the full text.
func (c *client) Invoke(ctx context.Context, p domain.Prompt) (domain.RawOutput, error) {
	req := &Request{
		Backend:     c.cfg.Backend,
		Model:       c.cfg.Model,
		Prompt:      p.Text,
		PromptHash:  p.Hash,
		LevelNumber: p.LevelNumber,
		Timeout:     c.cfg.Timeout,
	}

	resp, err := c.handler.Handle(ctx, req)
	if err != nil {
		return "", err
	}
	return domain.RawOutput(resp.Content), nil
}
