package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahrav/levelforge/internal/config"
	"github.com/ahrav/levelforge/internal/generation"
	"github.com/ahrav/levelforge/internal/llm"
	"github.com/ahrav/levelforge/internal/storage"
	"github.com/ahrav/levelforge/pkg/events"
)

// InitializeLLMClient creates the model client described by cfg.
func InitializeLLMClient(cfg *config.Config, logger *slog.Logger) (llm.Client, error) {
	client, err := llm.NewClient(cfg.LLM(), llm.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}
	return client, nil
}

// InitializeStore opens the configured level store. The returned close
// function releases any connection and is never nil.
func InitializeStore(ctx context.Context, cfg config.StorageConfig) (storage.LevelStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StorageFile:
		return storage.NewFileStore(cfg.LevelsDir), noop, nil
	case config.StorageMemory:
		return storage.NewInMemoryStore(), noop, nil
	case config.StorageRedis:
		client, err := storage.DialRedis(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize level store: %w", err)
		}
		return storage.NewRedisStore(client, cfg.KeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// InitializePipeline builds the model client and the pipeline around it.
// Events are written to the log.
func InitializePipeline(cfg *config.Config, logger *slog.Logger) (*generation.Pipeline, events.EventSink, error) {
	client, err := InitializeLLMClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	sink := events.NewLogEventSink(logger)
	pipeline := generation.NewPipeline(client,
		generation.WithLogger(logger),
		generation.WithEventSink(sink))
	return pipeline, sink, nil
}
