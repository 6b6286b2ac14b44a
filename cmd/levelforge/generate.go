package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahrav/levelforge/internal/generation"
	"github.com/ahrav/levelforge/internal/worker"
)

// runGenerate makes one attempt and saves the level if it is accepted.
// A failed attempt prints a message and still exits zero.
func runGenerate(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := opts.logger(cfg)
	ctx := cmd.Context()

	pipeline, _, err := worker.InitializePipeline(cfg, logger)
	if err != nil {
		return err
	}
	store, closeStore, err := worker.InitializeStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	level := cfg.Generation.LevelNumber
	printf(cmd, "Generating level %d...\n", level)

	result, err := generation.RunAndSave(ctx, pipeline, store, level, cfg.Generation.PriorLevels)
	if err != nil {
		return err
	}

	return printResult(cmd, result)
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid --timeout %q: must not be negative", s)
	}
	return d, nil
}
