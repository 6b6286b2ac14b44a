package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/levelforge/internal/config"
	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/worker"
	"github.com/ahrav/levelforge/internal/workflow"
)

func dialTemporal(cfg config.TemporalConfig, logger *slog.Logger) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    tlog.NewStructuredLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to temporal at %s: %w", cfg.HostPort, err)
	}
	return c, nil
}

func newWorkerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a Temporal worker for the level generation workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := opts.logger(cfg)

			pipeline, sink, err := worker.InitializePipeline(cfg, logger)
			if err != nil {
				return err
			}
			store, closeStore, err := worker.InitializeStore(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			c, err := dialTemporal(cfg.Temporal, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			w := sdkworker.New(c, cfg.Temporal.TaskQueue, sdkworker.Options{})
			worker.RegisterAll(w, pipeline, store, sink)

			logger.Info("worker started",
				"task_queue", cfg.Temporal.TaskQueue,
				"namespace", cfg.Temporal.Namespace)
			return w.Run(sdkworker.InterruptCh())
		},
	}
	addModelFlags(cmd, opts)
	return cmd
}

func newSubmitCmd(opts *options) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Start a level generation workflow on Temporal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := opts.logger(cfg)

			req, err := domain.NewGenerationRequest(cfg.Generation.LevelNumber, cfg.Generation.PriorLevels)
			if err != nil {
				return err
			}

			c, err := dialTemporal(cfg.Temporal, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
				ID:        workflowID(req.LevelNumber),
				TaskQueue: cfg.Temporal.TaskQueue,
			}, workflow.LevelGenerationWorkflow, req)
			if err != nil {
				return fmt.Errorf("start workflow: %w", err)
			}
			printf(cmd, "Started workflow %s (run %s)\n", run.GetID(), run.GetRunID())
			if !wait {
				return nil
			}

			var result domain.GenerationResult
			if err := run.Get(ctx, &result); err != nil {
				return fmt.Errorf("workflow %s: %w", run.GetID(), err)
			}
			return printResult(cmd, &result)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.level, "level", "l", 0, "Level number to generate")
	f.StringSliceVarP(&opts.priorLevels, "prior", "p", nil, "Comma-separated names of earlier levels")
	f.BoolVarP(&wait, "wait", "w", false, "Wait for the workflow and print its result")
	return cmd
}

func workflowID(level int) string {
	return fmt.Sprintf("level-generation-%d-%s", level, uuid.NewString())
}

var errNoResult = errors.New("no result")

// printResult reports a generation result. Rejections are not errors.
func printResult(cmd *cobra.Command, result *domain.GenerationResult) error {
	switch {
	case result == nil:
		return errNoResult
	case result.Accepted:
		printf(cmd, "Successfully generated level %d: %s\n", result.LevelNumber, result.Location)
	case result.Failure != nil:
		printf(cmd, "Failed to generate level %d (%s): %s\n",
			result.LevelNumber, result.Failure.Stage, result.Failure.Reason)
	default:
		printf(cmd, "Failed to generate level %d\n", result.LevelNumber)
	}
	return nil
}
