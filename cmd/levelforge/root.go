package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahrav/levelforge/internal/config"
)

// options holds flags shared by every command.
type options struct {
	configPath string
	logLevel   string

	level       int
	priorLevels []string
	levelsDir   string
	storage     string

	backend    string
	model      string
	executable string
	endpoint   string
	timeout    string

	logOutput io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &options{logOutput: os.Stderr}

	cmd := &cobra.Command{
		Use:   "levelforge",
		Short: "Generate logic-gate puzzle levels with a local language model",
		Long: `levelforge prompts a locally hosted model for a new level definition,
extracts the JavaScript module from its answer, checks it against the level
rules and writes it next to the game's existing levels.

Without a subcommand it makes a single attempt for the configured level.
A rejected attempt is reported but is not an error.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.levelsDir, "levels-dir", "", "Directory holding level<N>.js files")
	pf.StringVar(&opts.storage, "storage", "", "Level store: file, redis, memory")

	f := cmd.Flags()
	f.IntVarP(&opts.level, "level", "l", 0, "Level number to generate")
	f.StringSliceVarP(&opts.priorLevels, "prior", "p", nil, "Comma-separated names of earlier levels")
	addModelFlags(cmd, opts)

	cmd.AddCommand(
		newValidateCmd(opts),
		newListCmd(opts),
		newWorkerCmd(opts),
		newSubmitCmd(opts),
	)
	return cmd
}

func addModelFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVar(&opts.backend, "backend", "", "Model backend: cli or http")
	f.StringVar(&opts.model, "model", "", "Model name, e.g. deepseek-r1")
	f.StringVar(&opts.executable, "executable", "", "Model runner executable for the cli backend")
	f.StringVar(&opts.endpoint, "endpoint", "", "Ollama server URL for the http backend")
	f.StringVar(&opts.timeout, "timeout", "", "Invocation timeout, e.g. 10m (default: none)")
}

// loadConfig reads the config file and applies flags the user set explicitly.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("levels-dir") {
		cfg.Storage.LevelsDir = o.levelsDir
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = o.storage
	}
	if flags.Changed("level") {
		cfg.Generation.LevelNumber = o.level
	}
	if flags.Changed("prior") {
		cfg.Generation.PriorLevels = o.priorLevels
	}
	if flags.Changed("backend") {
		cfg.Model.Backend = o.backend
	}
	if flags.Changed("model") {
		cfg.Model.Name = o.model
	}
	if flags.Changed("executable") {
		cfg.Model.Executable = o.executable
	}
	if flags.Changed("endpoint") {
		cfg.Model.Endpoint = o.endpoint
	}
	if flags.Changed("timeout") {
		d, err := parseTimeout(o.timeout)
		if err != nil {
			return nil, err
		}
		cfg.Model.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) logger(cfg *config.Config) *slog.Logger {
	return config.NewLogger(cfg.Logging, o.logOutput).With("service", "levelforge")
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
