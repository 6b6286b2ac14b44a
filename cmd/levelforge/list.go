package main

import (
	"github.com/spf13/cobra"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/worker"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List levels present in the level store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			store, closeStore, err := worker.InitializeStore(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			levels, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(levels) == 0 {
				printf(cmd, "no levels found\n")
				return nil
			}
			for _, n := range levels {
				printf(cmd, "%s\n", domain.LevelID(n))
			}
			return nil
		},
	}
}
