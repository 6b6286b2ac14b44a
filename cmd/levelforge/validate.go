package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/extract"
	"github.com/ahrav/levelforge/internal/validation"
)

func newValidateCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check existing level files against the level rules",
		Long: `Runs the level rules over each file and prints the verdict with the
measured gate types, horizontal positions and truth-table size.

With --raw the file is treated as model output and the level definition is
extracted first, exactly as during generation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rejected := 0
			for _, path := range args {
				ok, err := validateFile(cmd, path, raw)
				if err != nil {
					return err
				}
				if !ok {
					rejected++
				}
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d levels rejected", rejected, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Extract the definition from raw model output first")
	return cmd
}

func validateFile(cmd *cobra.Command, path string, raw bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	candidate := domain.Candidate(data)
	if raw {
		var found bool
		candidate, found = extract.Extract(domain.RawOutput(data))
		if !found {
			printf(cmd, "%s: no code found\n", path)
			return false, nil
		}
	}

	report := validation.Inspect(candidate)
	printf(cmd, "%s: %s\n", path, report.Verdict)
	printf(cmd, "  gate types: %d %v\n", len(report.GateTypes), report.GateTypes)
	printf(cmd, "  x positions: %d %v\n", len(report.XPositions), report.XPositions)
	if report.TruthTableFound {
		printf(cmd, "  truth table entries: %d\n", report.TruthTableEntries)
	} else {
		printf(cmd, "  truth table: not found\n")
	}
	return report.Verdict.Accepted, nil
}
