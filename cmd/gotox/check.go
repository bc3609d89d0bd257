package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotox/grammar"
	"gotox/internal/errors"
	"gotox/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report unresolved references and type mismatches without transforming",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := settings.Options()
		opts.CheckTypes = true

		reporter := errors.NewErrorReporter()
		problems := 0
		for _, path := range args {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			reporter.AddSource(path, string(source))

			table, err := grammar.Load(path, string(source))
			if err != nil {
				fmt.Fprint(os.Stderr, reporter.Format(err))
				problems++
				continue
			}
			for _, diag := range pipeline.Diagnose(table, opts) {
				fmt.Fprint(os.Stderr, reporter.FormatError(diag))
				problems++
			}
		}

		if problems > 0 {
			color.Red("Found %d problem(s)", problems)
			return fmt.Errorf("check failed with %d problem(s)", problems)
		}
		color.Green("No problems found in %d file(s)", len(args))
		return nil
	},
}
