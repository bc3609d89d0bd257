package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotox/internal/pipeline"
)

var passesCmd = &cobra.Command{
	Use:   "passes [mode]",
	Short: "List the passes each mode runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modes := pipeline.Modes()
		if len(args) == 1 {
			m, err := pipeline.ParseMode(args[0])
			if err != nil {
				return err
			}
			modes = []pipeline.Mode{m}
		}

		bold := color.New(color.Bold).SprintFunc()
		for _, m := range modes {
			p, err := pipeline.New(m, settings.Options())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", bold(m))
			for i, name := range p.PassNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %-8s %s\n", i+1, name, pipeline.Describe(name))
			}
		}
		return nil
	},
}
