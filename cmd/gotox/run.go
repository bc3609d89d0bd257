package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotox/grammar"
	"gotox/internal/errors"
	"gotox/internal/pipeline"
	"gotox/internal/program"
	"gotox/internal/render"
)

// variables for flags
var (
	mode         string
	format       string
	output       string
	nondetPrefix string
	checkTypes   bool
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run the pass list of a mode over textual symbol tables",
	Long: `Loads each .symtab file, runs the passes of the selected mode and writes the
result as C text, irep JSON or the textual format.
Example) gotox run --mode c --format c main.symtab`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("mode") {
			settings.Mode = mode
		}
		if cmd.Flags().Changed("format") {
			settings.Format = format
		}
		if cmd.Flags().Changed("nondet-prefix") {
			settings.NondetPrefix = nondetPrefix
		}
		if cmd.Flags().Changed("check-types") {
			settings.CheckTypes = checkTypes
		}
		if err := settings.Validate(); err != nil {
			fmt.Fprint(os.Stderr, errors.NewErrorReporter().Format(err))
			return err
		}

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}
		return runFiles(cmd.Context(), w, args)
	},
}

func init() {
	runCmd.Flags().StringVarP(&mode, "mode", "m", "", "Output mode: c, debug or goto")
	runCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: c, json or symtab")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this file instead of stdout")
	runCmd.Flags().StringVar(&nondetPrefix, "nondet-prefix", "", "Prefix of synthesized nondet functions")
	runCmd.Flags().BoolVar(&checkTypes, "check-types", false, "Also check type consistency after every pass")
}

// runFiles loads every file, runs the pipeline over all tables concurrently and
// writes the results in argument order.
func runFiles(ctx context.Context, w io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()
	reporter := errors.NewErrorReporter()

	tables := make([]*program.SymbolTable, 0, len(paths))
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		reporter.AddSource(path, string(source))
		table, err := grammar.Load(path, string(source))
		if err != nil {
			fmt.Fprint(os.Stderr, reporter.Format(err))
			color.Red("Loading %s failed after %s", path, formatDuration(time.Since(startTime)))
			return err
		}
		tables = append(tables, table)
	}

	m, err := pipeline.ParseMode(settings.Mode)
	if err != nil {
		fmt.Fprint(os.Stderr, reporter.Format(err))
		return err
	}
	results, err := pipeline.RunAll(ctx, m, settings.Options(), tables)
	if err != nil {
		fmt.Fprint(os.Stderr, reporter.Format(err))
		color.Red("Mode %s failed after %s", m, formatDuration(time.Since(startTime)))
		return err
	}

	var buf bytes.Buffer
	for _, table := range results {
		if err := render.Write(&buf, settings.Format, table); err != nil {
			fmt.Fprint(os.Stderr, reporter.Format(err))
			return err
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, color.GreenString("Successfully processed %d file(s) in mode %s in %s",
		len(paths), m, formatDuration(time.Since(startTime))))
	return nil
}
