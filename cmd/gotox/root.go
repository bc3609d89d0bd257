package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"gotox/internal/config"
)

var (
	cfgFile   string
	verbosity int

	// settings is loaded before any subcommand runs
	settings config.Config
)

var rootCmd = &cobra.Command{
	Use:           "gotox",
	Short:         "gotox - transform goto-program symbol tables",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			settings, err = config.Load(cfgFile)
		} else {
			settings, _, err = config.Find(".")
		}
		if err != nil {
			return err
		}
		if verbosity > settings.Verbosity {
			settings.Verbosity = verbosity
		}
		commonlog.Configure(settings.Verbosity, nil)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a .gotox.yaml or .gotox.toml file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(passesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
