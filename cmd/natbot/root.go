package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"natbrowser/config"
	"natbrowser/logging"
)

type rootOptions struct {
	cfgFile  string
	verbose  bool
	cfg      *config.Config
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "natbot",
		Short: "natbot - drive a browser with a language model",
		Long: `natbot renders the visible part of a web page as a short list of numbered
elements, asks a language model for the next command and executes it.

Use "natbot run" for the interactive loop, "natbot ask" to answer questions
about a single page and "natbot simplify" to inspect how a saved snapshot is
described to the model.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			lc := cfg.LoggingConfig()
			if opts.verbose {
				lc.Level = slog.LevelDebug
			}
			_, closeLog, err := logging.Setup(lc)
			if err != nil {
				return err
			}
			opts.closeLog = closeLog
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeLog != nil {
				return opts.closeLog()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(askCmd(opts))
	rootCmd.AddCommand(simplifyCmd(opts))
	return rootCmd
}
