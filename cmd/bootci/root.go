package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/spboyer/bootci/internal/projectconfig"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootci",
		Short: "bootci - bootstrap confidence intervals for the mean",
		Long: `bootci estimates a confidence interval for the mean of a numeric sample.

It resamples the sample with replacement many times in parallel, takes the
mean of every resample, and reports a percentile range over those means.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a config file (default: nearest "+projectconfig.FileName+")")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newConfigCommand())

	return cmd
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

// loadProjectConfig resolves configuration from --config or, when unset, from
// the nearest .bootci.yaml above the working directory.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	var cfg *projectconfig.ProjectConfig
	if path != "" {
		cfg, err = projectconfig.LoadFile(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = projectconfig.Load(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolved configuration", "path", cfg.Path, "trials", cfg.Defaults.Trials,
		"confidence", cfg.Defaults.Confidence, "workers", cfg.Defaults.Workers, "format", cfg.Output.Format)
	return cfg, nil
}
