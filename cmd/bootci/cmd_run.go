package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spboyer/bootci/internal/dataset"
	"github.com/spboyer/bootci/internal/projectconfig"
	"github.com/spboyer/bootci/internal/spinner"
	"github.com/spboyer/bootci/internal/statistics"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

var errNoScoresFile = errors.New("no scores file given: pass it as an argument or with --file")

type runOptions struct {
	file       string
	column     string
	trials     int
	confidence int
	workers    int
	seed       uint64
	format     string
	noProgress bool
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [scores-file] [trials] [confidence]",
		Short: "Estimate a bootstrap confidence interval for the mean",
		Long: `Estimate a bootstrap confidence interval for the mean of a sample.

The scores file holds one number per line; blank lines are ignored. Files ending
in .gz or .zst are decompressed, and "-" reads standard input. With --column the
file is read as CSV and the named column is used.

Trials and confidence may be given positionally or with flags. Values not given
on the command line come from .bootci.yaml, then from built-in defaults
(10000 trials, 95% confidence).`,
		Example: `  bootci run scores.txt
  bootci run scores.txt 5000 90
  bootci run --file results.csv --column score --ci 99 --format json`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "Scores file, one number per line (- for stdin)")
	f.StringVar(&opts.column, "column", "", "Read scores from this column of a CSV file")
	f.IntVarP(&opts.trials, "trials", "b", projectconfig.DefaultTrials, "Number of bootstrap resamples")
	f.IntVarP(&opts.confidence, "ci", "c", projectconfig.DefaultConfidence, "Confidence level in percent (1-99)")
	f.IntVarP(&opts.workers, "workers", "w", projectconfig.DefaultWorkers, "Parallel workers (0 = number of CPUs)")
	f.Uint64Var(&opts.seed, "seed", 0, "Seed for a reproducible run (default: fresh entropy every run)")
	f.StringVarP(&opts.format, "format", "f", projectconfig.DefaultFormat, "Output format: table or json")
	f.BoolVar(&opts.noProgress, "no-progress", false, "Do not show the progress spinner")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string, opts *runOptions) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	path, est, format, err := resolveRun(cmd, args, opts, cfg)
	if err != nil {
		return err
	}
	if err := est.Validate(); err != nil {
		return err
	}

	var sample []float64
	if opts.column != "" {
		sample, err = dataset.LoadCSVColumn(path, opts.column)
	} else {
		sample, err = dataset.LoadScores(path)
	}
	if err != nil {
		return err
	}
	slog.Debug("Loaded sample", "path", path, "size", len(sample))

	var progress atomic.Int64
	est.Progress = &progress
	stop := func() {}
	if !opts.noProgress && isTerminal(cmd.ErrOrStderr()) {
		stop = spinner.Start(cmd.ErrOrStderr(), func() string {
			return printer.Sprintf("Resampling %d/%d trials", progress.Load(), est.Trials)
		})
	}

	report, err := statistics.Estimate(cmd.Context(), sample, est)
	stop()
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), report, format, useColor(cfg, cmd.OutOrStdout()))
}

// resolveRun merges positional arguments, flags and configuration. Flags and
// positional arguments win over the config file, which wins over defaults.
func resolveRun(cmd *cobra.Command, args []string, opts *runOptions, cfg *projectconfig.ProjectConfig) (string, statistics.Options, string, error) {
	flags := cmd.Flags()
	est := statistics.Options{
		Trials:     cfg.Defaults.Trials,
		Confidence: cfg.Defaults.Confidence,
		Workers:    cfg.Defaults.Workers,
		Seed:       cfg.Defaults.Seed,
	}
	format := cfg.Output.Format

	if flags.Changed("trials") {
		est.Trials = opts.trials
	}
	if flags.Changed("ci") {
		est.Confidence = opts.confidence
	}
	if flags.Changed("workers") {
		est.Workers = opts.workers
	}
	if flags.Changed("seed") {
		seed := opts.seed
		est.Seed = &seed
	}
	if flags.Changed("format") {
		format = opts.format
	}

	path := opts.file
	if len(args) > 0 {
		if path != "" {
			return "", est, "", fmt.Errorf("scores file given twice: %q and --file %q", args[0], path)
		}
		path = args[0]
	}
	if path == "" {
		return "", est, "", &statistics.InputError{Err: errNoScoresFile}
	}

	positional := []struct {
		flag string
		dst  *int
	}{
		{"trials", &est.Trials},
		{"ci", &est.Confidence},
	}
	for i, p := range positional {
		if len(args) <= i+1 {
			break
		}
		if flags.Changed(p.flag) {
			return "", est, "", fmt.Errorf("%s given both as argument %q and as --%s", p.flag, args[i+1], p.flag)
		}
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			return "", est, "", &statistics.ValidationError{Field: p.flag, Value: strconv.Quote(args[i+1]), Err: errors.New("not an integer")}
		}
		*p.dst = v
	}

	if format != "table" && format != "json" {
		return "", est, "", &statistics.ValidationError{Field: "format", Value: strconv.Quote(format), Err: errors.New("must be table or json")}
	}

	return path, est, format, nil
}
