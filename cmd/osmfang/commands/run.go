// Package commands implements CLI command handlers for osmfang.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
	"github.com/Sumatoshi-tech/osmfang/internal/config"
	"github.com/Sumatoshi-tech/osmfang/internal/plot"
	"github.com/Sumatoshi-tech/osmfang/internal/report"
	"github.com/Sumatoshi-tech/osmfang/internal/source"
)

// ErrNoInput is returned when no history file is given.
var ErrNoInput = errors.New("no input history file. Use --input <file.osh.pbf>")

const (
	progressBarWidth = 40
	progressInterval = time.Second
)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	cfgPath      string
	input        string
	outputPrefix string
	startDate    string
	endDate      string
	plotPath     string
	minEditDays  int
	minNumDays   int
	workers      int
	compress     bool
	verbose      bool
	silent       bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Aggregate a history file into activity reports",
		Long: "Read an OSM full-history file, fold the edit events into per-editor\n" +
			"and per-day activity indexes in parallel, and write the per-day and\n" +
			"per-user CSV reports.",
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "OSM history file to read")
	cmd.Flags().StringVarP(&rc.outputPrefix, "output-prefix", "p", "", "Prefix for all output files")
	cmd.Flags().IntVar(&rc.minEditDays, "min-edit-days", config.DefaultMinEditDays,
		"Only include editors with at least this many edit days in the per-user report")
	cmd.Flags().StringVar(&rc.startDate, "start-date", "", "First day of the per-user report span (default: earliest day)")
	cmd.Flags().StringVar(&rc.endDate, "end-date", "", "Last day of the per-user report span (default: latest day)")
	cmd.Flags().IntVar(&rc.minNumDays, "min-num-days", config.DefaultMinNumDays,
		"Include at least this many days in the per-user report span")
	cmd.Flags().IntVar(&rc.workers, "workers", config.DefaultWorkers, "Number of parallel fold workers (0 = use CPU count)")
	cmd.Flags().BoolVar(&rc.compress, "compress", false, "Gzip the report files (.csv.gz)")
	cmd.Flags().StringVar(&rc.plotPath, "plot", "", "Write an HTML activity chart to this file")
	cmd.Flags().StringVar(&rc.cfgPath, "config", "", "Config file path (default: .osmfang.yaml in CWD or $HOME)")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable progress output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.resolveConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Input == "" {
		return ErrNoInput
	}

	logger := rc.newLogger(cmd.ErrOrStderr())
	ctx := cmd.Context()

	logger.Info("reading history", "input", cfg.Input, "workers", cfg.Workers)

	src, err := source.OpenPBF(ctx, cfg.Input, cfg.Workers)
	if err != nil {
		return err
	}
	defer src.Close()

	stopProgress := rc.startProgress(cmd.ErrOrStderr(), src)

	stats, err := activity.Aggregate(ctx, src, cfg.Workers)

	stopProgress()

	if err != nil {
		return fmt.Errorf("aggregation: %w", err)
	}

	ix, err := activity.NewIndex(stats)
	if err != nil {
		return fmt.Errorf("aggregation: %w", err)
	}

	minDay, maxDay := ix.DayRange()
	logger.Info("aggregation complete",
		"events", ix.Events(), "editors", ix.Users(), "active_days", ix.ActiveDayCount(),
		"first_day", minDay.String(), "last_day", maxDay.String())

	opts, err := rc.reportOptions(cfg)
	if err != nil {
		return err
	}

	res, err := report.Write(ix, opts)
	if err != nil {
		return err
	}

	logger.Info("reports written", "per_day", res.PerDayPath, "per_user", res.PerUserPath)

	if cfg.Plot != "" {
		err = writePlot(ix, cfg.Plot)
		if err != nil {
			return err
		}

		logger.Info("chart written", "path", cfg.Plot)
	}

	rc.printSummary(cmd.OutOrStdout(), ix, res)

	return nil
}

// resolveConfig merges the config file, environment and flags; explicitly
// set flags win.
func (rc *RunCommand) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.cfgPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("input") {
		cfg.Input = rc.input
	}

	if flags.Changed("output-prefix") {
		cfg.OutputPrefix = rc.outputPrefix
	}

	if flags.Changed("min-edit-days") {
		cfg.MinEditDays = rc.minEditDays
	}

	if flags.Changed("start-date") {
		cfg.StartDate = rc.startDate
	}

	if flags.Changed("end-date") {
		cfg.EndDate = rc.endDate
	}

	if flags.Changed("min-num-days") {
		cfg.MinNumDays = rc.minNumDays
	}

	if flags.Changed("workers") {
		cfg.Workers = rc.workers
	}

	if flags.Changed("compress") {
		cfg.Compress = rc.compress
	}

	if flags.Changed("plot") {
		cfg.Plot = rc.plotPath
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (rc *RunCommand) reportOptions(cfg *config.Config) (report.Options, error) {
	start, err := optionalDay(cfg.StartDate)
	if err != nil {
		return report.Options{}, err
	}

	end, err := optionalDay(cfg.EndDate)
	if err != nil {
		return report.Options{}, err
	}

	return report.Options{
		Prefix:      cfg.OutputPrefix,
		StartDate:   start,
		EndDate:     end,
		MinEditDays: cfg.MinEditDays,
		MinNumDays:  cfg.MinNumDays,
		Compress:    cfg.Compress,
	}, nil
}

func optionalDay(s string) (*activity.Day, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // nil means "use the observed bound".
	}

	day, err := activity.ParseDay(s)
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (rc *RunCommand) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if rc.verbose {
		level = slog.LevelDebug
	}

	if rc.silent {
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// startProgress samples the source byte counter once per second and redraws
// a progress bar on stderr. The returned stop function is idempotent.
func (rc *RunCommand) startProgress(w io.Writer, src *source.PBFSource) func() {
	if rc.silent {
		return func() {}
	}

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				read, total := src.Progress()
				fmt.Fprintf(w, "\r%s", source.FormatProgress(read, total, progressBarWidth))
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			close(done)
			fmt.Fprintln(w)
		})
	}
}

func writePlot(ix *activity.Index, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	err = plot.WriteActivityChart(ix, file)
	if err != nil {
		file.Close()

		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}

	return nil
}
