// Package report emits the per-day and per-user CSV reports from the
// completed activity index.
package report

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

// ErrConfigurationRange indicates a caller-supplied report span that is
// inverted or empty after clamping to the observed day range. It is raised
// before any output file is opened, so a bad configuration never leaves a
// silently truncated report behind.
var ErrConfigurationRange = errors.New("report span is empty after clamping to the observed day range")

// Output file names, appended to the configured prefix.
const (
	PerDayFileName  = "user_totals_per_day.csv"
	PerUserFileName = "users_per_day.csv"
)

// Options is the report configuration surface.
type Options struct {
	// Prefix is prepended to every output file name.
	Prefix string

	// StartDate and EndDate bound the per-user report span. Nil selects
	// the observed day range.
	StartDate *activity.Day
	EndDate   *activity.Day

	// MinEditDays is the minimum distinct days in the rolling window for
	// an editor to appear in the per-user report.
	MinEditDays int

	// MinNumDays is the minimum span length for the per-user report,
	// enforced by pulling the start earlier, never by pushing the end
	// later.
	MinNumDays int

	// Compress gzips the output files, adding a .gz suffix.
	Compress bool
}

// Result records what a report run produced.
type Result struct {
	PerDayPath  string
	PerUserPath string
	Start       activity.Day
	End         activity.Day
}

// Write resolves the per-user span, then emits both reports. The span is
// resolved first so that a configuration error fails the run before any
// output file is created.
func Write(ix *activity.Index, opts Options) (Result, error) {
	start, end, err := ResolveSpan(ix, opts)
	if err != nil {
		return Result{}, err
	}

	perDayPath, err := writePerDay(ix, opts)
	if err != nil {
		return Result{}, fmt.Errorf("per-day report: %w", err)
	}

	perUserPath, err := writePerUser(ix, opts, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("per-user report: %w", err)
	}

	return Result{
		PerDayPath:  perDayPath,
		PerUserPath: perUserPath,
		Start:       start,
		End:         end,
	}, nil
}

// ResolveSpan computes the per-user report span: caller bounds default to
// the observed range and are clamped to it; an inverted result is a
// configuration error. A clamped span shorter than MinNumDays pulls the
// start earlier by MinNumDays days without re-clamping, so the extension may
// reach before the observed range, where windows are simply empty.
func ResolveSpan(ix *activity.Index, opts Options) (start, end activity.Day, err error) {
	minDay, maxDay := ix.DayRange()

	start = minDay
	if opts.StartDate != nil {
		start = *opts.StartDate
	}

	end = maxDay
	if opts.EndDate != nil {
		end = *opts.EndDate
	}

	start = activity.ClampDay(start, minDay, maxDay)
	end = activity.ClampDay(end, minDay, maxDay)

	if end < start {
		return 0, 0, fmt.Errorf("%w: %s to %s", ErrConfigurationRange, start, end)
	}

	if int(end-start) < opts.MinNumDays {
		start -= activity.Day(opts.MinNumDays)
	}

	return start, end, nil
}
