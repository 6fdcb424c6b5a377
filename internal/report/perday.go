package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

var perDayHeader = []string{"date", "num_users", "rolling_yr_total", "users_ge42_days"}

// writePerDay emits one row per calendar day in the observed range, zero
// activity days included.
func writePerDay(ix *activity.Index, opts Options) (string, error) {
	out, err := createOutput(opts.Prefix+PerDayFileName, opts.Compress)
	if err != nil {
		return "", err
	}

	err = emitPerDay(ix, out.Writer())
	if err != nil {
		out.Close()

		return "", err
	}

	err = out.Close()
	if err != nil {
		return "", err
	}

	return out.path, nil
}

func emitPerDay(ix *activity.Index, w io.Writer) error {
	csvw := csv.NewWriter(w)

	err := csvw.Write(perDayHeader)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	minDay, maxDay := ix.DayRange()

	for day := minDay; day <= maxDay; day++ {
		window := ix.RollingWindow(day)

		super := 0

		for _, days := range window {
			if len(days) >= activity.SuperUserThreshold {
				super++
			}
		}

		err = csvw.Write([]string{
			day.String(),
			strconv.Itoa(ix.DailyActiveUsers(day)),
			strconv.Itoa(len(window)),
			strconv.Itoa(super),
		})
		if err != nil {
			return fmt.Errorf("write row %s: %w", day, err)
		}
	}

	csvw.Flush()

	err = csvw.Error()
	if err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	return nil
}

// formatDayList renders a window's day list as comma-separated "31.12."
// entries for the mapped_days column.
func formatDayList(days []activity.Day) string {
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = day.DayMonth()
	}

	return strings.Join(parts, ",")
}
