package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

var perUserHeader = []string{"date", "uid", "num_edit_days_last_yr", "username", "ge42days", "mapped_days"}

// writePerUser emits one row per (report day, qualifying editor) pair across
// the resolved span.
func writePerUser(ix *activity.Index, opts Options, start, end activity.Day) (string, error) {
	out, err := createOutput(opts.Prefix+PerUserFileName, opts.Compress)
	if err != nil {
		return "", err
	}

	err = emitPerUser(ix, out.Writer(), opts.MinEditDays, start, end)
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

func emitPerUser(ix *activity.Index, w io.Writer, minEditDays int, start, end activity.Day) error {
	csvw := csv.NewWriter(w)

	err := csvw.Write(perUserHeader)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for day := start; day <= end; day++ {
		dayStr := day.String()

		for _, uw := range ix.QualifyingUsers(day, minEditDays) {
			super := "no"
			if uw.Super {
				super = "yes"
			}

			err = csvw.Write([]string{
				dayStr,
				strconv.FormatInt(uw.UID, 10),
				strconv.Itoa(len(uw.Days)),
				uw.Name,
				super,
				formatDayList(uw.Days),
			})
			if err != nil {
				return fmt.Errorf("write row %s/%d: %w", dayStr, uw.UID, err)
			}
		}
	}

	csvw.Flush()

	err = csvw.Error()
	if err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	return nil
}
