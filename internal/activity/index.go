package activity

import (
	"errors"
	"slices"
	"sort"
)

// ErrEmptyInput indicates the source yielded zero events. The observed day
// range is undefined, so every downstream report is skipped.
var ErrEmptyInput = errors.New("edit history contains no events")

// Index is the immutable query structure built from the merged global
// triple. Queries never mutate it, so they may run concurrently without
// locking.
type Index struct {
	stats *Stats

	// days holds the keys of stats.DayUsers in chronological order, for
	// contiguous range queries.
	days []Day
}

// NewIndex freezes the merged triple into a query index. It fails with
// ErrEmptyInput when the triple holds no events.
func NewIndex(stats *Stats) (*Index, error) {
	if stats == nil || len(stats.DayUsers) == 0 {
		return nil, ErrEmptyInput
	}

	days := make([]Day, 0, len(stats.DayUsers))
	for day := range stats.DayUsers {
		days = append(days, day)
	}

	slices.Sort(days)

	return &Index{stats: stats, days: days}, nil
}

// DayRange returns the earliest and latest observed days.
func (ix *Index) DayRange() (minDay, maxDay Day) {
	return ix.days[0], ix.days[len(ix.days)-1]
}

// Events returns the number of folded edit events.
func (ix *Index) Events() int64 {
	return ix.stats.Events
}

// Users returns the number of distinct editors observed.
func (ix *Index) Users() int {
	return len(ix.stats.UserDays)
}

// ActiveDayCount returns the number of distinct days with any activity.
func (ix *Index) ActiveDayCount() int {
	return len(ix.days)
}

// LatestName returns the most recent known display name for an editor, or
// the empty string for an unknown id.
func (ix *Index) LatestName(uid int64) string {
	return ix.stats.Names[uid].Username
}

// UserDays returns the sorted distinct active days of an editor across the
// whole observed range.
func (ix *Index) UserDays(uid int64) []Day {
	set := ix.stats.UserDays[uid]
	if len(set) == 0 {
		return nil
	}

	days := make([]Day, 0, len(set))
	for day := range set {
		days = append(days, day)
	}

	slices.Sort(days)

	return days
}

// daysIn returns the observed days inside the closed range [lo, hi]. Days
// outside the observed range simply do not appear; they contribute an empty
// user set, which is correct for windows that extend past the data.
func (ix *Index) daysIn(lo, hi Day) []Day {
	from := sort.Search(len(ix.days), func(i int) bool { return ix.days[i] >= lo })
	to := sort.Search(len(ix.days), func(i int) bool { return ix.days[i] > hi })

	return ix.days[from:to]
}
