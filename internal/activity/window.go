package activity

import (
	"slices"
)

const (
	// WindowDays is the length of the rolling window in calendar days. The
	// window ending on day D is the closed range [D-364, D].
	WindowDays = 365

	// SuperUserThreshold is the number of distinct active days within one
	// window that qualifies an editor as a super user.
	SuperUserThreshold = 42
)

// UserWindow describes one editor's activity within a rolling window.
type UserWindow struct {
	Name  string
	Days  []Day
	UID   int64
	Super bool
}

// DailyActiveUsers returns the number of distinct editors active on day d,
// zero when the day has no entry.
func (ix *Index) DailyActiveUsers(d Day) int {
	return len(ix.stats.DayUsers[d])
}

// RollingWindow returns, for every editor active within the window ending
// on d, the sorted distinct days on which they were active. Editors with no
// activity in the window are absent.
func (ix *Index) RollingWindow(d Day) map[int64][]Day {
	res := make(map[int64][]Day)

	// Iterating days in ascending order keeps each editor's slice sorted
	// and distinct without a per-editor set.
	for _, day := range ix.daysIn(d-WindowDays+1, d) {
		for uid := range ix.stats.DayUsers[day] {
			res[uid] = append(res[uid], day)
		}
	}

	return res
}

// SuperUserCount returns the number of editors with at least
// SuperUserThreshold distinct active days in the window ending on d.
func (ix *Index) SuperUserCount(d Day) int {
	count := 0

	for _, days := range ix.RollingWindow(d) {
		if len(days) >= SuperUserThreshold {
			count++
		}
	}

	return count
}

// QualifyingUsers returns the editors with at least minDays distinct active
// days in the window ending on d, ordered by editor id.
func (ix *Index) QualifyingUsers(d Day, minDays int) []UserWindow {
	window := ix.RollingWindow(d)

	res := make([]UserWindow, 0, len(window))

	for uid, days := range window {
		if len(days) < minDays {
			continue
		}

		res = append(res, UserWindow{
			UID:   uid,
			Name:  ix.LatestName(uid),
			Days:  days,
			Super: len(days) >= SuperUserThreshold,
		})
	}

	slices.SortFunc(res, func(a, b UserWindow) int {
		switch {
		case a.UID < b.UID:
			return -1
		case a.UID > b.UID:
			return 1
		default:
			return 0
		}
	})

	return res
}
