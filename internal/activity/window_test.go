package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
	"github.com/Sumatoshi-tech/osmfang/internal/source"
)

func buildIndex(t *testing.T, events ...source.Event) *activity.Index {
	t.Helper()

	s := activity.NewStats()
	for _, e := range events {
		s.Fold(e)
	}

	ix, err := activity.NewIndex(s)
	require.NoError(t, err)

	return ix
}

func day(t *testing.T, s string) activity.Day {
	t.Helper()

	d, err := activity.ParseDay(s)
	require.NoError(t, err)

	return d
}

func TestNewIndex_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := activity.NewIndex(activity.NewStats())
	require.ErrorIs(t, err, activity.ErrEmptyInput)

	_, err = activity.NewIndex(nil)
	require.ErrorIs(t, err, activity.ErrEmptyInput)
}

func TestIndex_DayRange(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(1, "a", ts("2020-03-15", 1)),
		ev(2, "b", ts("2019-11-02", 2)),
		ev(1, "a", ts("2020-01-20", 3)),
	)

	minDay, maxDay := ix.DayRange()
	assert.Equal(t, "2019-11-02", minDay.String())
	assert.Equal(t, "2020-03-15", maxDay.String())
}

// Concrete scenario from the reports: editor 7 on two consecutive days,
// editor 9 on the second day only.
func TestIndex_RollingWindowScenario(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(7, "seven", ts("2020-01-01", 10)),
		ev(7, "seven", ts("2020-01-02", 10)),
		ev(9, "nine", ts("2020-01-02", 11)),
	)

	target := day(t, "2020-01-02")

	assert.Equal(t, 2, ix.DailyActiveUsers(target))

	window := ix.RollingWindow(target)
	require.Len(t, window, 2)
	assert.Equal(t, []activity.Day{day(t, "2020-01-01"), day(t, "2020-01-02")}, window[7])
	assert.Equal(t, []activity.Day{day(t, "2020-01-02")}, window[9])

	qualifying := ix.QualifyingUsers(target, 2)
	require.Len(t, qualifying, 1)
	assert.Equal(t, int64(7), qualifying[0].UID)
	assert.Equal(t, "seven", qualifying[0].Name)
	assert.False(t, qualifying[0].Super)
}

func TestIndex_DailyActiveUsersAbsentDay(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t, ev(1, "a", ts("2020-01-01", 0)))

	assert.Equal(t, 0, ix.DailyActiveUsers(day(t, "2020-05-05")))
}

// The window ending on D is [D-364, D]: a day exactly 365 days earlier
// falls outside, 364 days earlier is the edge.
func TestIndex_RollingWindowBounds(t *testing.T) {
	t.Parallel()

	target := day(t, "2020-12-31")
	edge := target - activity.WindowDays + 1
	outside := target - activity.WindowDays

	ix := buildIndex(t,
		ev(1, "a", outside.Time()),
		ev(1, "a", edge.Time()),
		ev(1, "a", target.Time()),
	)

	window := ix.RollingWindow(target)
	assert.Equal(t, []activity.Day{edge, target}, window[1])
}

// Editors with no activity in the window are absent, not empty.
func TestIndex_RollingWindowExcludesInactive(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(1, "a", ts("2015-01-01", 0)),
		ev(2, "b", ts("2020-01-01", 0)),
	)

	window := ix.RollingWindow(day(t, "2020-01-01"))
	require.Len(t, window, 1)
	assert.NotContains(t, window, int64(1))
}

// A window over days before any observed data is empty, not an error.
func TestIndex_RollingWindowBeforeData(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t, ev(1, "a", ts("2020-01-01", 0)))

	assert.Empty(t, ix.RollingWindow(day(t, "2015-06-01")))
}

func TestIndex_SuperUserCountMatchesQualifying(t *testing.T) {
	t.Parallel()

	s := activity.NewStats()

	// Editor 1: 50 distinct days, editor 2: 41 days, editor 3: 42 days.
	base := day(t, "2020-01-01")
	for i := range 50 {
		s.Fold(ev(1, "a", (base + activity.Day(i)).Time()))
	}

	for i := range 41 {
		s.Fold(ev(2, "b", (base + activity.Day(i)).Time()))
	}

	for i := range 42 {
		s.Fold(ev(3, "c", (base + activity.Day(i)).Time()))
	}

	ix, err := activity.NewIndex(s)
	require.NoError(t, err)

	target := base + 60

	count := ix.SuperUserCount(target)
	assert.Equal(t, 2, count)

	qualifying := ix.QualifyingUsers(target, activity.SuperUserThreshold)
	assert.Len(t, qualifying, count)

	for _, uw := range qualifying {
		assert.True(t, uw.Super)
	}
}

func TestIndex_QualifyingUsersOrderedByUID(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(30, "c", ts("2020-01-01", 0)),
		ev(10, "a", ts("2020-01-01", 1)),
		ev(20, "b", ts("2020-01-01", 2)),
	)

	qualifying := ix.QualifyingUsers(day(t, "2020-01-01"), 1)
	require.Len(t, qualifying, 3)
	assert.Equal(t, int64(10), qualifying[0].UID)
	assert.Equal(t, int64(20), qualifying[1].UID)
	assert.Equal(t, int64(30), qualifying[2].UID)
}

// Repeated queries over the immutable index must agree.
func TestIndex_RollingWindowIdempotent(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(7, "seven", ts("2020-01-01", 0)),
		ev(7, "seven", ts("2020-01-02", 0)),
		ev(9, "nine", ts("2020-01-02", 0)),
	)

	target := day(t, "2020-01-02")
	assert.Equal(t, ix.RollingWindow(target), ix.RollingWindow(target))
}

// Per-user day counts never shrink while no days fall out of the trailing
// window, and never exceed the window length.
func TestIndex_WindowMonotonicity(t *testing.T) {
	t.Parallel()

	s := activity.NewStats()

	base := day(t, "2020-01-01")
	for i := range 30 {
		s.Fold(ev(1, "a", (base + activity.Day(2*i)).Time()))
	}

	ix, err := activity.NewIndex(s)
	require.NoError(t, err)

	prev := 0

	for d := base; d <= base+60; d++ {
		count := len(ix.RollingWindow(d)[1])
		assert.GreaterOrEqual(t, count, prev)
		assert.LessOrEqual(t, count, activity.WindowDays)

		prev = count
	}
}

func TestIndex_UserDaysSorted(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(1, "a", ts("2020-03-01", 0)),
		ev(1, "a", ts("2020-01-01", 0)),
		ev(1, "a", ts("2020-02-01", 0)),
	)

	days := ix.UserDays(1)
	require.Len(t, days, 3)
	assert.Equal(t, "2020-01-01", days[0].String())
	assert.Equal(t, "2020-02-01", days[1].String())
	assert.Equal(t, "2020-03-01", days[2].String())

	assert.Nil(t, ix.UserDays(99))
}

func TestIndex_LatestName(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t,
		ev(1, "old", ts("2020-01-01", 0)),
		ev(1, "new", ts("2020-02-01", 0)),
	)

	assert.Equal(t, "new", ix.LatestName(1))
	assert.Empty(t, ix.LatestName(42))
}
