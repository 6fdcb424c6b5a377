package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

func TestDayOf_TruncatesToUTCDate(t *testing.T) {
	t.Parallel()

	day := activity.DayOf(time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "2020-01-02", day.String())

	midnight := activity.DayOf(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, day, midnight)
}

func TestDayOf_NonUTCZone(t *testing.T) {
	t.Parallel()

	// 2020-01-02T01:30+05:00 is 2020-01-01T20:30 UTC.
	zone := time.FixedZone("plus5", 5*3600)
	day := activity.DayOf(time.Date(2020, 1, 2, 1, 30, 0, 0, zone))

	assert.Equal(t, "2020-01-01", day.String())
}

func TestDayOf_BeforeEpochFloors(t *testing.T) {
	t.Parallel()

	day := activity.DayOf(time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "1969-12-31", day.String())
}

func TestParseDay_RoundTrip(t *testing.T) {
	t.Parallel()

	day, err := activity.ParseDay("2013-07-24")
	require.NoError(t, err)
	assert.Equal(t, "2013-07-24", day.String())
}

func TestParseDay_Invalid(t *testing.T) {
	t.Parallel()

	_, err := activity.ParseDay("24.07.2013")
	require.Error(t, err)
}

func TestDay_Arithmetic(t *testing.T) {
	t.Parallel()

	day, err := activity.ParseDay("2020-12-31")
	require.NoError(t, err)

	assert.Equal(t, "2021-01-01", (day + 1).String())
	assert.Equal(t, "2020-12-30", (day - 1).String())
}

func TestDay_DayMonth(t *testing.T) {
	t.Parallel()

	day, err := activity.ParseDay("2020-03-05")
	require.NoError(t, err)

	assert.Equal(t, "05.03.", day.DayMonth())
}

func TestClampDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		d, lo, hi activity.Day
		want      activity.Day
	}{
		{name: "inside", d: 5, lo: 0, hi: 10, want: 5},
		{name: "below", d: -3, lo: 0, hi: 10, want: 0},
		{name: "above", d: 15, lo: 0, hi: 10, want: 10},
		{name: "at lower bound", d: 0, lo: 0, hi: 10, want: 0},
		{name: "at upper bound", d: 10, lo: 0, hi: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, activity.ClampDay(tt.d, tt.lo, tt.hi))
		})
	}
}
