package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	assert.Equal(t, "2024-03", Period(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12", Period(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParsePeriod(t *testing.T) {
	got, err := ParsePeriod("2024-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParsePeriod("02-2024", time.UTC)
	require.Error(t, err)
}

func TestDueDate_TableTests(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		dueDay int
		want   time.Time
	}{
		{
			name:   "due day inside month",
			now:    time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC),
			dueDay: 10,
			want:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "due day already passed stays in current month",
			now:    time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
			dueDay: 10,
			want:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "day 31 in february rolls into march",
			now:    time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			dueDay: 31,
			want:   time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "day 31 in april rolls to may 1",
			now:    time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
			dueDay: 31,
			want:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueDate(tt.now, tt.dueDay, time.UTC))
		})
	}
}

func TestDueDate_UsesLocationMonth(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:00 UTC on April 1 is still March 31 in BRT.
	now := time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC)

	got := DueDate(now, 10, loc)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	from := time.Date(2024, 3, 7, 23, 59, 0, 0, loc)

	assert.Equal(t, 3, DaysBetween(from, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), loc))
	assert.Equal(t, 0, DaysBetween(from, time.Date(2024, 3, 7, 0, 0, 0, 0, loc), loc))
	assert.Equal(t, -2, DaysBetween(from, time.Date(2024, 3, 5, 12, 0, 0, 0, loc), loc))
	assert.Equal(t, 25, DaysBetween(from, time.Date(2024, 4, 1, 0, 0, 0, 0, loc), loc))
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	from := time.Date(2024, 3, 8, 12, 0, 0, 0, loc)
	to := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, DaysBetween(from, to, loc))
}
