package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrenceInYear(t *testing.T) {
	tests := []struct {
		name       string
		original   time.Time
		targetYear int
		expected   time.Time
	}{
		{
			name:       "plain anniversary keeps month and day",
			original:   date(2010, time.June, 15),
			targetYear: 2024,
			expected:   date(2024, time.June, 15),
		},
		{
			name:       "Feb 29 clamps to Feb 28 in non-leap year",
			original:   date(2000, time.February, 29),
			targetYear: 2025,
			expected:   date(2025, time.February, 28),
		},
		{
			name:       "Feb 29 stays Feb 29 in leap year",
			original:   date(2000, time.February, 29),
			targetYear: 2024,
			expected:   date(2024, time.February, 29),
		},
		{
			name:       "Feb 29 stays Feb 29 in century leap year",
			original:   date(1996, time.February, 29),
			targetYear: 2000,
			expected:   date(2000, time.February, 29),
		},
		{
			name:       "Feb 29 clamps in century non-leap year",
			original:   date(1996, time.February, 29),
			targetYear: 1900,
			expected:   date(1900, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OccurrenceInYear(tt.original, tt.targetYear)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestElapsedYears(t *testing.T) {
	// Pure year subtraction, no "has it happened yet" adjustment.
	assert.Equal(t, 25, ElapsedYears(date(2000, time.February, 29), 2025))
	assert.Equal(t, 14, ElapsedYears(date(2010, time.June, 15), 2024))
	assert.Equal(t, 0, ElapsedYears(date(2024, time.January, 1), 2024))
}

func TestExpand_RangeBoundaries(t *testing.T) {
	src := []Source{{
		ID:    1,
		Names: []string{"María García"},
		Dates: map[Kind]time.Time{KindBirth: date(1980, time.June, 10)},
	}}

	tests := []struct {
		name       string
		start, end time.Time
		wantCount  int
	}{
		{"occurrence exactly at range start", date(2024, time.June, 10), date(2024, time.June, 30), 1},
		{"occurrence exactly at range end", date(2024, time.June, 1), date(2024, time.June, 10), 1},
		{"occurrence one day outside start", date(2024, time.June, 11), date(2024, time.June, 30), 0},
		{"occurrence one day outside end", date(2024, time.June, 1), date(2024, time.June, 9), 0},
		{"inverted range yields nothing", date(2024, time.June, 30), date(2024, time.June, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(src, AllKinds, tt.start, tt.end)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestExpand_YearBoundaryWindow(t *testing.T) {
	// A 16-day window across New Year must enumerate both 2024 and 2025
	// candidate years and keep only occurrences inside the window.
	sources := []Source{
		{ID: 1, Names: []string{"A"}, Dates: map[Kind]time.Time{KindBirth: date(1990, time.December, 24)}},
		{ID: 2, Names: []string{"B"}, Dates: map[Kind]time.Time{KindBirth: date(1985, time.January, 3)}},
		{ID: 3, Names: []string{"C"}, Dates: map[Kind]time.Time{KindBirth: date(1970, time.July, 1)}},
		{ID: 4, Names: []string{"D"}, Dates: map[Kind]time.Time{KindBirth: date(1992, time.December, 19)}},
		{ID: 5, Names: []string{"E"}, Dates: map[Kind]time.Time{KindBirth: date(2001, time.January, 6)}},
	}

	got := Expand(sources, []Kind{KindBirth}, date(2024, time.December, 20), date(2025, time.January, 5))

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].SourceID)
	assert.True(t, got[0].Date.Equal(date(2024, time.December, 24)))
	assert.Equal(t, 34, got[0].Years)
	assert.Equal(t, int64(2), got[1].SourceID)
	assert.True(t, got[1].Date.Equal(date(2025, time.January, 3)))
	assert.Equal(t, 40, got[1].Years)
}

func TestExpand_Ordering(t *testing.T) {
	sources := []Source{
		{ID: 9, Names: []string{"Z"}, Dates: map[Kind]time.Time{KindBirth: date(1990, time.March, 5)}},
		{ID: 2, Names: []string{"Y", "X"}, Dates: map[Kind]time.Time{
			KindWedding:  date(2005, time.January, 20),
			KindAdoption: date(2008, time.March, 5),
		}},
		{ID: 1, Names: []string{"W"}, Dates: map[Kind]time.Time{KindBirth: date(1975, time.March, 5)}},
	}

	got := Expand(sources, AllKinds, date(2024, time.January, 1), date(2024, time.December, 31))
	require.Len(t, got, 4)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date), "dates must be non-decreasing")
	}
	// Same-day tie broken by source id.
	assert.Equal(t, int64(1), got[1].SourceID)
	assert.Equal(t, int64(2), got[2].SourceID)
	assert.Equal(t, int64(9), got[3].SourceID)
}

func TestExpand_KindRestriction(t *testing.T) {
	sources := []Source{{
		ID:    7,
		Names: []string{"Ana", "Luis"},
		Dates: map[Kind]time.Time{
			KindWedding:  date(2010, time.June, 15),
			KindAdoption: date(2015, time.September, 2),
		},
	}}

	got := Expand(sources, []Kind{KindWedding}, date(2024, time.January, 1), date(2024, time.December, 31))
	require.Len(t, got, 1)
	assert.Equal(t, KindWedding, got[0].Kind)
	assert.Equal(t, 14, got[0].Years)
	assert.Equal(t, "Wedding Anniversary: Ana & Luis", got[0].Title)
}

func TestExpand_NoOccurrencesBeforeOriginalDate(t *testing.T) {
	sources := []Source{{
		ID:    1,
		Names: []string{"Ana", "Luis"},
		Dates: map[Kind]time.Time{KindWedding: date(2010, time.June, 15)},
	}}

	got := Expand(sources, []Kind{KindWedding}, date(2005, time.January, 1), date(2005, time.December, 31))
	assert.Empty(t, got)
}

func TestUpcoming(t *testing.T) {
	today := date(2025, time.February, 25)
	sources := []Source{
		{ID: 1, Names: []string{"Leap"}, Dates: map[Kind]time.Time{KindBirth: date(2000, time.February, 29)}},
		{ID: 2, Names: []string{"March"}, Dates: map[Kind]time.Time{KindBirth: date(1990, time.March, 4)}},
		{ID: 3, Names: []string{"Later"}, Dates: map[Kind]time.Time{KindBirth: date(1990, time.April, 1)}},
	}

	got := Upcoming(sources, []Kind{KindBirth}, today, 10)
	require.Len(t, got, 2)

	// Feb 29 birthday observed on Feb 28 in 2025, three days out.
	assert.Equal(t, int64(1), got[0].SourceID)
	assert.True(t, got[0].Date.Equal(date(2025, time.February, 28)))
	assert.Equal(t, 3, got[0].DaysUntil)
	assert.Equal(t, 25, got[0].Years)

	assert.Equal(t, int64(2), got[1].SourceID)
	assert.Equal(t, 7, got[1].DaysUntil)
}

func TestUpcoming_TodayCountsAsZeroDays(t *testing.T) {
	today := date(2025, time.June, 10)
	sources := []Source{{ID: 1, Names: []string{"T"}, Dates: map[Kind]time.Time{KindBirth: date(1990, time.June, 10)}}}

	got := Upcoming(sources, []Kind{KindBirth}, today, 30)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].DaysUntil)
}

func TestDaysBetween_DSTSafe(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	// Spring-forward weekend: March 30, 2025 only has 23 hours in Madrid.
	a := time.Date(2025, time.March, 29, 0, 0, 0, 0, madrid)
	b := time.Date(2025, time.March, 31, 0, 0, 0, 0, madrid)
	assert.Equal(t, 2, DaysBetween(a, b))
}
