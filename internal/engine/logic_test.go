package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNextOccurrence verifies the temporal logic used to turn a birthday into
// a countdown target. It covers standard dates, today, and leap years.
func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		yearKnown    bool
		expectedDate time.Time
		expectedAge  int
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "Birthday is today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
		},
		{
			name:         "Birthday is tomorrow",
			birthDate:    time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "Year unknown",
			birthDate:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			yearKnown:    false,
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  0,
		},
		{
			name:         "Leapling in a non-leap year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, age := nextOccurrence(now, tt.birthDate, tt.yearKnown)
			assert.Equal(t, tt.expectedDate, next)
			assert.Equal(t, tt.expectedAge, age, "Age calculation mismatch")
			assert.True(t, next.After(now), "A countdown target must be in the future")
		})
	}
}

// TestNextOccurrence_LeapYearContext verifies behavior when the current year is a leap year.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	next, _ := nextOccurrence(now, birthDate, true)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), next, "In a leap year, the birthday should be Feb 29, not Mar 1")
}

// TestNextOccurrence_UsesNowLocation keeps midnight local to the device.
func TestNextOccurrence_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("Test/East", 9*60*60)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)

	next, _ := nextOccurrence(now, time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC), true)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, loc), next)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value     string
		want      time.Time
		yearKnown bool
	}{
		{"1990-04-12", time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), true},
		{"19900412", time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), true},
		{"1990-04-12T00:00:00Z", time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), true},
		{"--04-12", time.Date(2000, 4, 12, 0, 0, 0, 0, time.UTC), false},
		{"--0229", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, yearKnown, err := parseDate(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, tt.yearKnown, yearKnown)
		})
	}

	_, _, err := parseDate("next tuesday")
	assert.Error(t, err)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, daysIn(time.January, 2026))
	assert.Equal(t, 28, daysIn(time.February, 2026))
	assert.Equal(t, 29, daysIn(time.February, 2028))
	assert.Equal(t, 28, daysIn(time.February, 2100), "Centuries are not leap years")
	assert.Equal(t, 29, daysIn(time.February, 2000), "Unless divisible by 400")
	assert.Equal(t, 30, daysIn(time.April, 2026))
	assert.Equal(t, 31, daysIn(time.December, 2026))
}
