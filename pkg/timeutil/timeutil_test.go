package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	for _, tc := range []struct {
		in   string
		out  int
		fail bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"0700", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	} {
		got, err := ParseClock(tc.in)
		if tc.fail {
			assert.Error(t, err, tc.in)
		} else {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.out, got, tc.in)
		}
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "07:05", FormatClock(425))
	assert.Equal(t, "23:59", FormatClock(1439))
	// Wraps at midnight.
	assert.Equal(t, "00:30", FormatClock(1470))
	assert.Equal(t, "23:00", FormatClock(-60))
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("08:00", 90)
	require.NoError(t, err)
	assert.Equal(t, "09:30", got)

	got, err = AddMinutes("23:30", 45)
	require.NoError(t, err)
	assert.Equal(t, "00:15", got)

	_, err = AddMinutes("25:00", 10)
	assert.Error(t, err)
}

func TestFormatClockDisplay(t *testing.T) {
	assert.Equal(t, "7:00 AM", FormatClockDisplay("07:00"))
	assert.Equal(t, "12:00 PM", FormatClockDisplay("12:00"))
	assert.Equal(t, "12:15 AM", FormatClockDisplay("00:15"))
	assert.Equal(t, "3:45 PM", FormatClockDisplay("15:45"))
	// Unparseable inputs are returned as-is.
	assert.Equal(t, "bogus", FormatClockDisplay("bogus"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "2 hr", FormatDuration(120))
	assert.Equal(t, "1 hr 30 min", FormatDuration(90))
}
