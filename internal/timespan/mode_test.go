package timespan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_Units(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		expected []Unit
	}{
		{"hour", ModeHour, []Unit{UnitHour}},
		{"hourMinute", ModeHourMinute, []Unit{UnitHour, UnitMinute}},
		{"hourMinuteSecond", ModeHourMinuteSecond, []Unit{UnitHour, UnitMinute, UnitSecond}},
		{"minute", ModeMinute, []Unit{UnitMinute}},
		{"minuteSecond", ModeMinuteSecond, []Unit{UnitMinute, UnitSecond}},
		{"second", ModeSecond, []Unit{UnitSecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.Units())
			assert.Equal(t, len(tt.expected), tt.mode.NumberOfComponents())
			for _, u := range tt.expected {
				assert.True(t, tt.mode.Has(u))
			}
		})
	}
}

func TestMode_Has(t *testing.T) {
	assert.False(t, ModeHourMinute.Has(UnitSecond))
	assert.False(t, ModeMinute.Has(UnitHour))
	assert.False(t, ModeSecond.Has(UnitMinute))
	assert.True(t, ModeHourMinuteSecond.Has(UnitSecond))
}

func TestParseMode_RoundTrips(t *testing.T) {
	modes := []Mode{ModeHour, ModeHourMinute, ModeHourMinuteSecond, ModeMinute, ModeMinuteSecond, ModeSecond}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			parsed, err := ParseMode(mode.String())
			assert.NoError(t, err)
			assert.Equal(t, mode, parsed)
		})
	}
}

func TestParseMode_Defaults(t *testing.T) {
	parsed, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeHourMinuteSecond, parsed)

	_, err = ParseMode("fortnight")
	assert.Error(t, err)
}

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "hour", UnitHour.String())
	assert.Equal(t, "minute", UnitMinute.String())
	assert.Equal(t, "second", UnitSecond.String())
}
