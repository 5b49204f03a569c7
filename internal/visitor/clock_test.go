package visitor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		display string
	}{
		{"09:05", "09:05", "9:05 AM"},
		{"9:05", "09:05", "9:05 AM"},
		{"00:00", "00:00", "12:00 AM"},
		{"12:30", "12:30", "12:30 PM"},
		{"23:59", "23:59", "11:59 PM"},
		{"14:15:30", "14:15", "2:15 PM"},
		{"2:15 PM", "14:15", "2:15 PM"},
		{"2:15pm", "14:15", "2:15 PM"},
		{"12:01 am", "00:01", "12:01 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
			assert.Equal(t, tt.display, c.Display())
		})
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, in := range []string{"25:00", "noon", "9", "12:60"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestClockZero(t *testing.T) {
	c, err := ParseClock("  ")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
	assert.Equal(t, "", c.String())
	assert.Equal(t, "-", c.Display())

	midnight, err := ParseClock("00:00")
	require.NoError(t, err)
	assert.False(t, midnight.IsZero(), "midnight is a real time")
}

func TestClockOf(t *testing.T) {
	c := ClockOf(time.Date(2026, 1, 2, 17, 45, 59, 0, time.UTC))
	assert.Equal(t, 17, c.Hour())
	assert.Equal(t, 45, c.Minute())
}

func TestClockJSON(t *testing.T) {
	c, err := ParseClock("08:07")
	require.NoError(t, err)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `"08:07"`, string(b))

	var back Clock
	require.NoError(t, json.Unmarshal([]byte(`"8:07 AM"`), &back))
	assert.Equal(t, c, back)

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())
}

func TestClockScan(t *testing.T) {
	var c Clock
	require.NoError(t, c.Scan([]byte("13:00")))
	assert.Equal(t, "1:00 PM", c.Display())
	require.NoError(t, c.Scan(nil))
	assert.True(t, c.IsZero())
	assert.Error(t, c.Scan(42))
}
