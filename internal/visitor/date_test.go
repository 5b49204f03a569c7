package visitor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", d.String())
	assert.Equal(t, "Oct 16, 2026", d.Display())

	ts, err := ParseDate("2026-10-16T23:59:00Z")
	require.NoError(t, err)
	assert.True(t, d.Equal(ts), "timestamp keeps its calendar date")

	_, err = ParseDate("16/10/2026")
	assert.Error(t, err)

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "-", zero.Display())
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	early := DateOf(time.Date(2026, 3, 1, 0, 5, 0, 0, loc))
	late := DateOf(time.Date(2026, 3, 1, 23, 55, 0, 0, loc))
	assert.True(t, early.Equal(late))
	assert.True(t, early.Before(NewDate(2026, 3, 2)))
	assert.True(t, early.After(NewDate(2026, 2, 28)))
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2026, 1, 9))
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-01-09"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-01-09"`), &d))
	assert.Equal(t, NewDate(2026, 1, 9), d)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2026-02-03"))
	assert.Equal(t, "2026-02-03", d.String())
	require.NoError(t, d.Scan(time.Date(2026, 2, 4, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-02-04", d.String())
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
