package ttime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimeRoundTrip(t *testing.T) {
	want := time.Date(2000, 1, 1, 0, 10, 0, 0, time.UTC)
	ts := FromTime(want)
	assert.Equal(t, want, ts.Time())
}

func TestTimestampOrdering(t *testing.T) {
	a := FromTime(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	b := FromTime(time.Date(2000, 1, 1, 0, 10, 0, 0, time.UTC))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, int64(10*60*microsPerSecond), b.Sub(a))
}

func TestIntervalDurationRejectsMonths(t *testing.T) {
	iv := Interval{Months: 1}
	_, err := iv.Duration()
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIntervalDurationExact(t *testing.T) {
	iv := Interval{Days: 1, Microseconds: 5}
	d, err := iv.Duration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour+5*time.Microsecond, d)
}

func TestTimestampAddCalendarMonth(t *testing.T) {
	ts := FromTime(time.Date(2000, 1, 31, 0, 0, 0, 0, time.UTC))
	got := ts.Add(Interval{Months: 1})
	want := time.Date(2000, 3, 2, 0, 0, 0, 0, time.UTC) // Go's AddDate normalizes Jan 31 + 1mo
	assert.Equal(t, want, got.Time())
}

func TestIntervalSign(t *testing.T) {
	assert.Equal(t, 1, Interval{Microseconds: 5}.Sign())
	assert.Equal(t, -1, Interval{Microseconds: -5}.Sign())
	assert.Equal(t, 0, Interval{}.Sign())
	assert.Equal(t, 1, Interval{Months: 1}.Sign())
}

func TestIntervalScale(t *testing.T) {
	iv := Interval{Days: 10, Microseconds: 100}
	scaled := iv.Scale(0.5)
	assert.Equal(t, int32(5), scaled.Days)
	assert.Equal(t, int64(50), scaled.Microseconds)
}
