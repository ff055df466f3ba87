// Package ttime is the time domain the rest of the core builds on: a
// microsecond-resolution Timestamp and a calendar-aware Interval, closed
// under addition (spec.md §3, "Time domain").
package ttime

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDuration is returned when an Interval carries calendar months
// but is used in a context that requires an exact numeric duration
// (spec.md §7, InvalidDuration).
var ErrInvalidDuration = errors.New("ttime: interval with nonzero months used as a numeric duration")

// Timestamp is a 64-bit microsecond count since the Unix epoch.
type Timestamp int64

// microsPerSecond converts between Unix seconds and Timestamp microseconds.
const microsPerSecond = 1_000_000

// FromTime converts a time.Time to a Timestamp, truncating to microsecond
// resolution.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix()*microsPerSecond + int64(t.Nanosecond())/1000)
}

// Time converts a Timestamp back to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	sec := int64(t) / microsPerSecond
	micro := int64(t) % microsPerSecond
	if micro < 0 {
		micro += microsPerSecond
		sec--
	}
	return time.Unix(sec, micro*1000).UTC()
}

// Before reports whether t is strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t < u }

// After reports whether t is strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t > u }

// Sub returns the exact microsecond difference t - u.
func (t Timestamp) Sub(u Timestamp) int64 { return int64(t) - int64(u) }

func (t Timestamp) String() string {
	return t.Time().Format("2006-01-02 15:04:05.999999")
}

// Interval is a calendar-aware span of time: months are applied
// calendar-wise with time.AddDate semantics (a day past the end of the
// target month overflows, so adding a month to Jan 31 lands in early
// March), days and microseconds are applied exactly.
type Interval struct {
	Months       int32
	Days         int32
	Microseconds int64
}

// IsNumeric reports whether the interval can be used as an exact numeric
// duration, i.e. carries no calendar-relative months component.
func (iv Interval) IsNumeric() bool { return iv.Months == 0 }

// Duration converts the interval to a time.Duration. It fails with
// ErrInvalidDuration if the interval has a nonzero Months component,
// which cannot be represented as a fixed duration (spec.md §3, §7).
func (iv Interval) Duration() (time.Duration, error) {
	if !iv.IsNumeric() {
		return 0, ErrInvalidDuration
	}
	return time.Duration(iv.Days)*24*time.Hour + time.Duration(iv.Microseconds)*time.Microsecond, nil
}

// Sign reports the sign of the interval as if it were applied to a fixed
// reference instant: -1, 0, or 1. Used by span validation to reject
// non-positive durations.
func (iv Interval) Sign() int {
	if iv.Months != 0 {
		if iv.Months < 0 {
			return -1
		}
		return 1
	}
	if iv.Days != 0 {
		if iv.Days < 0 {
			return -1
		}
		return 1
	}
	if iv.Microseconds < 0 {
		return -1
	}
	if iv.Microseconds > 0 {
		return 1
	}
	return 0
}

// Add returns t shifted by iv: months are applied calendar-wise in UTC,
// days and microseconds are applied as exact offsets.
func (t Timestamp) Add(iv Interval) Timestamp {
	tm := t.Time()
	if iv.Months != 0 {
		tm = tm.AddDate(0, int(iv.Months), 0)
	}
	tm = tm.AddDate(0, 0, int(iv.Days))
	tm = tm.Add(time.Duration(iv.Microseconds) * time.Microsecond)
	return FromTime(tm)
}

// Negate returns the interval that, added to any timestamp, undoes iv's
// effect (calendar month arithmetic is not exactly invertible across leap
// boundaries for AddDate semantics, but Negate follows the same convention
// Postgres intervals use: simple field negation).
func (iv Interval) Negate() Interval {
	return Interval{Months: -iv.Months, Days: -iv.Days, Microseconds: -iv.Microseconds}
}

func (iv Interval) String() string {
	return fmt.Sprintf("%d mons %d days %d us", iv.Months, iv.Days, iv.Microseconds)
}

// Scale multiplies every field of iv by factor, rounding to the nearest
// microsecond/day/month. Used by the ttype TScale methods to place each
// instant proportionally within the new duration (spec.md §4.2).
func (iv Interval) Scale(factor float64) Interval {
	return Interval{
		Months:       int32(math.Round(float64(iv.Months) * factor)),
		Days:         int32(math.Round(float64(iv.Days) * factor)),
		Microseconds: int64(math.Round(float64(iv.Microseconds) * factor)),
	}
}
