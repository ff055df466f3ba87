// Package box implements TBox and STBox (spec.md §4.3): read-only bounding
// lattices over a value dimension, a time dimension, and (for STBox) spatial
// dimensions, with Allen-style topological predicates under "common
// dimensions" semantics — when only one side has a dimension, the predicate
// restricts to the dimension both sides actually carry.
package box

import (
	"errors"
	"fmt"

	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// ErrInvalidBox is returned when a box would have neither dimension present.
var ErrInvalidBox = errors.New("box: at least one of value or time span must be present")

// TBox bounds a numeric temporal value: a value span, a time span, or both.
// At least one must be present.
type TBox struct {
	Value *span.Span[float64]
	Time  *span.Span[ttime.Timestamp]
}

// NewTBox builds a TBox from optional value and time spans. At least one
// must be non-nil.
func NewTBox(value *span.Span[float64], time *span.Span[ttime.Timestamp]) (TBox, error) {
	if value == nil && time == nil {
		return TBox{}, ErrInvalidBox
	}
	return TBox{Value: value, Time: time}, nil
}

// HasValue reports whether the box carries a value dimension.
func (b TBox) HasValue() bool { return b.Value != nil }

// HasTime reports whether the box carries a time dimension.
func (b TBox) HasTime() bool { return b.Time != nil }

// commonDims reports which dimensions both boxes carry.
func (b TBox) commonDims(other TBox) (value, time bool) {
	return b.HasValue() && other.HasValue(), b.HasTime() && other.HasTime()
}

// Overlaps reports whether b and other overlap on every dimension both
// carry. A box with no common dimension with other is considered to overlap
// vacuously (common-dimensions semantics, spec.md §4.3): the predicate only
// constrains shared dimensions.
func (b TBox) Overlaps(other TBox) bool {
	value, time := b.commonDims(other)
	if value && !b.Value.Overlaps(*other.Value) {
		return false
	}
	if time && !b.Time.Overlaps(*other.Time) {
		return false
	}
	return true
}

// Contains reports whether b contains other on every dimension other
// carries that b also carries; dimensions other lacks are ignored, but a
// dimension other carries that b lacks makes containment false (b can't
// bound what it has no information about).
func (b TBox) Contains(other TBox) bool {
	if other.HasValue() {
		if !b.HasValue() || !b.Value.Contains(*other.Value) {
			return false
		}
	}
	if other.HasTime() {
		if !b.HasTime() || !b.Time.Contains(*other.Time) {
			return false
		}
	}
	return true
}

// Adjacent reports whether b and other touch on exactly the dimensions both
// carry, with no overlap on any of them.
func (b TBox) Adjacent(other TBox) bool {
	value, time := b.commonDims(other)
	if !value && !time {
		return false
	}
	touching := false
	if value {
		if b.Value.Overlaps(*other.Value) {
			return false
		}
		if b.Value.Adjacent(*other.Value) {
			touching = true
		}
	}
	if time {
		if b.Time.Overlaps(*other.Time) {
			return false
		}
		if b.Time.Adjacent(*other.Time) {
			touching = true
		}
	}
	return touching
}

// Before reports whether b's time dimension ends strictly before other's
// begins. Requires both boxes to carry a time dimension.
func (b TBox) Before(other TBox) (bool, error) {
	if !b.HasTime() || !other.HasTime() {
		return false, fmt.Errorf("box: Before requires a time dimension on both sides")
	}
	return b.Time.Before(*other.Time), nil
}

// After reports whether b's time dimension begins strictly after other's
// ends.
func (b TBox) After(other TBox) (bool, error) {
	if !b.HasTime() || !other.HasTime() {
		return false, fmt.Errorf("box: After requires a time dimension on both sides")
	}
	return b.Time.After(*other.Time), nil
}

// Expand inflates the box on every present dimension: the value span widens
// by valueDelta on each side and the time span by timeDelta on each side;
// the resulting spans are inclusive on both bounds.
func (b TBox) Expand(valueDelta float64, timeDelta ttime.Interval) (TBox, error) {
	out := TBox{}
	if b.HasValue() {
		v, err := span.Make(b.Value.Lower-valueDelta, b.Value.Upper+valueDelta, true, true)
		if err != nil {
			return TBox{}, err
		}
		out.Value = &v
	}
	if b.HasTime() {
		lower := b.Time.Lower.Add(timeDelta.Negate())
		upper := b.Time.Upper.Add(timeDelta)
		t, err := span.Make(lower, upper, true, true)
		if err != nil {
			return TBox{}, err
		}
		out.Time = &t
	}
	return out, nil
}

func (b TBox) String() string {
	s := "TBOX("
	if b.HasValue() {
		s += fmt.Sprintf("X%s", b.Value.String())
	}
	if b.HasTime() {
		if b.HasValue() {
			s += ","
		}
		s += fmt.Sprintf("T%s", b.Time.String())
	}
	return s + ")"
}
