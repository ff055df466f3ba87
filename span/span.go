// Package span implements Span and SpanSet (spec.md §4.2): half-open
// intervals over a totally ordered base domain (timestamp, int, float) and
// normalized, sorted, non-overlapping sets of them.
package span

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrInvalidSpan is returned when lower > upper, or when an instant span
// (lower == upper) is not inclusive on both bounds (spec.md §7).
var ErrInvalidSpan = errors.New("span: invalid bounds")

// Span is a half-open (or closed, per the inclusivity flags) interval
// [Lower, Upper] over T. The zero value is not a valid Span; always
// construct through Make or MakeDiscrete.
type Span[T constraints.Ordered] struct {
	Lower, Upper       T
	LowerInc, UpperInc bool
}

// Make builds a Span over a continuous domain (float64). It validates that
// Lower <= Upper and that an instant span (Lower == Upper) is inclusive on
// both bounds.
func Make[T constraints.Ordered](lower, upper T, lowerInc, upperInc bool) (Span[T], error) {
	if lower != lower || upper != upper {
		return Span[T]{}, fmt.Errorf("%w: NaN bound", ErrInvalidSpan)
	}
	if lower > upper {
		return Span[T]{}, fmt.Errorf("%w: lower %v > upper %v", ErrInvalidSpan, lower, upper)
	}
	if lower == upper && !(lowerInc && upperInc) {
		return Span[T]{}, fmt.Errorf("%w: instant span must be inclusive on both bounds", ErrInvalidSpan)
	}
	return Span[T]{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

// MakeDiscrete builds a Span over a discrete integer domain (int64-backed
// timestamps, or plain integers), canonicalizing to the [l, u) form spec.md
// §3 requires: an exclusive bound is absorbed into its neighbor by
// stepping by one unit, so the stored form always has UpperInc == false
// unless the span is a single-point instant.
func MakeDiscrete[T constraints.Integer](lower, upper T, lowerInc, upperInc bool) (Span[T], error) {
	if lower == upper && lowerInc && upperInc {
		// A single-point span keeps its inclusive instant form, the only
		// discrete form allowed to have UpperInc true.
		return Span[T]{Lower: lower, Upper: upper, LowerInc: true, UpperInc: true}, nil
	}
	if !lowerInc {
		lower++
		lowerInc = true
	}
	if upperInc {
		upper++
		upperInc = false
	}
	if lower >= upper {
		return Span[T]{}, fmt.Errorf("%w: canonical span [%v, %v) is empty", ErrInvalidSpan, lower, upper)
	}
	return Span[T]{Lower: lower, Upper: upper, LowerInc: true, UpperInc: false}, nil
}

// IsInstant reports whether the span contains exactly one value.
func (s Span[T]) IsInstant() bool {
	return s.Lower == s.Upper
}

// ContainsElement reports whether v falls within the span, honoring
// inclusivity.
func (s Span[T]) ContainsElement(v T) bool {
	if v < s.Lower || (v == s.Lower && !s.LowerInc) {
		return false
	}
	if v > s.Upper || (v == s.Upper && !s.UpperInc) {
		return false
	}
	return true
}

// Contains reports whether s fully contains other.
func (s Span[T]) Contains(other Span[T]) bool {
	if other.Lower < s.Lower {
		return false
	}
	if other.Lower == s.Lower && other.LowerInc && !s.LowerInc {
		return false
	}
	if other.Upper > s.Upper {
		return false
	}
	if other.Upper == s.Upper && other.UpperInc && !s.UpperInc {
		return false
	}
	return true
}

// Contained reports whether s is fully contained in other.
func (s Span[T]) Contained(other Span[T]) bool {
	return other.Contains(s)
}

// Overlaps reports whether s and other share at least one value.
func (s Span[T]) Overlaps(other Span[T]) bool {
	if s.Upper < other.Lower || (s.Upper == other.Lower && !(s.UpperInc && other.LowerInc)) {
		return false
	}
	if other.Upper < s.Lower || (other.Upper == s.Lower && !(other.UpperInc && s.LowerInc)) {
		return false
	}
	return true
}

// Adjacent reports whether s and other touch at exactly one boundary value
// with no overlap: one span's inclusive bound meets the other's exclusive
// bound at the same value (spec.md §4.2: "[1,3) adj [3,5]", not "[1,3] adj
// [3,5]" since the latter overlaps at 3).
func (s Span[T]) Adjacent(other Span[T]) bool {
	if s.Upper == other.Lower && s.UpperInc != other.LowerInc && (s.UpperInc || other.LowerInc) {
		return true
	}
	if other.Upper == s.Lower && other.UpperInc != s.LowerInc && (other.UpperInc || s.LowerInc) {
		return true
	}
	return false
}

// Before reports whether s ends before other begins with no shared value;
// spans that touch at a bound only one side includes count as before.
func (s Span[T]) Before(other Span[T]) bool {
	if s.Upper < other.Lower {
		return true
	}
	if s.Upper == other.Lower && !(s.UpperInc && other.LowerInc) {
		return true
	}
	return false
}

// After reports whether s begins strictly after other ends.
func (s Span[T]) After(other Span[T]) bool {
	return other.Before(s)
}

// Intersection returns the overlapping portion of s and other, or false if
// they do not overlap.
func (s Span[T]) Intersection(other Span[T]) (Span[T], bool) {
	if !s.Overlaps(other) {
		return Span[T]{}, false
	}
	lower, lowerInc := s.Lower, s.LowerInc
	if other.Lower > lower || (other.Lower == lower && !other.LowerInc) {
		lower, lowerInc = other.Lower, other.LowerInc
	}
	upper, upperInc := s.Upper, s.UpperInc
	if other.Upper < upper || (other.Upper == upper && !other.UpperInc) {
		upper, upperInc = other.Upper, other.UpperInc
	}
	return Span[T]{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, true
}

func (s Span[T]) String() string {
	lb, ub := "[", ")"
	if !s.LowerInc {
		lb = "("
	}
	if s.UpperInc {
		ub = "]"
	}
	return fmt.Sprintf("%s%v, %v%s", lb, s.Lower, s.Upper, ub)
}
