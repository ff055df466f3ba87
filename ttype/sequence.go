package ttype

import (
	"fmt"

	"github.com/banshee-data/mobitemporal/basetype"
	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// TSequence is a continuous temporal value: a strictly time-ordered,
// normalized run of instants sharing one interpolation mode.
type TSequence[B any] struct {
	Instants           []TInstant[B]
	LowerInc, UpperInc bool
	Interp             Interp
}

// NewSequence validates the §3 invariants and normalizes the instant run:
// ≥1 instant, both bounds inclusive if exactly one instant, strictly
// increasing timestamps, no NaN values (for base types registering IsNaN),
// no removable collinear/flat middle instants.
func NewSequence[B any](instants []TInstant[B], lowerInc, upperInc bool, interp Interp) (TSequence[B], error) {
	if err := validateStrictlyOrdered(instants); err != nil {
		return TSequence[B]{}, err
	}
	if isNaN := opsFor[B]().IsNaN; isNaN != nil {
		for k, inst := range instants {
			if isNaN(inst.Value) {
				return TSequence[B]{}, fmt.Errorf("%w: instant %d has a NaN value", span.ErrInvalidSpan, k)
			}
		}
	}
	if len(instants) == 1 && !(lowerInc && upperInc) {
		return TSequence[B]{}, fmt.Errorf("%w: single-instant sequence must be inclusive on both bounds", ErrOutOfOrder)
	}
	if interp == Linear {
		ops := opsFor[B]()
		if !ops.Linear {
			return TSequence[B]{}, fmt.Errorf("%w: base type %s has no linear interpolation", ErrTypeMismatch, ops.Name)
		}
	}
	normalized := normalize(instants, interp)
	cp := make([]TInstant[B], len(normalized))
	copy(cp, normalized)
	return TSequence[B]{Instants: cp, LowerInc: lowerInc, UpperInc: upperInc, Interp: interp}, nil
}

// normalize removes any instant that is the exact interpolated (Linear) or
// redundant flat (Step) midpoint of its neighbors (spec.md §4.4).
func normalize[B any](instants []TInstant[B], interp Interp) []TInstant[B] {
	if len(instants) < 3 {
		return instants
	}
	ops := opsFor[B]()
	out := make([]TInstant[B], 0, len(instants))
	out = append(out, instants[0])
	for i := 1; i < len(instants)-1; i++ {
		prev := out[len(out)-1]
		cur := instants[i]
		next := instants[i+1]
		if removableMiddle(prev, cur, next, interp, ops) {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, instants[len(instants)-1])
	return out
}

// removableMiddle reports whether cur can be dropped without changing the
// sequence's meaning: under Linear, cur lies exactly on the interpolated
// line between prev and next; under Step, prev/cur/next share the same
// value (a flat run with a removable interior point).
func removableMiddle[B any](prev, cur, next TInstant[B], interp Interp, ops *basetype.Ops[B]) bool {
	if interp == Linear && ops.Linear && ops.Interpolate != nil {
		total := float64(next.Time.Sub(prev.Time))
		if total == 0 {
			return false
		}
		ratio := float64(cur.Time.Sub(prev.Time)) / total
		if ops.Collinear != nil {
			return ops.Collinear(prev.Value, cur.Value, next.Value, ratio, epsilon)
		}
		expected := ops.Interpolate(prev.Value, next.Value, ratio)
		return ops.Equal(expected, cur.Value)
	}
	return ops.Equal(prev.Value, cur.Value) && ops.Equal(cur.Value, next.Value)
}

func (s TSequence[B]) NumInstants() int { return len(s.Instants) }

func (s TSequence[B]) Instant(n int) TInstant[B] { return s.Instants[n] }

func (s TSequence[B]) StartValue() B { return s.Instants[0].Value }
func (s TSequence[B]) EndValue() B   { return s.Instants[len(s.Instants)-1].Value }

func (s TSequence[B]) IsInstant() bool { return len(s.Instants) == 1 }

// Values returns the value of every instant, in time order (repeated values
// are kept).
func (s TSequence[B]) Values() []B {
	out := make([]B, len(s.Instants))
	for i, inst := range s.Instants {
		out[i] = inst.Value
	}
	return out
}

// TimeSpan returns the sequence's time span, honoring the sequence's own
// bound inclusivity.
func (s TSequence[B]) TimeSpan() span.Span[ttime.Timestamp] {
	first, last := s.Instants[0].Time, s.Instants[len(s.Instants)-1].Time
	sp, _ := span.Make(first, last, s.LowerInc, s.UpperInc)
	return sp
}

func (s TSequence[B]) Duration() ttime.Interval {
	first, last := s.Instants[0].Time, s.Instants[len(s.Instants)-1].Time
	return ttime.Interval{Microseconds: last.Sub(first)}
}

// Shift translates every instant and the sequence's bounds by iv.
func (s TSequence[B]) Shift(iv ttime.Interval) TSequence[B] {
	out := make([]TInstant[B], len(s.Instants))
	for i, inst := range s.Instants {
		out[i] = inst.Shift(iv)
	}
	return TSequence[B]{Instants: out, LowerInc: s.LowerInc, UpperInc: s.UpperInc, Interp: s.Interp}
}

// TScale linearly rescales timestamps so the overall duration equals newDur;
// values are unchanged. A single-instant sequence is a no-op (Open
// Question decision, SPEC_FULL.md §7).
func (s TSequence[B]) TScale(newDur ttime.Interval) (TSequence[B], error) {
	if s.IsInstant() {
		return s, nil
	}
	if newDur.Sign() <= 0 {
		return TSequence[B]{}, ErrInvalidDuration
	}
	first := s.Instants[0].Time
	total := float64(s.Instants[len(s.Instants)-1].Time.Sub(first))
	out := make([]TInstant[B], len(s.Instants))
	for i, inst := range s.Instants {
		ratio := float64(inst.Time.Sub(first)) / total
		out[i] = TInstant[B]{Value: inst.Value, Time: first.Add(newDur.Scale(ratio))}
	}
	return TSequence[B]{Instants: out, LowerInc: s.LowerInc, UpperInc: s.UpperInc, Interp: s.Interp}, nil
}

// MinValue, MaxValue return the extremal values under the base type's total
// order.
func (s TSequence[B]) MinValue() B {
	ops := opsFor[B]()
	min := s.Instants[0].Value
	for _, inst := range s.Instants[1:] {
		if ops.Less(inst.Value, min) {
			min = inst.Value
		}
	}
	return min
}

func (s TSequence[B]) MaxValue() B {
	ops := opsFor[B]()
	max := s.Instants[0].Value
	for _, inst := range s.Instants[1:] {
		if ops.Less(max, inst.Value) {
			max = inst.Value
		}
	}
	return max
}

// SetInterpolation converts between Step and Linear by reinterpreting the
// same instants under the new mode (re-normalized by NewSequence). No
// instants are added: Linear→Step holds each segment's left value, and
// Step→Linear interpolates between consecutive instants, so a step change
// between two instants becomes a linear ramp rather than staying flat.
func (s TSequence[B]) SetInterpolation(newInterp Interp) (TSequence[B], error) {
	if s.Interp == newInterp {
		return s, nil
	}
	if newInterp == Linear {
		ops := opsFor[B]()
		if !ops.Linear {
			return TSequence[B]{}, fmt.Errorf("%w: base type %s has no linear interpolation", ErrTypeMismatch, ops.Name)
		}
	}
	return NewSequence(s.Instants, s.LowerInc, s.UpperInc, newInterp)
}

// ValueAt evaluates the sequence at time t, interpolating under its
// interpolation mode. Requires t to fall within the sequence's time span.
func (s TSequence[B]) ValueAt(t ttime.Timestamp) (B, bool) {
	var zero B
	ts := s.TimeSpan()
	if !ts.ContainsElement(t) {
		return zero, false
	}
	for i := 0; i < len(s.Instants); i++ {
		if s.Instants[i].Time == t {
			return s.Instants[i].Value, true
		}
	}
	for i := 0; i < len(s.Instants)-1; i++ {
		a, b := s.Instants[i], s.Instants[i+1]
		if a.Time.Before(t) && t.Before(b.Time) {
			if s.Interp == Step {
				return a.Value, true
			}
			ops := opsFor[B]()
			ratio := float64(t.Sub(a.Time)) / float64(b.Time.Sub(a.Time))
			return ops.Interpolate(a.Value, b.Value, ratio), true
		}
	}
	return zero, false
}

func (s TSequence[B]) String() string {
	lb, ub := "[", ")"
	if !s.LowerInc {
		lb = "("
	}
	if s.UpperInc {
		ub = "]"
	}
	out := lb
	for i, inst := range s.Instants {
		if i > 0 {
			out += ", "
		}
		out += inst.String()
	}
	return out + ub
}
