package ttype

import (
	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// TInstantSet represents a temporal value sampled at isolated, strictly
// increasing times: no interpolation is defined between consecutive
// instants.
type TInstantSet[B any] struct {
	Instants []TInstant[B]
}

// NewInstantSet validates strict time ordering and builds a TInstantSet.
func NewInstantSet[B any](instants []TInstant[B]) (TInstantSet[B], error) {
	if err := validateStrictlyOrdered(instants); err != nil {
		return TInstantSet[B]{}, err
	}
	cp := make([]TInstant[B], len(instants))
	copy(cp, instants)
	return TInstantSet[B]{Instants: cp}, nil
}

func (s TInstantSet[B]) NumInstants() int { return len(s.Instants) }

func (s TInstantSet[B]) Instant(n int) TInstant[B] { return s.Instants[n] }

func (s TInstantSet[B]) StartValue() B { return s.Instants[0].Value }
func (s TInstantSet[B]) EndValue() B   { return s.Instants[len(s.Instants)-1].Value }

// Values returns the value of every instant in time order (duplicates kept,
// matching spec.md's values() accessor for instant sets).
func (s TInstantSet[B]) Values() []B {
	out := make([]B, len(s.Instants))
	for i, inst := range s.Instants {
		out[i] = inst.Value
	}
	return out
}

// TimeSpan returns the bounding time span, inclusive on both ends.
func (s TInstantSet[B]) TimeSpan() span.Span[ttime.Timestamp] {
	first, last := s.Instants[0].Time, s.Instants[len(s.Instants)-1].Time
	sp, _ := span.Make(first, last, true, true)
	return sp
}

// Duration returns the exact microsecond span covered.
func (s TInstantSet[B]) Duration() ttime.Interval {
	first, last := s.Instants[0].Time, s.Instants[len(s.Instants)-1].Time
	return ttime.Interval{Microseconds: last.Sub(first)}
}

// Shift translates every instant by iv.
func (s TInstantSet[B]) Shift(iv ttime.Interval) TInstantSet[B] {
	out := make([]TInstant[B], len(s.Instants))
	for i, inst := range s.Instants {
		out[i] = inst.Shift(iv)
	}
	return TInstantSet[B]{Instants: out}
}

// TScale rescales the timestamps so the overall duration equals newDur,
// anchored at the first instant and distributed proportionally across
// interior instants.
func (s TInstantSet[B]) TScale(newDur ttime.Interval) (TInstantSet[B], error) {
	if len(s.Instants) == 1 {
		return s, nil
	}
	if newDur.Sign() <= 0 {
		return TInstantSet[B]{}, ErrInvalidDuration
	}
	first := s.Instants[0].Time
	total := float64(s.Instants[len(s.Instants)-1].Time.Sub(first))
	out := make([]TInstant[B], len(s.Instants))
	for i, inst := range s.Instants {
		ratio := 0.0
		if total != 0 {
			ratio = float64(inst.Time.Sub(first)) / total
		}
		scaled := newDur.Scale(ratio)
		out[i] = TInstant[B]{Value: inst.Value, Time: first.Add(scaled)}
	}
	return TInstantSet[B]{Instants: out}, nil
}

// MinValue and MaxValue return the extremal values under the base type's
// total order.
func (s TInstantSet[B]) MinValue() B {
	ops := opsFor[B]()
	min := s.Instants[0].Value
	for _, inst := range s.Instants[1:] {
		if ops.Less(inst.Value, min) {
			min = inst.Value
		}
	}
	return min
}

func (s TInstantSet[B]) MaxValue() B {
	ops := opsFor[B]()
	max := s.Instants[0].Value
	for _, inst := range s.Instants[1:] {
		if ops.Less(max, inst.Value) {
			max = inst.Value
		}
	}
	return max
}
