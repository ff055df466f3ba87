package ttype

import (
	"fmt"
	"sort"

	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// TSequenceSet is an ordered, time-disjoint run of sequences sharing base
// type and interpolation mode; consecutive sequences may touch at a bound
// that only one of them includes.
type TSequenceSet[B any] struct {
	Sequences []TSequence[B]
}

// NewSequenceSet validates that sequences share interpolation and do not
// overlap in time (touching at a bound only one side includes is allowed),
// sorts them by start time, and builds the set. An empty sequence set
// is not representable (spec.md §3); callers that would construct one
// should surface nil/None instead of calling this constructor.
func NewSequenceSet[B any](sequences []TSequence[B]) (TSequenceSet[B], error) {
	if len(sequences) == 0 {
		return TSequenceSet[B]{}, ErrEmptyInput
	}
	cp := make([]TSequence[B], len(sequences))
	copy(cp, sequences)
	// Stable: when two sequences start at the same instant (a singleton
	// crossing followed immediately by the next open segment), the caller's
	// relative order is the only signal of which comes first.
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Instants[0].Time.Before(cp[j].Instants[0].Time)
	})
	interp := cp[0].Interp
	for i, seq := range cp {
		if seq.Interp != interp {
			return TSequenceSet[B]{}, fmt.Errorf("%w: sequence %d has interpolation %s, expected %s",
				ErrTypeMismatch, i, seq.Interp, interp)
		}
		if i > 0 {
			prev := cp[i-1].TimeSpan()
			cur := seq.TimeSpan()
			// Sequences may legitimately touch at a shared boundary instant,
			// as long as exactly one side is inclusive there (e.g. [a,b)
			// followed by [b,c]): that's how a value discontinuity at b is
			// represented. Only a genuine overlap (both sides claiming the
			// same instant) is rejected.
			if prev.Overlaps(cur) {
				return TSequenceSet[B]{}, fmt.Errorf("%w: sequence %d overlaps sequence %d", ErrOutOfOrder, i, i-1)
			}
		}
	}
	return TSequenceSet[B]{Sequences: cp}, nil
}

func (s TSequenceSet[B]) NumInstants() int {
	n := 0
	for _, seq := range s.Sequences {
		n += seq.NumInstants()
	}
	return n
}

func (s TSequenceSet[B]) NumSequences() int { return len(s.Sequences) }

func (s TSequenceSet[B]) Sequence(n int) TSequence[B] { return s.Sequences[n] }

func (s TSequenceSet[B]) StartValue() B { return s.Sequences[0].StartValue() }
func (s TSequenceSet[B]) EndValue() B   { return s.Sequences[len(s.Sequences)-1].EndValue() }

// Values returns the value of every instant across every sequence, in order
// (repeated values are kept).
func (s TSequenceSet[B]) Values() []B {
	var out []B
	for _, seq := range s.Sequences {
		out = append(out, seq.Values()...)
	}
	return out
}

// TimeSpan returns the convex-hull bounding time span across all sequences.
func (s TSequenceSet[B]) TimeSpan() span.Span[ttime.Timestamp] {
	first := s.Sequences[0].TimeSpan()
	last := s.Sequences[len(s.Sequences)-1].TimeSpan()
	sp, _ := span.Make(first.Lower, last.Upper, first.LowerInc, last.UpperInc)
	return sp
}

// Duration sums the individual sequences' exact durations; gaps between
// sequences are not counted (spec.md §4.4: duration excludes time the
// value is undefined).
func (s TSequenceSet[B]) Duration() ttime.Interval {
	var total int64
	for _, seq := range s.Sequences {
		total += seq.Duration().Microseconds
	}
	return ttime.Interval{Microseconds: total}
}

// Shift translates every sequence by iv.
func (s TSequenceSet[B]) Shift(iv ttime.Interval) TSequenceSet[B] {
	out := make([]TSequence[B], len(s.Sequences))
	for i, seq := range s.Sequences {
		out[i] = seq.Shift(iv)
	}
	return TSequenceSet[B]{Sequences: out}
}

// TScale rescales the whole set's time span to newDur, preserving each
// sequence's relative position and internal shape.
func (s TSequenceSet[B]) TScale(newDur ttime.Interval) (TSequenceSet[B], error) {
	if newDur.Sign() <= 0 {
		return TSequenceSet[B]{}, ErrInvalidDuration
	}
	bounds := s.TimeSpan()
	totalOld := float64(bounds.Upper.Sub(bounds.Lower))
	out := make([]TSequence[B], len(s.Sequences))
	for i, seq := range s.Sequences {
		seqSpan := seq.TimeSpan()
		var startRatio, endRatio float64
		if totalOld != 0 {
			startRatio = float64(seqSpan.Lower.Sub(bounds.Lower)) / totalOld
			endRatio = float64(seqSpan.Upper.Sub(bounds.Lower)) / totalOld
		}
		newStart := bounds.Lower.Add(newDur.Scale(startRatio))
		newEnd := bounds.Lower.Add(newDur.Scale(endRatio))
		seqDur := ttime.Interval{Microseconds: newEnd.Sub(newStart)}
		shifted := seq.Shift(ttime.Interval{Microseconds: newStart.Sub(seqSpan.Lower)})
		if seq.IsInstant() {
			out[i] = shifted
			continue
		}
		scaled, err := shifted.TScale(seqDur)
		if err != nil {
			return TSequenceSet[B]{}, err
		}
		out[i] = scaled
	}
	return TSequenceSet[B]{Sequences: out}, nil
}

func (s TSequenceSet[B]) MinValue() B {
	ops := opsFor[B]()
	min := s.Sequences[0].MinValue()
	for _, seq := range s.Sequences[1:] {
		if v := seq.MinValue(); ops.Less(v, min) {
			min = v
		}
	}
	return min
}

func (s TSequenceSet[B]) MaxValue() B {
	ops := opsFor[B]()
	max := s.Sequences[0].MaxValue()
	for _, seq := range s.Sequences[1:] {
		if v := seq.MaxValue(); ops.Less(max, v) {
			max = v
		}
	}
	return max
}

func (s TSequenceSet[B]) String() string {
	out := "{"
	for i, seq := range s.Sequences {
		if i > 0 {
			out += ", "
		}
		out += seq.String()
	}
	return out + "}"
}
