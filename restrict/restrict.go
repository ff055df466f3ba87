// Package restrict implements at/minus (spec.md §4.7): filtering a
// temporal value to the sub-intervals where it matches (at) or does not
// match (minus) a value, span, or time predicate. A restriction whose
// result is empty surfaces as ok=false, never an error (spec.md §7: empty
// result is not EmptyInput).
package restrict

import (
	"github.com/banshee-data/mobitemporal/basetype"
	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// AtValue restricts seq to the sub-intervals where its value equals target,
// interpolating under seq's own interpolation mode. Returns ok=false if
// target never occurs.
//
// TestValueAtInterpolatesLinear in package ttype already exercises the
// underlying interpolation; this covers acceptance scenario S1 end to end
// (at_value(15) on [10@t0, 20@t1) Linear -> instant 15@t_mid).
func AtValue[B any](seq ttype.TSequence[B], target B) (ttype.TSequenceSet[B], bool, error) {
	ops := basetype.MustFor[B]()
	var hits []ttype.TSequence[B]

	addSingleton := func(t ttime.Timestamp) error {
		s, err := ttype.NewSequence([]ttype.TInstant[B]{ttype.NewInstant(target, t)}, true, true, ttype.Step)
		if err != nil {
			return err
		}
		hits = append(hits, s)
		return nil
	}

	n := seq.NumInstants()
	if seq.Interp == ttype.Step || n == 1 {
		for i := 0; i < n; i++ {
			inst := seq.Instant(i)
			if !ops.Equal(inst.Value, target) {
				continue
			}
			lowerInc := true
			if i == 0 {
				lowerInc = seq.LowerInc
			}
			var upper ttime.Timestamp
			upperInc := false
			if i == n-1 {
				upper, upperInc = inst.Time, seq.UpperInc
				s, err := ttype.NewSequence([]ttype.TInstant[B]{ttype.NewInstant(target, inst.Time)}, lowerInc, upperInc, ttype.Step)
				if err != nil {
					return ttype.TSequenceSet[B]{}, false, err
				}
				hits = append(hits, s)
				continue
			}
			upper = seq.Instant(i + 1).Time
			s, err := ttype.NewSequence([]ttype.TInstant[B]{
				ttype.NewInstant(target, inst.Time), ttype.NewInstant(target, upper),
			}, lowerInc, upperInc, ttype.Step)
			if err != nil {
				return ttype.TSequenceSet[B]{}, false, err
			}
			hits = append(hits, s)
		}
	} else {
		for i := 0; i < n; i++ {
			inst := seq.Instant(i)
			if ops.Equal(inst.Value, target) {
				if err := addSingleton(inst.Time); err != nil {
					return ttype.TSequenceSet[B]{}, false, err
				}
			}
			if i == n-1 || ops.SolveRatio == nil {
				continue
			}
			next := seq.Instant(i + 1)
			ratio, ok := ops.SolveRatio(inst.Value, next.Value, target)
			if !ok || ratio <= 0 || ratio >= 1 {
				continue
			}
			total := float64(next.Time.Sub(inst.Time))
			crossing := inst.Time.Add(ttime.Interval{Microseconds: int64(ratio * total)})
			if err := addSingleton(crossing); err != nil {
				return ttype.TSequenceSet[B]{}, false, err
			}
		}
	}

	if len(hits) == 0 {
		return ttype.TSequenceSet[B]{}, false, nil
	}
	set, err := ttype.NewSequenceSet(hits)
	return set, true, err
}

// MinusValue restricts seq to the complement of AtValue: the sub-intervals
// where its value does not equal target.
func MinusValue[B any](seq ttype.TSequence[B], target B) (ttype.TSequenceSet[B], bool, error) {
	at, ok, err := AtValue(seq, target)
	if err != nil {
		return ttype.TSequenceSet[B]{}, false, err
	}
	excluded := span.NewSpanSet[ttime.Timestamp](nil)
	if ok {
		var spans []span.Span[ttime.Timestamp]
		for i := 0; i < at.NumSequences(); i++ {
			spans = append(spans, at.Sequence(i).TimeSpan())
		}
		excluded = span.NewSpanSet(spans)
	}
	return complementWithin(seq, excluded)
}

// complementWithin returns the portions of seq's time span not covered by
// excluded, resampling seq's value at the resulting sub-interval endpoints.
func complementWithin[B any](seq ttype.TSequence[B], excluded span.SpanSet[ttime.Timestamp]) (ttype.TSequenceSet[B], bool, error) {
	fullSet := span.NewSpanSet([]span.Span[ttime.Timestamp]{seq.TimeSpan()})
	remaining := fullSet.Difference(excluded)
	if remaining.IsEmpty() {
		return ttype.TSequenceSet[B]{}, false, nil
	}

	var out []ttype.TSequence[B]
	for _, s := range remaining.Spans() {
		v1, ok1 := seq.ValueAt(s.Lower)
		v2, ok2 := seq.ValueAt(s.Upper)
		if !ok1 {
			v1 = v2
		}
		if !ok2 {
			v2 = v1
		}
		instants := []ttype.TInstant[B]{ttype.NewInstant(v1, s.Lower)}
		if s.Lower != s.Upper {
			instants = append(instants, ttype.NewInstant(v2, s.Upper))
		}
		newSeq, err := ttype.NewSequence(instants, s.LowerInc, s.UpperInc, seq.Interp)
		if err != nil {
			return ttype.TSequenceSet[B]{}, false, err
		}
		out = append(out, newSeq)
	}
	set, err := ttype.NewSequenceSet(out)
	return set, true, err
}

// AtTimeSpan restricts seq to the portion within ts, inheriting ts's
// boundary inclusivity where it is narrower than seq's own.
func AtTimeSpan[B any](seq ttype.TSequence[B], ts span.Span[ttime.Timestamp]) (ttype.TSequence[B], bool, error) {
	inter, overlaps := seq.TimeSpan().Intersection(ts)
	if !overlaps {
		return ttype.TSequence[B]{}, false, nil
	}
	lowerVal, ok := seq.ValueAt(inter.Lower)
	if !ok {
		return ttype.TSequence[B]{}, false, nil
	}
	instants := []ttype.TInstant[B]{ttype.NewInstant(lowerVal, inter.Lower)}
	for i := 0; i < seq.NumInstants(); i++ {
		inst := seq.Instant(i)
		if inst.Time.After(inter.Lower) && inst.Time.Before(inter.Upper) {
			instants = append(instants, inst)
		}
	}
	if inter.Upper != inter.Lower {
		if upperVal, ok := seq.ValueAt(inter.Upper); ok {
			instants = append(instants, ttype.NewInstant(upperVal, inter.Upper))
		}
	}
	out, err := ttype.NewSequence(instants, inter.LowerInc, inter.UpperInc, seq.Interp)
	return out, true, err
}

// MinusTimeSpan restricts seq to the complement of AtTimeSpan.
func MinusTimeSpan[B any](seq ttype.TSequence[B], ts span.Span[ttime.Timestamp]) (ttype.TSequenceSet[B], bool, error) {
	fullSet := span.NewSpanSet([]span.Span[ttime.Timestamp]{seq.TimeSpan()})
	excludeSet := span.NewSpanSet([]span.Span[ttime.Timestamp]{ts})
	excluded := fullSet.Intersection(excludeSet)
	return complementWithin(seq, excluded)
}
