// Package tsync implements temporal synchronization (spec.md §4.5):
// aligning two temporal sequences to identical time support, optionally
// inserting instants at the times their values cross.
package tsync

import (
	"errors"
	"fmt"
	"sort"

	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// ErrTooComplex is returned when crossover insertion would materialize more
// instants than the caller's configured budget allows (spec.md §5, §7).
var ErrTooComplex = errors.New("tsync: crossover insertion exceeds instant budget")

// CrossingSolver finds the interior crossing ratio (0, 1) of two linear
// segments spanning the same time interval, given their endpoint values. ok
// is false if the segments do not cross in the interior of the interval.
type CrossingSolver[B any] func(v1a, v1b, v2a, v2b B) (ratio float64, ok bool)

// Synchronize aligns s1 and s2 to their common time domain, projecting each
// onto the union of both sequences' breakpoint times within that domain. It
// returns ok=false if the two sequences' time spans are disjoint.
func Synchronize[B any](s1, s2 ttype.TSequence[B]) (out1, out2 ttype.TSequence[B], ok bool, err error) {
	span1, span2 := s1.TimeSpan(), s2.TimeSpan()
	inter, overlaps := span1.Intersection(span2)
	if !overlaps {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, nil
	}
	times := breakpoints(s1, s2, inter)
	out1, err = projectAt(s1, times, inter)
	if err != nil {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, err
	}
	out2, err = projectAt(s2, times, inter)
	if err != nil {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, err
	}
	return out1, out2, true, nil
}

// SynchronizeCrossings synchronizes s1 and s2 as Synchronize does, then
// additionally inserts instants at every interior time where solver detects
// a crossing between consecutive breakpoints. solver is only consulted
// when both sequences are Linear over the segment; Step segments never
// cross mid-segment under this model. budget caps the number of instants
// the crossing insertion may materialize (spec.md §5's caller-configured
// instant budget); a non-positive budget leaves the insertion unbounded.
// Exceeding budget surfaces ErrTooComplex rather than continuing to
// allocate.
func SynchronizeCrossings[B any](s1, s2 ttype.TSequence[B], solver CrossingSolver[B], budget int) (out1, out2 ttype.TSequence[B], ok bool, err error) {
	span1, span2 := s1.TimeSpan(), s2.TimeSpan()
	inter, overlaps := span1.Intersection(span2)
	if !overlaps {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, nil
	}
	times := breakpoints(s1, s2, inter)
	if solver != nil && s1.Interp == ttype.Linear && s2.Interp == ttype.Linear {
		times, err = insertCrossings(s1, s2, times, solver, budget)
		if err != nil {
			return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, err
		}
	}
	out1, err = projectAt(s1, times, inter)
	if err != nil {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, err
	}
	out2, err = projectAt(s2, times, inter)
	if err != nil {
		return ttype.TSequence[B]{}, ttype.TSequence[B]{}, false, err
	}
	return out1, out2, true, nil
}

func breakpoints[B any](s1, s2 ttype.TSequence[B], bounds span.Span[ttime.Timestamp]) []ttime.Timestamp {
	seen := map[ttime.Timestamp]bool{}
	var times []ttime.Timestamp
	add := func(t ttime.Timestamp) {
		if bounds.ContainsElement(t) && !seen[t] {
			seen[t] = true
			times = append(times, t)
		}
	}
	for _, inst := range s1.Instants {
		add(inst.Time)
	}
	for _, inst := range s2.Instants {
		add(inst.Time)
	}
	add(bounds.Lower)
	add(bounds.Upper)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// insertCrossings adds, between every adjacent pair of breakpoints, the
// crossing time solver finds for that pair's linear segments, if any.
// budget <= 0 means unbounded; otherwise the insertion fails with
// ErrTooComplex as soon as the materialized time count would exceed it.
func insertCrossings[B any](s1, s2 ttype.TSequence[B], times []ttime.Timestamp, solver CrossingSolver[B], budget int) ([]ttime.Timestamp, error) {
	out := make([]ttime.Timestamp, 0, len(times))
	checkBudget := func() error {
		if budget > 0 && len(out) > budget {
			return fmt.Errorf("%w: crossing insertion produced more than %d instants", ErrTooComplex, budget)
		}
		return nil
	}
	for i := 0; i < len(times); i++ {
		out = append(out, times[i])
		if err := checkBudget(); err != nil {
			return nil, err
		}
		if i == len(times)-1 {
			break
		}
		a, b := times[i], times[i+1]
		v1a, ok1a := s1.ValueAt(a)
		v1b, ok1b := s1.ValueAt(b)
		v2a, ok2a := s2.ValueAt(a)
		v2b, ok2b := s2.ValueAt(b)
		if !ok1a || !ok1b || !ok2a || !ok2b {
			continue
		}
		ratio, found := solver(v1a, v1b, v2a, v2b)
		if !found || ratio <= 0 || ratio >= 1 {
			continue
		}
		total := float64(b.Sub(a))
		crossing := a.Add(ttime.Interval{Microseconds: int64(ratio * total)})
		if crossing.After(a) && crossing.Before(b) {
			out = append(out, crossing)
			if err := checkBudget(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// projectAt resamples s at every time in times (all within bounds),
// producing a new sequence with bounds' inclusivity. Every sampled time is
// kept as an instant, so both outputs of a synchronization share the same
// instant times.
func projectAt[B any](s ttype.TSequence[B], times []ttime.Timestamp, bounds span.Span[ttime.Timestamp]) (ttype.TSequence[B], error) {
	instants := make([]ttype.TInstant[B], 0, len(times))
	for _, t := range times {
		v, ok := s.ValueAt(t)
		if !ok {
			continue
		}
		instants = append(instants, ttype.NewInstant(v, t))
	}
	if len(instants) < 2 {
		return ttype.NewSequence(instants, bounds.LowerInc, bounds.UpperInc, s.Interp)
	}
	// Built directly: ttype.NewSequence's normalization would drop collinear
	// instants, inserted crossings included.
	return ttype.TSequence[B]{Instants: instants, LowerInc: bounds.LowerInc, UpperInc: bounds.UpperInc, Interp: s.Interp}, nil
}

// LinearCrossingSolver is the closed-form crossing solver for float64
// segments: finds the ratio r where v1a+(v1b-v1a)*r == v2a+(v2b-v2a)*r.
func LinearCrossingSolver(v1a, v1b, v2a, v2b float64) (float64, bool) {
	denom := (v1b - v1a) - (v2b - v2a)
	if denom == 0 {
		return 0, false
	}
	ratio := (v2a - v1a) / denom
	if ratio <= 0 || ratio >= 1 {
		return 0, false
	}
	return ratio, true
}
