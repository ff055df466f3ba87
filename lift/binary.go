package lift

import (
	"github.com/banshee-data/mobitemporal/tsync"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// BinarySequence synchronizes s1 and s2 (inserting crossings when solver is
// non-nil) and maps f pointwise over the aligned instants, producing a
// single sequence under outInterp: f(Seq, Seq) -> Seq, the non-discontinuous
// row of spec.md §4.6's dispatch table. Returns ok=false if the inputs
// share no common time. budget bounds the number of instants crossing
// insertion may materialize (spec.md §5); exceeding it surfaces
// tsync.ErrTooComplex rather than continuing to allocate.
func BinarySequence[B, R any](s1, s2 ttype.TSequence[B], f func(a, b B) R, solver tsync.CrossingSolver[B], outInterp ttype.Interp, budget int) (ttype.TSequence[R], bool, error) {
	a1, a2, ok, err := tsync.SynchronizeCrossings(s1, s2, solver, budget)
	if err != nil || !ok {
		return ttype.TSequence[R]{}, ok, err
	}
	out := make([]ttype.TInstant[R], a1.NumInstants())
	for i := 0; i < a1.NumInstants(); i++ {
		out[i] = ttype.NewInstant(f(a1.Instant(i).Value, a2.Instant(i).Value), a1.Instant(i).Time)
	}
	seq, err := ttype.NewSequence(out, a1.LowerInc, a1.UpperInc, outInterp)
	return seq, true, err
}

// BinaryDiscontinuousCrossing implements the discontinuous lifted-comparison
// row of spec.md §4.6: f changes value only at isolated crossing instants
// (e.g. equality of two otherwise-distinct linear curves), so the result
// promotes to a TSequenceSet<R> with each crossing instant split out as its
// own singleton sequence and every "f is false/other" run as its own
// half-open sequence, exclusive at any boundary touching a crossing.
//
// This is the engine used for acceptance scenario S2 (lift_eq of two
// crossing linear sequences). budget bounds crossing insertion as
// BinarySequence's does.
func BinaryDiscontinuousCrossing[B any, R comparable](s1, s2 ttype.TSequence[B], f func(a, b B) R, solver tsync.CrossingSolver[B], steadyValue R, budget int) (ttype.TSequenceSet[R], bool, error) {
	a1, a2, ok, err := tsync.SynchronizeCrossings(s1, s2, solver, budget)
	if err != nil || !ok {
		return ttype.TSequenceSet[R]{}, ok, err
	}

	type sample struct {
		t ttime.Timestamp
		v R
	}
	samples := make([]sample, a1.NumInstants())
	for i := 0; i < a1.NumInstants(); i++ {
		samples[i] = sample{t: a1.Instant(i).Time, v: f(a1.Instant(i).Value, a2.Instant(i).Value)}
	}

	// A steady run's interior breakpoints all carry the same value and are
	// removed by TSequence normalization anyway, so every run is expressed
	// with just its two endpoints.
	steadyRun := func(from, to ttime.Timestamp, lowerInc, upperInc bool) (ttype.TSequence[R], error) {
		return ttype.NewSequence([]ttype.TInstant[R]{
			ttype.NewInstant(steadyValue, from),
			ttype.NewInstant(steadyValue, to),
		}, lowerInc, upperInc, ttype.Step)
	}

	var out []ttype.TSequence[R]
	prevTime := samples[0].t
	prevInc := a1.LowerInc
	for i := 0; i < len(samples); i++ {
		if samples[i].v == steadyValue {
			continue
		}
		if samples[i].t != prevTime {
			run, err := steadyRun(prevTime, samples[i].t, prevInc, false)
			if err != nil {
				return ttype.TSequenceSet[R]{}, false, err
			}
			out = append(out, run)
		}
		singleton, err := ttype.NewSequence([]ttype.TInstant[R]{
			ttype.NewInstant(samples[i].v, samples[i].t),
		}, true, true, ttype.Step)
		if err != nil {
			return ttype.TSequenceSet[R]{}, false, err
		}
		out = append(out, singleton)
		prevTime = samples[i].t
		prevInc = false
	}
	endTime := samples[len(samples)-1].t
	if endTime != prevTime || (prevInc && a1.UpperInc) {
		run, err := steadyRun(prevTime, endTime, prevInc, a1.UpperInc)
		if err != nil {
			return ttype.TSequenceSet[R]{}, false, err
		}
		out = append(out, run)
	}

	set, err := ttype.NewSequenceSet(out)
	return set, true, err
}
