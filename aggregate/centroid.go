package aggregate

import (
	"fmt"

	"github.com/banshee-data/mobitemporal/spatial"
	"github.com/banshee-data/mobitemporal/ttype"
)

// TimeWeightedCentroid is the spec.md §4.10 twcentroid aggregate: the
// duration-weighted mean position across a set of point sequences. Each
// sequence contributes a Double3{sumX, sumY, weight} transition value (its
// own time-weighted position integral and duration); the combine step is
// Double3.Add, and the final step divides by the accumulated weight.
//
// Grounded on the MEOS doubleN transition pattern (original_source
// temporal/doublen.c): "first components ... store the sum and the last
// one stores the count", generalized here from count to duration.
func TimeWeightedCentroid(seqs []ttype.TSequence[spatial.Point]) (spatial.Point, error) {
	if len(seqs) == 0 {
		return spatial.Point{}, fmt.Errorf("aggregate: twcentroid over an empty set")
	}
	var acc Double3
	var inv extra
	for i, seq := range seqs {
		for j := 0; j < seq.NumInstants(); j++ {
			if err := inv.check(seq.Instant(j).Value); err != nil {
				return spatial.Point{}, fmt.Errorf("aggregate: twcentroid member %d: %w", i, err)
			}
		}
		d, err := transitionCentroid(seq)
		if err != nil {
			return spatial.Point{}, fmt.Errorf("aggregate: twcentroid member %d: %w", i, err)
		}
		acc = acc.Add(d)
	}
	if acc.C == 0 {
		return spatial.Point{}, fmt.Errorf("aggregate: twcentroid over a zero-duration set")
	}
	avg := acc.Divide(acc.C)
	return spatial.NewPoint(avg.A, avg.B, seqs[0].Instant(0).Value.SRID, seqs[0].Instant(0).Value.Geodetic), nil
}

// transitionCentroid computes one sequence's time-weighted position
// integral and duration, as a Double3{sumX, sumY, duration}.
func transitionCentroid(seq ttype.TSequence[spatial.Point]) (Double3, error) {
	n := seq.NumInstants()
	if n == 0 {
		return Double3{}, nil
	}
	if n == 1 {
		return Double3{}, nil // a single instant has zero duration, contributes nothing
	}
	var acc Double3
	for i := 1; i < n; i++ {
		prev, cur := seq.Instant(i-1), seq.Instant(i)
		dt := float64(cur.Time.Sub(prev.Time)) / 1e6
		if dt <= 0 {
			continue
		}
		var sumX, sumY float64
		switch seq.Interp {
		case ttype.Linear:
			sumX = (prev.Value.X() + cur.Value.X()) / 2 * dt
			sumY = (prev.Value.Y() + cur.Value.Y()) / 2 * dt
		default: // Step: holds prev's value for the whole segment
			sumX = prev.Value.X() * dt
			sumY = prev.Value.Y() * dt
		}
		acc = acc.Add(Double3{A: sumX, B: sumY, C: dt})
	}
	return acc, nil
}
