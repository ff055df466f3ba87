package aggregate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/mobitemporal/box"
	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// TCount returns the number of instants contributed across seqs, the
// simplest aggregate: no transition tuple needed, just a running sum.
func TCount[B any](seqs []ttype.TSequence[B]) int {
	var n int
	for _, seq := range seqs {
		n += seq.NumInstants()
	}
	return n
}

// TSum transitions every instant of every sequence into a Double2{value,
// 1} tuple, splices by addition, and returns the final sum (the weight
// component is not used; TAvg computes its mean separately).
func TSum(seqs []ttype.TSequence[float64]) float64 {
	var acc Double2
	for _, seq := range seqs {
		for i := 0; i < seq.NumInstants(); i++ {
			acc = acc.Add(Double2{A: seq.Instant(i).Value, B: 1})
		}
	}
	return acc.A
}

// TAvg is the plain (non-time-weighted) mean across all instants, computed
// via gonum/stat.Mean for the same numerical-stability reasons the teacher
// reaches for gonum/stat.Quantile over a manual percentile computation.
func TAvg(seqs []ttype.TSequence[float64]) (float64, error) {
	var values []float64
	for _, seq := range seqs {
		for i := 0; i < seq.NumInstants(); i++ {
			values = append(values, seq.Instant(i).Value)
		}
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("aggregate: tavg over an empty set")
	}
	return stat.Mean(values, nil), nil
}

// Extent splices the bounding TBox of every sequence by unioning their
// value and time spans, producing the combined accumulated extent
// (spec.md §4.10: "for extent emit the accumulated box").
func Extent(seqs []ttype.TSequence[float64]) (box.TBox, error) {
	if len(seqs) == 0 {
		return box.TBox{}, fmt.Errorf("aggregate: extent over an empty set")
	}
	var acc *box.TBox
	for _, seq := range seqs {
		valSpan, err := span.Make(seq.MinValue(), seq.MaxValue(), true, true)
		if err != nil {
			return box.TBox{}, err
		}
		timeSpan := seq.TimeSpan()
		b, err := box.NewTBox(&valSpan, &timeSpan)
		if err != nil {
			return box.TBox{}, err
		}
		if acc == nil {
			acc = &b
			continue
		}
		merged := unionTBox(*acc, b)
		acc = &merged
	}
	return *acc, nil
}

// unionTBox returns the smallest TBox containing both a and b's present
// dimensions.
func unionTBox(a, b box.TBox) box.TBox {
	var valSpan *span.Span[float64]
	if a.HasValue() && b.HasValue() {
		s, _ := span.NewSpanSet([]span.Span[float64]{*a.Value, *b.Value}).Bounds()
		valSpan = &s
	} else if a.HasValue() {
		valSpan = a.Value
	} else if b.HasValue() {
		valSpan = b.Value
	}
	var timeSpan *span.Span[ttime.Timestamp]
	if a.HasTime() && b.HasTime() {
		s, _ := span.NewSpanSet([]span.Span[ttime.Timestamp]{*a.Time, *b.Time}).Bounds()
		timeSpan = &s
	} else if a.HasTime() {
		timeSpan = a.Time
	} else if b.HasTime() {
		timeSpan = b.Time
	}
	out, err := box.NewTBox(valSpan, timeSpan)
	if err != nil {
		// Both inputs were already valid TBoxes sharing at least one
		// dimension, so their union always has one too.
		panic(err)
	}
	return out
}
