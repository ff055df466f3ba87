// Package lift implements the generic lifting engine (spec.md §4.6): takes
// a base-type function and produces the corresponding function over
// temporal values, dispatching on subtype and interpolation the way the
// spec's dispatch table prescribes.
package lift

import (
	"github.com/banshee-data/mobitemporal/ttype"
)

// UnaryInstant lifts f pointwise over a TInstant: f(Inst, B) -> Inst'.
func UnaryInstant[A, R any](inst ttype.TInstant[A], f func(A) R) ttype.TInstant[R] {
	return ttype.NewInstant(f(inst.Value), inst.Time)
}

// UnaryInstantSet maps f over every instant: f(InstSet, B) -> InstSet'.
func UnaryInstantSet[A, R any](set ttype.TInstantSet[A], f func(A) R) (ttype.TInstantSet[R], error) {
	out := make([]ttype.TInstant[R], set.NumInstants())
	for i := 0; i < set.NumInstants(); i++ {
		inst := set.Instant(i)
		out[i] = ttype.NewInstant(f(inst.Value), inst.Time)
	}
	return ttype.NewInstantSet(out)
}

// UnarySequenceStep maps f per instant, preserving Step interpolation:
// f(Seq<Step>, B) -> Seq<Step>.
func UnarySequenceStep[A, R any](seq ttype.TSequence[A], f func(A) R) (ttype.TSequence[R], error) {
	out := make([]ttype.TInstant[R], seq.NumInstants())
	for i := 0; i < seq.NumInstants(); i++ {
		inst := seq.Instant(i)
		out[i] = ttype.NewInstant(f(inst.Value), inst.Time)
	}
	return ttype.NewSequence(out, seq.LowerInc, seq.UpperInc, ttype.Step)
}

// UnarySequenceLinear maps f over every instant of a Linear sequence,
// re-linearizing the result: f(Seq<Linear>, B) -> Seq<Linear>. Discontinuity
// splitting (when f's output is not continuous between two linearly
// interpolated inputs) is the caller's responsibility: this function
// assumes f is itself continuous over the segment, which holds for every
// builtin arithmetic function in basetype's library.
func UnarySequenceLinear[A, R any](seq ttype.TSequence[A], f func(A) R) (ttype.TSequence[R], error) {
	out := make([]ttype.TInstant[R], seq.NumInstants())
	for i := 0; i < seq.NumInstants(); i++ {
		inst := seq.Instant(i)
		out[i] = ttype.NewInstant(f(inst.Value), inst.Time)
	}
	return ttype.NewSequence(out, seq.LowerInc, seq.UpperInc, ttype.Linear)
}

// UnarySequenceSet maps f over every sequence of a set, preserving
// structure.
func UnarySequenceSet[A, R any](set ttype.TSequenceSet[A], f func(A) R) (ttype.TSequenceSet[R], error) {
	out := make([]ttype.TSequence[R], set.NumSequences())
	for i := 0; i < set.NumSequences(); i++ {
		seq := set.Sequence(i)
		var err error
		if seq.Interp == ttype.Linear {
			out[i], err = UnarySequenceLinear(seq, f)
		} else {
			out[i], err = UnarySequenceStep(seq, f)
		}
		if err != nil {
			return ttype.TSequenceSet[R]{}, err
		}
	}
	return ttype.NewSequenceSet(out)
}
