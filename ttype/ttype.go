// Package ttype implements the four temporal subtypes (spec.md §3, §4.4):
// TInstant, TInstantSet, TSequence, TSequenceSet, parameterized over a base
// type B registered in package basetype.
package ttype

import (
	"errors"
	"fmt"

	"github.com/banshee-data/mobitemporal/basetype"
	"github.com/banshee-data/mobitemporal/internal/config"
	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// epsilon is the tolerance normalize uses to decide whether a Linear
// sequence's middle instant is collinear with its neighbors (spec.md §9).
// It defaults to config's documented Epsilon default and may be replaced
// by SetEpsilon for a caller running under a different *config.Options,
// following the same package-level-swappable-default idiom as
// internal/monitoring.SetLogger.
var epsilon = config.DefaultOptions().GetEpsilon()

// SetEpsilon overrides the tolerance NewSequence's normalization uses for
// Linear collinearity checks.
func SetEpsilon(e float64) {
	epsilon = e
}

var (
	// ErrEmptyInput is returned by constructors given zero instants.
	ErrEmptyInput = errors.New("ttype: empty input")
	// ErrOutOfOrder is returned when instants are not strictly time-ordered.
	ErrOutOfOrder = errors.New("ttype: instants not strictly time-ordered")
	// ErrTypeMismatch is returned when sequences to be combined disagree on
	// interpolation or spatial metadata.
	ErrTypeMismatch = errors.New("ttype: type mismatch")
	// ErrInvalidDuration mirrors ttime.ErrInvalidDuration for tscale calls.
	ErrInvalidDuration = errors.New("ttype: invalid target duration")
)

// Interp is the interpolation mode of a sequence.
type Interp int

const (
	Step Interp = iota
	Linear
)

func (i Interp) String() string {
	if i == Linear {
		return "Linear"
	}
	return "Step"
}

// TInstant is a single (value, timestamp) pair: the atomic temporal value.
type TInstant[B any] struct {
	Value B
	Time  ttime.Timestamp
}

// NewInstant builds a TInstant. It never fails: any (value, time) pair is
// valid on its own.
func NewInstant[B any](value B, t ttime.Timestamp) TInstant[B] {
	return TInstant[B]{Value: value, Time: t}
}

// TimeSpan returns the degenerate instant time span [t, t].
func (i TInstant[B]) TimeSpan() span.Span[ttime.Timestamp] {
	s, _ := span.Make(i.Time, i.Time, true, true)
	return s
}

func (i TInstant[B]) NumInstants() int { return 1 }

func (i TInstant[B]) StartValue() B { return i.Value }
func (i TInstant[B]) EndValue() B   { return i.Value }

// Shift returns i translated by iv.
func (i TInstant[B]) Shift(iv ttime.Interval) TInstant[B] {
	return TInstant[B]{Value: i.Value, Time: i.Time.Add(iv)}
}

func (i TInstant[B]) String() string {
	return fmt.Sprintf("%v@%s", i.Value, i.Time)
}

func validateStrictlyOrdered[B any](instants []TInstant[B]) error {
	if len(instants) == 0 {
		return ErrEmptyInput
	}
	for k := 1; k < len(instants); k++ {
		if !instants[k-1].Time.Before(instants[k].Time) {
			return fmt.Errorf("%w: instant %d at %s does not strictly follow %s",
				ErrOutOfOrder, k, instants[k].Time, instants[k-1].Time)
		}
	}
	return nil
}

// opsFor fetches the registered Ops for B, panicking if none is registered:
// every base type exercised by ttype must be registered by basetype's
// init() (or, for spatial points, by the spatial package's init()) before
// any ttype constructor runs.
func opsFor[B any]() *basetype.Ops[B] {
	return basetype.MustFor[B]()
}
