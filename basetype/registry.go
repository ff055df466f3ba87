// Package basetype is the registry of value domains a Temporal can carry
// (spec.md §4.1): per-type equality, ordering, hashing, linear-interpolation
// ability and its collinearity predicate, plus the built-in 1/2-ary
// function library the lifting engine dispatches through.
package basetype

import (
	"reflect"
	"sync"
)

// Ops describes how the core treats a concrete base type B. Primitive base
// types (bool, int64, float64, string) can't carry methods of their own, so
// rather than requiring B to satisfy an interface, every operation on a
// Temporal[B] goes through the Ops registered for B.
type Ops[B any] struct {
	// Name is the type's wire/text name (used by ioformat and wkb).
	Name string

	Equal func(a, b B) bool

	// Less defines a total order, or is nil if B has none (e.g. points).
	Less func(a, b B) bool

	Hash func(v B) uint64

	// Linear reports whether B supports segment interpolation between two
	// values (true for float64 and spatial points, false otherwise).
	Linear bool

	// Interpolate returns the value at the given ratio in [0,1] between v1
	// and v2. Nil when Linear is false.
	Interpolate func(v1, v2 B, ratio float64) B

	// Collinear reports whether v2 lies exactly on the interpolated path
	// from v1 to v3 at the given ratio, within the configured epsilon.
	// Nil when Linear is false.
	Collinear func(v1, v2, v3 B, ratio, epsilon float64) bool

	// IsNaN reports whether v is a NaN value; ttype.NewSequence rejects a
	// sequence holding one. Nil for base types with no such concept.
	IsNaN func(v B) bool

	// SolveRatio inverts Interpolate: given segment endpoints v1, v2 and a
	// target value, returns the ratio in [0,1] at which the segment equals
	// target, and false if target never occurs on the segment. Nil when
	// Linear is false. Used by restrict.AtValue to locate the exact crossing
	// time within a linear segment (spec.md §4.7).
	SolveRatio func(v1, v2, target B) (ratio float64, ok bool)

	// Format renders v as the textual literal ioformat embeds between '@'
	// and the timestamp (spec.md §6). Falls back to fmt.Sprint if nil.
	Format func(v B) string

	// Parse is Format's inverse; returns InvalidTextInput-flavored errors.
	Parse func(s string) (B, error)
}

var registry sync.Map // reflect.Type -> any (*Ops[B])

func keyFor[B any]() reflect.Type {
	var zero B
	return reflect.TypeOf(&zero).Elem()
}

// Register installs ops as the registry entry for B. Intended to be called
// from package init() functions (see builtin.go and spatial's point
// registration).
func Register[B any](ops *Ops[B]) {
	registry.Store(keyFor[B](), ops)
}

// For returns the registered Ops for B, or false if none was registered.
func For[B any]() (*Ops[B], bool) {
	v, ok := registry.Load(keyFor[B]())
	if !ok {
		return nil, false
	}
	ops, ok := v.(*Ops[B])
	return ops, ok
}

// MustFor is For but panics if B was never registered. Core constructors
// use this: an unregistered base type is a programmer error, not a runtime
// input-validation concern.
func MustFor[B any]() *Ops[B] {
	ops, ok := For[B]()
	if !ok {
		panic("basetype: no Ops registered for this base type")
	}
	return ops
}
