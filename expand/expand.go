// Package expand implements the expandable (amortized-growth) forms of
// TInstantSet and TSequence (spec.md §4.8): owned by a single builder, grown
// by doubling, convertible to the immutable ttype forms on demand.
package expand

import (
	"errors"
	"fmt"

	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// ErrOutOfOrder mirrors ttype.ErrOutOfOrder for append_instant violations.
var ErrOutOfOrder = errors.New("expand: append time must strictly follow the last instant")

const initialCapacity = 4

// InstantSet is an expandable, builder-owned TInstantSet: append_instant is
// amortized O(1), reallocating the backing buffer at 2x when full.
type InstantSet[B any] struct {
	buf   []ttype.TInstant[B]
	count int
}

// NewInstantSet creates an empty expandable instant set.
func NewInstantSet[B any]() *InstantSet[B] {
	return &InstantSet[B]{buf: make([]ttype.TInstant[B], initialCapacity)}
}

// Append writes at count and grows if full; fails if t does not strictly
// follow the last instant already appended.
func (s *InstantSet[B]) Append(value B, t ttime.Timestamp) error {
	if s.count > 0 && !s.buf[s.count-1].Time.Before(t) {
		return fmt.Errorf("%w: %s is not after %s", ErrOutOfOrder, t, s.buf[s.count-1].Time)
	}
	s.grow()
	s.buf[s.count] = ttype.NewInstant(value, t)
	s.count++
	return nil
}

func (s *InstantSet[B]) grow() {
	if s.count < len(s.buf) {
		return
	}
	next := make([]ttype.TInstant[B], len(s.buf)*2)
	copy(next, s.buf[:s.count])
	s.buf = next
}

// Len reports the number of instants appended so far.
func (s *InstantSet[B]) Len() int { return s.count }

// Restart discards all but the last k instants, bounding memory during
// streaming (spec.md §4.8).
func (s *InstantSet[B]) Restart(k int) {
	if k >= s.count {
		return
	}
	if k <= 0 {
		s.count = 0
		return
	}
	copy(s.buf, s.buf[s.count-k:s.count])
	s.count = k
}

// Freeze materializes the current contents as an immutable TInstantSet.
func (s *InstantSet[B]) Freeze() (ttype.TInstantSet[B], error) {
	return ttype.NewInstantSet(s.buf[:s.count])
}

// Sequence is the expandable form of TSequence: same amortized-append
// discipline, with an interpolation mode fixed at creation.
type Sequence[B any] struct {
	buf      []ttype.TInstant[B]
	count    int
	lowerInc bool
	upperInc bool
	interp   ttype.Interp
}

// NewSequence creates an empty expandable sequence. upperInc is applied
// only to the most recently appended instant when Freeze is called;
// intermediate state tracks it so Freeze can reuse it directly.
func NewSequence[B any](lowerInc bool, interp ttype.Interp) *Sequence[B] {
	return &Sequence[B]{buf: make([]ttype.TInstant[B], initialCapacity), lowerInc: lowerInc, upperInc: true, interp: interp}
}

// Append writes at count and grows if full; fails if t does not strictly
// follow the last instant (spec.md §4.8, §4.4's append_instant contract).
func (s *Sequence[B]) Append(value B, t ttime.Timestamp) error {
	if s.count > 0 && !s.buf[s.count-1].Time.Before(t) {
		return fmt.Errorf("%w: %s is not after %s", ErrOutOfOrder, t, s.buf[s.count-1].Time)
	}
	s.grow()
	s.buf[s.count] = ttype.NewInstant(value, t)
	s.count++
	return nil
}

func (s *Sequence[B]) grow() {
	if s.count < len(s.buf) {
		return
	}
	next := make([]ttype.TInstant[B], len(s.buf)*2)
	copy(next, s.buf[:s.count])
	s.buf = next
}

// Len reports the number of instants appended so far.
func (s *Sequence[B]) Len() int { return s.count }

// Restart keeps only the last k instants, used to bound memory during
// streaming ingestion.
func (s *Sequence[B]) Restart(k int) {
	if k >= s.count {
		return
	}
	if k <= 0 {
		s.count = 0
		return
	}
	copy(s.buf, s.buf[s.count-k:s.count])
	s.count = k
}

// SetUpperInclusive controls whether Freeze treats the last appended
// instant as the sequence's closed upper bound: streaming builders
// typically leave it open until the stream ends.
func (s *Sequence[B]) SetUpperInclusive(v bool) { s.upperInc = v }

// Freeze materializes the current contents as an immutable TSequence,
// running the same normalization and validation as ttype.NewSequence.
func (s *Sequence[B]) Freeze() (ttype.TSequence[B], error) {
	return ttype.NewSequence(s.buf[:s.count], s.lowerInc, s.upperInc, s.interp)
}
