package tsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/internal/testutil"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

func ts(sec int64) ttime.Timestamp {
	return ttime.FromTime(time.Unix(sec, 0).UTC())
}

func TestSynchronizeDisjoint(t *testing.T) {
	s1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0)),
		ttype.NewInstant(2.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	s2, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(20)),
		ttype.NewInstant(2.0, ts(30)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	_, _, ok, err := Synchronize(s1, s2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSynchronizeProjectsBreakpoints(t *testing.T) {
	s1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(0.0, ts(0)),
		ttype.NewInstant(10.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	s2, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(0.0, ts(0)),
		ttype.NewInstant(5.0, ts(5)),
		ttype.NewInstant(10.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	out1, out2, ok, err := Synchronize(s1, s2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, out1.NumInstants(), out2.NumInstants())

	want1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(0.0, ts(0)),
		ttype.NewInstant(5.0, ts(5)),
		ttype.NewInstant(10.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	testutil.AssertDeepEqual(t, out1, want1)
}

// TestSynchronizeCrossingsFindsMidpoint mirrors acceptance scenario S2's
// setup: s1 rises 0->10, s2 falls 10->0 over the same interval, crossing
// exactly at the midpoint.
func TestSynchronizeCrossingsFindsMidpoint(t *testing.T) {
	s1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(0.0, ts(0)),
		ttype.NewInstant(10.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	s2, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(10.0, ts(0)),
		ttype.NewInstant(0.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	out1, out2, ok, err := SynchronizeCrossings(s1, s2, LinearCrossingSolver, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, out1.NumInstants())
	assert.Equal(t, ts(5), out1.Instants[1].Time)
	assert.InDelta(t, 5.0, out1.Instants[1].Value, 1e-9)
	assert.InDelta(t, 5.0, out2.Instants[1].Value, 1e-9)
}

// TestSynchronizeCrossingsRespectsBudget is the mirror image of
// TestSynchronizeCrossingsFindsMidpoint: the same crossing insertion,
// but with a budget of one instant: the first breakpoint fits, and the
// midpoint crossing inserted after it pushes the count past the budget.
func TestSynchronizeCrossingsRespectsBudget(t *testing.T) {
	s1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(0.0, ts(0)),
		ttype.NewInstant(10.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	s2, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(10.0, ts(0)),
		ttype.NewInstant(0.0, ts(10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	_, _, _, err = SynchronizeCrossings(s1, s2, LinearCrossingSolver, 1)
	require.ErrorIs(t, err, ErrTooComplex)
}
