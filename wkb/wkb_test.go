package wkb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

func ts(hh, mm int) ttime.Timestamp {
	return ttime.FromTime(time.Date(2000, 1, 1, hh, mm, 0, 0, time.UTC))
}

func TestInstantRoundTrip(t *testing.T) {
	inst := ttype.NewInstant(15.5, ts(0, 5))
	got, err := UnmarshalInstant(MarshalInstant(inst))
	require.NoError(t, err)
	assert.Equal(t, inst, got)
}

func TestInstantSetRoundTrip(t *testing.T) {
	set, err := ttype.NewInstantSet([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(2.0, ts(0, 5)),
		ttype.NewInstant(3.0, ts(0, 10)),
	})
	require.NoError(t, err)

	got, err := UnmarshalInstantSet(MarshalInstantSet(set))
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestSequenceRoundTripStep(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(2.0, ts(0, 5)),
	}, true, true, ttype.Step)
	require.NoError(t, err)

	got, err := UnmarshalSequence(MarshalSequence(seq))
	require.NoError(t, err)
	assert.Equal(t, seq, got)
}

func TestSequenceSetRoundTrip(t *testing.T) {
	s1, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(2.0, ts(0, 5)),
	}, true, false, ttype.Linear)
	require.NoError(t, err)
	s2, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(3.0, ts(0, 5)),
		ttype.NewInstant(4.0, ts(0, 10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	set, err := ttype.NewSequenceSet([]ttype.TSequence[float64]{s1, s2})
	require.NoError(t, err)

	got, err := UnmarshalSequenceSet(MarshalSequenceSet(set))
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestUnmarshalRejectsWrongSubtype(t *testing.T) {
	inst := ttype.NewInstant(1.0, ts(0, 0))
	_, err := UnmarshalInstantSet(MarshalInstant(inst))
	assert.ErrorIs(t, err, ErrMalformed)
}
