package ioformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/internal/config"
	"github.com/banshee-data/mobitemporal/internal/engine"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

func ts(hh, mm int) ttime.Timestamp {
	return ttime.FromTime(time.Date(2000, 1, 1, hh, mm, 0, 0, time.UTC))
}

func TestInstantRoundTrip(t *testing.T) {
	inst := ttype.NewInstant(15.0, ts(0, 5))
	printed := PrintInstant(inst, Dialect{})
	assert.Equal(t, "15@2000-01-01 00:05:00", printed)

	got, err := ParseInstant[float64](printed, Dialect{})
	require.NoError(t, err)
	assert.Equal(t, inst, got)
}

func TestSequenceRoundTripLinear(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(10.0, ts(0, 0)),
		ttype.NewInstant(20.0, ts(0, 10)),
	}, true, false, ttype.Linear)
	require.NoError(t, err)

	printed := PrintSequence(seq, Dialect{})
	assert.NotContains(t, printed, "Interp=Step")
	got, err := ParseSequence[float64](printed, Dialect{})
	require.NoError(t, err)
	assert.Equal(t, seq, got)
}

func TestSequenceRoundTripStepPrefixed(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(2.0, ts(0, 5)),
	}, true, true, ttype.Step)
	require.NoError(t, err)

	printed := PrintSequence(seq, Dialect{})
	assert.Contains(t, printed, "Interp=Step;")
	got, err := ParseSequence[float64](printed, Dialect{})
	require.NoError(t, err)
	assert.Equal(t, seq, got)
}

func TestSequenceParseAcceptsLegacyStepwisePrefix(t *testing.T) {
	got, err := ParseSequence[float64]("Interp=Stepwise;[1@2000-01-01 00:00:00, 2@2000-01-01 00:05:00]", Dialect{})
	require.NoError(t, err)
	assert.Equal(t, ttype.Step, got.Interp)
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

	printed := PrintSequenceSet(set, Dialect{})
	got, err := ParseSequenceSet[float64](printed, Dialect{})
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestParseInstantRejectsMissingAt(t *testing.T) {
	_, err := ParseInstant[float64]("15-2000-01-01", Dialect{})
	assert.ErrorIs(t, err, ErrInvalidTextInput)
}

// TestDialectHonorsTimezone is the SPEC_FULL.md config-wiring test: a
// non-UTC Timezone option shifts PrintInstant's rendered clock time, and
// ParseInstant reads that same rendering back to the identical UTC
// instant.
func TestDialectHonorsTimezone(t *testing.T) {
	h := engine.New(engine.WGS84, 1)
	opts := &config.Options{Timezone: strPtr("America/New_York")}
	d := NewDialect(h, opts)

	inst := ttype.NewInstant(15.0, ts(12, 0))
	printed := PrintInstant(inst, d)
	assert.Contains(t, printed, "2000-01-01 07:00:00")

	got, err := ParseInstant[float64](printed, d)
	require.NoError(t, err)
	assert.Equal(t, inst, got)
}

// TestDialectHonorsDateStyle checks the ISO DateStyle layout is applied
// (spec.md §6's DateStyle option).
func TestDialectHonorsDateStyle(t *testing.T) {
	style := config.DateStyleISO
	d := NewDialect(nil, &config.Options{DateStyle: &style})

	printed := PrintInstant(ttype.NewInstant(1.0, ts(0, 5)), d)
	assert.Equal(t, "1@2000-01-01T00:05:00Z", printed)
}

func strPtr(s string) *string { return &s }
