package spatial

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/internal/engine"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

func ts(hh, mm int) ttime.Timestamp {
	return ttime.FromTime(time.Date(2000, 1, 1, hh, mm, 0, 0, time.UTC))
}

func TestCheckCompatibleDetectsSridMismatch(t *testing.T) {
	a := NewPoint(0, 0, 4326, false)
	b := NewPoint(1, 1, 3857, false)
	err := CheckCompatible(a, b)
	assert.ErrorIs(t, err, ErrSridMismatch)
}

func TestCheckCompatibleDetectsGeodeticMismatch(t *testing.T) {
	a := NewPoint(0, 0, 4326, true)
	b := NewPoint(1, 1, 4326, false)
	err := CheckCompatible(a, b)
	assert.ErrorIs(t, err, ErrGeodeticMismatch)
}

func TestDistancePlanar(t *testing.T) {
	a := NewPoint(0, 0, 0, false)
	b := NewPoint(3, 4, 0, false)
	d, err := Distance(nil, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestDistanceGeodeticNonDefaultEllipsoidUsesHaversine(t *testing.T) {
	a := NewPoint(0, 0, 0, true)
	b := NewPoint(0, 90, 0, true)
	h := engine.New(engine.Ellipsoid{SemiMajorAxisMeters: 1000, Flattening: 0}, 1)
	d, err := Distance(h, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1000*math.Pi/2, d, 1e-6)
}

func TestLengthSumsSegments(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[Point]{
		ttype.NewInstant(NewPoint(0, 0, 0, false), ts(0, 0)),
		ttype.NewInstant(NewPoint(3, 4, 0, false), ts(0, 1)),
		ttype.NewInstant(NewPoint(3, 0, 0, false), ts(0, 2)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	l, err := Length(nil, seq)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, l, 1e-9)
}

func TestSpeedOneSegmentPerPair(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[Point]{
		ttype.NewInstant(NewPoint(0, 0, 0, false), ts(0, 0)),
		ttype.NewInstant(NewPoint(10, 0, 0, false), ts(0, 1)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	speed, err := Speed(nil, seq)
	require.NoError(t, err)
	assert.Equal(t, 1, speed.NumInstants())
	assert.InDelta(t, 10.0/60, speed.Instants[0].Value, 1e-9)
}

func TestIsSimpleDetectsSelfCrossing(t *testing.T) {
	simple, err := ttype.NewSequence([]ttype.TInstant[Point]{
		ttype.NewInstant(NewPoint(0, 0, 0, false), ts(0, 0)),
		ttype.NewInstant(NewPoint(1, 0, 0, false), ts(0, 1)),
		ttype.NewInstant(NewPoint(1, 1, 0, false), ts(0, 2)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	assert.True(t, IsSimple(simple))

	crossing, err := ttype.NewSequence([]ttype.TInstant[Point]{
		ttype.NewInstant(NewPoint(0, 0, 0, false), ts(0, 0)),
		ttype.NewInstant(NewPoint(2, 2, 0, false), ts(0, 1)),
		ttype.NewInstant(NewPoint(2, 0, 0, false), ts(0, 2)),
		ttype.NewInstant(NewPoint(0, 2, 0, false), ts(0, 3)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	assert.False(t, IsSimple(crossing))
}
