package span

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/ttime"
)

func mustSpan(t *testing.T, lower, upper float64, lowerInc, upperInc bool) Span[float64] {
	t.Helper()
	s, err := Make(lower, upper, lowerInc, upperInc)
	require.NoError(t, err)
	return s
}

func TestMakeRejectsInverted(t *testing.T) {
	_, err := Make(5.0, 1.0, true, true)
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestMakeRejectsNonInclusiveInstant(t *testing.T) {
	_, err := Make(1.0, 1.0, true, false)
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestMakeDiscreteCanonicalizesExclusiveBounds(t *testing.T) {
	s, err := MakeDiscrete(int64(1), int64(5), false, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Lower)
	assert.Equal(t, int64(6), s.Upper)
	assert.True(t, s.LowerInc)
	assert.False(t, s.UpperInc)
}

func TestMakeDiscreteInstant(t *testing.T) {
	s, err := MakeDiscrete(int64(3), int64(3), true, true)
	require.NoError(t, err)
	assert.True(t, s.IsInstant())
	assert.True(t, s.LowerInc && s.UpperInc)
}

func TestContainsElement(t *testing.T) {
	s := mustSpan(t, 1, 5, true, false)
	assert.True(t, s.ContainsElement(1))
	assert.False(t, s.ContainsElement(5))
	assert.True(t, s.ContainsElement(4.999))
}

func TestContainsAndContained(t *testing.T) {
	outer := mustSpan(t, 1, 10, true, true)
	inner := mustSpan(t, 2, 5, true, true)
	assert.True(t, outer.Contains(inner))
	assert.True(t, inner.Contained(outer))
	assert.False(t, inner.Contains(outer))
}

func TestOverlapsBoundaryExclusive(t *testing.T) {
	a := mustSpan(t, 1, 3, true, false)
	b := mustSpan(t, 3, 5, true, true)
	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Adjacent(b))
}

func TestOverlapsBoundaryInclusiveBoth(t *testing.T) {
	a := mustSpan(t, 1, 3, true, true)
	b := mustSpan(t, 3, 5, true, true)
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Adjacent(b))
}

func TestBeforeAfter(t *testing.T) {
	a := mustSpan(t, 1, 3, true, false)
	b := mustSpan(t, 3, 5, true, true)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
}

func TestIntersection(t *testing.T) {
	a := mustSpan(t, 1, 5, true, true)
	b := mustSpan(t, 3, 8, true, true)
	got, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, mustSpan(t, 3, 5, true, true), got)
}

func TestIntersectionNone(t *testing.T) {
	a := mustSpan(t, 1, 2, true, false)
	b := mustSpan(t, 5, 6, true, false)
	_, ok := a.Intersection(b)
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	s := mustSpan(t, 1, 3, true, false)
	assert.Equal(t, "[1, 3)", s.String())
}

// TestUnionMergesOverlapping is acceptance scenario S3: union({[1,3),[5,7)}, {[2,6)})
// = {[1,7)}.
func TestUnionMergesOverlapping(t *testing.T) {
	a := NewSpanSet([]Span[float64]{
		mustSpan(t, 1, 3, true, false),
		mustSpan(t, 5, 7, true, false),
	})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 2, 6, true, false)})

	got := a.Union(b)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, mustSpan(t, 1, 7, true, false), got.Spans()[0])
}

func TestUnionDisjointStaysDecomposed(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 2, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 10, 20, true, false)})
	got := a.Union(b)
	assert.Equal(t, 2, got.Len())
}

func TestSpanSetMergesAdjacent(t *testing.T) {
	ss := NewSpanSet([]Span[float64]{
		mustSpan(t, 1, 3, true, false),
		mustSpan(t, 3, 5, true, true),
	})
	require.Equal(t, 1, ss.Len())
	assert.Equal(t, mustSpan(t, 1, 5, true, true), ss.Spans()[0])
}

func TestSpanSetFind(t *testing.T) {
	ss := NewSpanSet([]Span[float64]{
		mustSpan(t, 1, 3, true, false),
		mustSpan(t, 10, 20, true, false),
	})
	assert.True(t, ss.Find(1))
	assert.False(t, ss.Find(3))
	assert.True(t, ss.Find(15))
	assert.False(t, ss.Find(25))
}

func TestSpanSetBounds(t *testing.T) {
	ss := NewSpanSet([]Span[float64]{
		mustSpan(t, 1, 3, true, false),
		mustSpan(t, 10, 20, true, false),
	})
	bounds, ok := ss.Bounds()
	require.True(t, ok)
	assert.Equal(t, mustSpan(t, 1, 20, true, false), bounds)
}

func TestSpanSetDifference(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 10, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 3, 5, true, false)})
	got := a.Difference(b)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, mustSpan(t, 1, 3, true, false), got.Spans()[0])
	assert.Equal(t, mustSpan(t, 5, 10, true, false), got.Spans()[1])
}

func TestSpanSetDifferenceEmptyResult(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 5, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 0, 10, true, false)})
	got := a.Difference(b)
	assert.True(t, got.IsEmpty())
}

func TestSpanSetIntersection(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 10, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 5, 15, true, false)})
	got := a.Intersection(b)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, mustSpan(t, 5, 10, true, false), got.Spans()[0])
}

func TestSpanSetContains(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 10, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 2, 4, true, false)})
	assert.True(t, a.Contains(b))
	assert.False(t, b.Contains(a))
}

func TestSpanSetOverlaps(t *testing.T) {
	a := NewSpanSet([]Span[float64]{mustSpan(t, 1, 5, true, false)})
	b := NewSpanSet([]Span[float64]{mustSpan(t, 4, 8, true, false)})
	c := NewSpanSet([]Span[float64]{mustSpan(t, 9, 12, true, false)})
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func tsFromUnix(sec int64) ttime.Timestamp {
	return ttime.FromTime(time.Unix(sec, 0).UTC())
}

func TestShiftTimestampSpan(t *testing.T) {
	s, err := Make(tsFromUnix(0), tsFromUnix(100), true, false)
	require.NoError(t, err)
	shifted := Shift(s, ttime.Interval{Microseconds: 10 * 1_000_000})
	assert.Equal(t, tsFromUnix(10), shifted.Lower)
	assert.Equal(t, tsFromUnix(110), shifted.Upper)
}

func TestTScaleRejectsNonPositive(t *testing.T) {
	s, err := Make(tsFromUnix(0), tsFromUnix(100), true, false)
	require.NoError(t, err)
	_, err = TScale(s, ttime.Interval{Microseconds: 0})
	assert.ErrorIs(t, err, ErrNonPositiveDuration)
}

func TestTScaleInstantIsNoop(t *testing.T) {
	s, err := Make(tsFromUnix(5), tsFromUnix(5), true, true)
	require.NoError(t, err)
	got, err := TScale(s, ttime.Interval{Microseconds: 50 * 1_000_000})
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestTimeBucketFloorsToOrigin(t *testing.T) {
	origin := tsFromUnix(0)
	width := ttime.Interval{Microseconds: 10 * 1_000_000}
	got, err := TimeBucket(tsFromUnix(25), width, origin)
	require.NoError(t, err)
	assert.Equal(t, tsFromUnix(20), got)
}

func TestBucketSpansClipsToBounds(t *testing.T) {
	origin := tsFromUnix(0)
	width := ttime.Interval{Microseconds: 10 * 1_000_000}
	s, err := Make(tsFromUnix(5), tsFromUnix(25), true, false)
	require.NoError(t, err)
	buckets, err := BucketSpans(s, width, origin)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, tsFromUnix(5), buckets[0].Lower)
	assert.Equal(t, tsFromUnix(10), buckets[0].Upper)
	assert.Equal(t, tsFromUnix(20), buckets[2].Lower)
	assert.Equal(t, tsFromUnix(25), buckets[2].Upper)
}
