package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/mobitemporal/spatial"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

func ts(hh, mm int) ttime.Timestamp {
	return ttime.FromTime(time.Date(2000, 1, 1, hh, mm, 0, 0, time.UTC))
}

// TestTimeWeightedCentroid is acceptance scenario S4.
func TestTimeWeightedCentroid(t *testing.T) {
	p1, err := ttype.NewSequence([]ttype.TInstant[spatial.Point]{
		ttype.NewInstant(spatial.NewPoint(0, 0, 0, false), ts(0, 0)),
		ttype.NewInstant(spatial.NewPoint(10, 0, 0, false), ts(0, 10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	p2, err := ttype.NewSequence([]ttype.TInstant[spatial.Point]{
		ttype.NewInstant(spatial.NewPoint(0, 10, 0, false), ts(0, 0)),
		ttype.NewInstant(spatial.NewPoint(0, 0, 0, false), ts(0, 10)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	centroid, err := TimeWeightedCentroid([]ttype.TSequence[spatial.Point]{p1, p2})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, centroid.X(), 1e-9)
	assert.InDelta(t, 2.5, centroid.Y(), 1e-9)
}

func TestTimeWeightedCentroidDetectsSridMismatch(t *testing.T) {
	p1, err := ttype.NewSequence([]ttype.TInstant[spatial.Point]{
		ttype.NewInstant(spatial.NewPoint(0, 0, 4326, false), ts(0, 0)),
		ttype.NewInstant(spatial.NewPoint(1, 1, 4326, false), ts(0, 1)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	p2, err := ttype.NewSequence([]ttype.TInstant[spatial.Point]{
		ttype.NewInstant(spatial.NewPoint(0, 0, 3857, false), ts(0, 0)),
		ttype.NewInstant(spatial.NewPoint(1, 1, 3857, false), ts(0, 1)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	_, err = TimeWeightedCentroid([]ttype.TSequence[spatial.Point]{p1, p2})
	assert.ErrorIs(t, err, spatial.ErrSridMismatch)
}

func TestTSumAndTCount(t *testing.T) {
	seq, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(2.0, ts(0, 1)),
		ttype.NewInstant(3.0, ts(0, 2)),
	}, true, true, ttype.Step)
	require.NoError(t, err)

	assert.Equal(t, 3, TCount([]ttype.TSequence[float64]{seq}))
	assert.Equal(t, 6.0, TSum([]ttype.TSequence[float64]{seq}))
	avg, err := TAvg([]ttype.TSequence[float64]{seq})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, avg, 1e-9)
}

func TestExtentUnionsAcrossSequences(t *testing.T) {
	a, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(1.0, ts(0, 0)),
		ttype.NewInstant(5.0, ts(0, 1)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)
	b, err := ttype.NewSequence([]ttype.TInstant[float64]{
		ttype.NewInstant(-2.0, ts(0, 2)),
		ttype.NewInstant(3.0, ts(0, 3)),
	}, true, true, ttype.Linear)
	require.NoError(t, err)

	ext, err := Extent([]ttype.TSequence[float64]{a, b})
	require.NoError(t, err)
	require.NotNil(t, ext.Value)
	assert.Equal(t, -2.0, ext.Value.Lower)
	assert.Equal(t, 5.0, ext.Value.Upper)
}
