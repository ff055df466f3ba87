package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLifecycle(t *testing.T) {
	h := New(WGS84, 42)
	assert.False(t, h.IsTornDown())
	h.Teardown()
	assert.True(t, h.IsTornDown())
	// idempotent
	h.Teardown()
	assert.True(t, h.IsTornDown())
}

func TestHandleIDStableAndUnique(t *testing.T) {
	h1 := New(WGS84, 1)
	h2 := New(WGS84, 1)
	assert.NotEqual(t, h1.ID(), h2.ID())
	assert.Equal(t, h1.ID(), h1.ID())
}

func TestHandleFloat64Deterministic(t *testing.T) {
	h1 := New(WGS84, 7)
	h2 := New(WGS84, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, h1.Float64(), h2.Float64())
	}
}

func TestZoneTableLoadsUTCByDefault(t *testing.T) {
	zt := NewZoneTable()
	loc, err := zt.Load("")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestZoneTableRejectsUnknown(t *testing.T) {
	zt := NewZoneTable()
	assert.False(t, zt.IsValid("Not/AZone"))
}

func TestZoneTableValidKnown(t *testing.T) {
	zt := NewZoneTable()
	assert.True(t, zt.IsValid("America/New_York"))
	assert.True(t, zt.IsValid("UTC"))
}
