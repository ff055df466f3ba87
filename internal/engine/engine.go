// Package engine holds the process-wide state the temporal core needs but
// does not own outright: the timezone table, a geodesic projection context,
// and a seeded RNG exposed through Handle.Float64 (spec.md §5). These are
// explicit handles passed by reference
// to constructors that need them; Default provides an opt-in global handle
// for callers that don't want to thread one through. Handles must be
// initialized before use and torn down exactly once.
package engine

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/banshee-data/mobitemporal/internal/monitoring"
)

// Ellipsoid holds the reference ellipsoid used for geodesic distance and
// bearing calculations on geodetic points (spec.md §4.9). WGS84 is the
// default; callers may substitute another for non-Earth or legacy datums.
type Ellipsoid struct {
	// SemiMajorAxisMeters is the equatorial radius.
	SemiMajorAxisMeters float64
	// Flattening is (a-b)/a.
	Flattening float64
}

// WGS84 is the standard terrestrial reference ellipsoid.
var WGS84 = Ellipsoid{SemiMajorAxisMeters: 6378137.0, Flattening: 1.0 / 298.257223563}

// Handle bundles the process-wide contexts a caller must initialize once at
// startup and tear down once at shutdown. Core operations taking a *Handle
// must not be called after Teardown.
type Handle struct {
	mu       sync.Mutex
	torndown bool

	// id uniquely tags this handle for log correlation across init and
	// teardown; operations don't key anything off it.
	id uuid.UUID

	Zones     *ZoneTable
	Ellipsoid Ellipsoid
	rng       *rand.Rand
}

// New initializes a Handle. ellipsoid selects the geodesic reference frame;
// seed seeds the RNG deterministically (pass a value derived from real
// entropy for production use, a fixed value for reproducible tests).
func New(ellipsoid Ellipsoid, seed int64) *Handle {
	h := &Handle{
		id:        uuid.New(),
		Zones:     NewZoneTable(),
		Ellipsoid: ellipsoid,
		rng:       rand.New(rand.NewSource(seed)),
	}
	monitoring.Logf("engine: handle %s initialized", h.id)
	return h
}

// ID returns the handle's unique identifier, stable for its lifetime.
// Useful for correlating log lines across init, operations, and teardown
// when a process holds more than one handle concurrently.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Default returns a Handle seeded from the runtime clock, for callers that
// don't need deterministic reproducibility.
func Default() *Handle {
	return New(WGS84, defaultSeed())
}

// Float64 returns the next pseudo-random float64 in [0,1) from the handle's
// RNG, reserved for the skiplist level-selection coin flips spec.md §4.10
// describes and for breaking ties between equally-ranked aggregate
// candidates. Every aggregate this module currently implements
// (twcentroid, tsum, tcount, tavg, extent) combines via a commutative,
// associative reduction with no tie to break, and the skiplist itself was
// deliberately not built (see aggregate's grounding notes) — so this has
// no caller yet. It stays on Handle rather than being deleted because any
// future ordered-materialization aggregate is the kind of addition that
// would need it. Each call takes the handle's mutex, so concurrent callers
// do not race on the RNG.
func (h *Handle) Float64() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.Float64()
}

// Teardown marks the handle as no longer usable. Core operations must not
// be invoked against a torn-down handle; this is a documentation-level
// invariant the package does not enforce on every call for performance
// reasons, mirroring spec.md §5's "callers must not use core operations
// across init/teardown".
func (h *Handle) Teardown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.torndown {
		return
	}
	h.torndown = true
	monitoring.Logf("engine: handle %s torn down", h.id)
}

// IsTornDown reports whether Teardown has been called.
func (h *Handle) IsTornDown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.torndown
}
