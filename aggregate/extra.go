package aggregate

import (
	"fmt"

	"github.com/banshee-data/mobitemporal/spatial"
)

// extra holds the invariants a spatial aggregate enforces across every
// spliced input: the first input installs them, every subsequent input
// must match (spec.md §4.10).
type extra struct {
	srid     int
	geodetic bool
	installed bool
}

func (e *extra) check(p spatial.Point) error {
	if !e.installed {
		e.srid, e.geodetic, e.installed = p.SRID, p.Geodetic, true
		return nil
	}
	if p.SRID != e.srid {
		return fmt.Errorf("%w: %d vs %d", spatial.ErrSridMismatch, p.SRID, e.srid)
	}
	if p.Geodetic != e.geodetic {
		return spatial.ErrGeodeticMismatch
	}
	return nil
}
