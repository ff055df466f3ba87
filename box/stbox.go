package box

import (
	"errors"
	"fmt"

	"github.com/banshee-data/mobitemporal/span"
	"github.com/banshee-data/mobitemporal/ttime"
)

// ErrSridMismatch, ErrGeodeticMismatch are raised before any spatial
// computation combining two STBoxes with incompatible reference systems
// (spec.md §4.9, §7).
var (
	ErrSridMismatch     = errors.New("box: SRID mismatch")
	ErrGeodeticMismatch = errors.New("box: geodetic/planar mismatch")
)

// STBox bounds a spatial (and optionally temporal) extent: an XY or XYZ
// envelope plus an optional time span, tagged with SRID and geodetic/Z
// flags. HasX is the only mandatory dimension; HasZ and HasT are optional.
type STBox struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	Zmin, Zmax float64

	Time *span.Span[ttime.Timestamp]

	SRID     int
	HasX     bool
	HasZ     bool
	HasT     bool
	Geodetic bool
}

// NewSTBox builds a spatial-only STBox, validating xmin <= xmax etc.
func NewSTBox(xmin, xmax, ymin, ymax float64, srid int, geodetic bool) (STBox, error) {
	if xmin > xmax || ymin > ymax {
		return STBox{}, fmt.Errorf("%w: min must not exceed max", ErrInvalidBox)
	}
	return STBox{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax, SRID: srid, HasX: true, Geodetic: geodetic}, nil
}

// WithZ attaches a Z range to b.
func (b STBox) WithZ(zmin, zmax float64) (STBox, error) {
	if zmin > zmax {
		return STBox{}, fmt.Errorf("%w: zmin must not exceed zmax", ErrInvalidBox)
	}
	b.Zmin, b.Zmax = zmin, zmax
	b.HasZ = true
	return b, nil
}

// WithTime attaches a time span to b.
func (b STBox) WithTime(t span.Span[ttime.Timestamp]) STBox {
	b.Time = &t
	b.HasT = true
	return b
}

func (b STBox) checkCompatible(other STBox) error {
	if b.HasX && other.HasX {
		if b.SRID != other.SRID {
			return fmt.Errorf("%w: %d vs %d", ErrSridMismatch, b.SRID, other.SRID)
		}
		if b.Geodetic != other.Geodetic {
			return ErrGeodeticMismatch
		}
	}
	return nil
}

// Overlaps reports whether b and other overlap on every spatial/time
// dimension both carry (common-dimensions semantics: absent dimensions on
// either side don't constrain the predicate).
func (b STBox) Overlaps(other STBox) (bool, error) {
	if err := b.checkCompatible(other); err != nil {
		return false, err
	}
	if b.HasX && other.HasX {
		if b.Xmax < other.Xmin || other.Xmax < b.Xmin {
			return false, nil
		}
		if b.Ymax < other.Ymin || other.Ymax < b.Ymin {
			return false, nil
		}
		if b.HasZ && other.HasZ && (b.Zmax < other.Zmin || other.Zmax < b.Zmin) {
			return false, nil
		}
	}
	if b.HasT && other.HasT && !b.Time.Overlaps(*other.Time) {
		return false, nil
	}
	return true, nil
}

// Contains reports whether b contains other on every dimension other
// carries.
func (b STBox) Contains(other STBox) (bool, error) {
	if err := b.checkCompatible(other); err != nil {
		return false, err
	}
	if other.HasX {
		if !b.HasX || other.Xmin < b.Xmin || other.Xmax > b.Xmax || other.Ymin < b.Ymin || other.Ymax > b.Ymax {
			return false, nil
		}
		if other.HasZ {
			if !b.HasZ || other.Zmin < b.Zmin || other.Zmax > b.Zmax {
				return false, nil
			}
		}
	}
	if other.HasT {
		if !b.HasT || !b.Time.Contains(*other.Time) {
			return false, nil
		}
	}
	return true, nil
}

// Expand inflates the box: spatialDelta (a distance) inflates every present
// spatial dimension, timeDelta (an interval) inflates the time dimension if
// present — matching spec.md §4.3's "only the dimension the delta's unit
// matches is inflated" rule for STBox.
func (b STBox) Expand(spatialDelta float64, timeDelta ttime.Interval) (STBox, error) {
	out := b
	if b.HasX {
		out.Xmin, out.Xmax = b.Xmin-spatialDelta, b.Xmax+spatialDelta
		out.Ymin, out.Ymax = b.Ymin-spatialDelta, b.Ymax+spatialDelta
		if b.HasZ {
			out.Zmin, out.Zmax = b.Zmin-spatialDelta, b.Zmax+spatialDelta
		}
	}
	if b.HasT {
		lower := b.Time.Lower.Add(timeDelta.Negate())
		upper := b.Time.Upper.Add(timeDelta)
		t, err := span.Make(lower, upper, true, true)
		if err != nil {
			return STBox{}, err
		}
		out.Time = &t
	}
	return out, nil
}

func (b STBox) String() string {
	s := "STBOX("
	if b.HasX {
		s += fmt.Sprintf("X(%v,%v) Y(%v,%v)", b.Xmin, b.Xmax, b.Ymin, b.Ymax)
		if b.HasZ {
			s += fmt.Sprintf(" Z(%v,%v)", b.Zmin, b.Zmax)
		}
	}
	if b.HasT {
		if b.HasX {
			s += " "
		}
		s += fmt.Sprintf("T%s", b.Time.String())
	}
	return s + fmt.Sprintf(", SRID=%d)", b.SRID)
}
