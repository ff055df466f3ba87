// Package spatial specializes the temporal core for 2D/3D geometric and
// geodetic points (spec.md §4.9), built on github.com/paulmach/orb for the
// point type and its planar/geodesic distance and bearing functions.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/banshee-data/mobitemporal/basetype"
	"github.com/banshee-data/mobitemporal/internal/engine"
)

// Point is the spatial base type: an orb.Point plus an optional Z
// (altitude), since orb.Point is 2D only.
type Point struct {
	orb.Point
	Z       float64
	HasZ    bool
	SRID    int
	Geodetic bool
}

// NewPoint builds a planar (or geodetic, per geodetic) 2D point.
func NewPoint(x, y float64, srid int, geodetic bool) Point {
	return Point{Point: orb.Point{x, y}, SRID: srid, Geodetic: geodetic}
}

// NewPointZ builds a 3D point.
func NewPointZ(x, y, z float64, srid int, geodetic bool) Point {
	return Point{Point: orb.Point{x, y}, Z: z, HasZ: true, SRID: srid, Geodetic: geodetic}
}

func (p Point) X() float64 { return p.Point[0] }
func (p Point) Y() float64 { return p.Point[1] }

func (p Point) String() string {
	if p.HasZ {
		return fmt.Sprintf("POINT Z(%v %v %v)", p.X(), p.Y(), p.Z)
	}
	return fmt.Sprintf("POINT(%v %v)", p.X(), p.Y())
}

// ErrSridMismatch, ErrDimensionalityMismatch, ErrGeodeticMismatch are
// returned before any computation combining two Points with incompatible
// reference systems (spec.md §4.9, §7).
var (
	ErrSridMismatch           = errors.New("spatial: SRID mismatch")
	ErrDimensionalityMismatch = errors.New("spatial: dimensionality (2D/3D) mismatch")
	ErrGeodeticMismatch       = errors.New("spatial: geodetic/planar mismatch")
)

// CheckCompatible validates that a and b share SRID, dimensionality, and
// geodetic flag, in that order — matching spec.md §4.9's "fail before any
// computation" rule.
func CheckCompatible(a, b Point) error {
	if a.SRID != b.SRID {
		return fmt.Errorf("%w: %d vs %d", ErrSridMismatch, a.SRID, b.SRID)
	}
	if a.HasZ != b.HasZ {
		return ErrDimensionalityMismatch
	}
	if a.Geodetic != b.Geodetic {
		return ErrGeodeticMismatch
	}
	return nil
}

// Distance returns the distance between a and b: geodesic (meters) if
// either is geodetic, planar (in SRID units) otherwise. Z is folded in for
// planar 3D distance; geodesic distance is always 2D (MEOS's own geography
// type ignores Z for distance). h supplies the reference ellipsoid
// (spec.md §5's "geodesic projection context" engine handle); a nil h, or
// one still on the WGS84 default, takes orb/geo's own distance function,
// which already assumes WGS84. A non-default ellipsoid falls back to a
// haversine computation parameterized by h.Ellipsoid.SemiMajorAxisMeters,
// since orb/geo has no ellipsoid parameter of its own to override.
func Distance(h *engine.Handle, a, b Point) (float64, error) {
	if err := CheckCompatible(a, b); err != nil {
		return 0, err
	}
	if a.Geodetic {
		if e := ellipsoidOf(h); e != engine.WGS84 {
			return haversineDistance(a, b, e.SemiMajorAxisMeters), nil
		}
		return geo.Distance(a.Point, b.Point), nil
	}
	dx, dy := a.X()-b.X(), a.Y()-b.Y()
	if a.HasZ {
		dz := a.Z - b.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
	}
	return math.Hypot(dx, dy), nil
}

// Bearing returns the azimuth from a to b in radians clockwise from north
// for geodetic points, or the planar angle from the positive X axis
// otherwise. h is used exactly as Distance uses it.
func Bearing(h *engine.Handle, a, b Point) (float64, error) {
	if err := CheckCompatible(a, b); err != nil {
		return 0, err
	}
	if a.Geodetic {
		if e := ellipsoidOf(h); e != engine.WGS84 {
			return haversineBearing(a, b), nil
		}
		return geo.Bearing(a.Point, b.Point) * math.Pi / 180, nil
	}
	return math.Atan2(b.Y()-a.Y(), b.X()-a.X()), nil
}

// ellipsoidOf returns h's configured ellipsoid, or WGS84 for a nil handle.
func ellipsoidOf(h *engine.Handle) engine.Ellipsoid {
	if h == nil {
		return engine.WGS84
	}
	return h.Ellipsoid
}

// haversineDistance is the great-circle distance on a sphere of the given
// radius, used for any configured ellipsoid other than orb/geo's built-in
// WGS84 assumption.
func haversineDistance(a, b Point, radiusMeters float64) float64 {
	lat1, lon1 := a.Y()*math.Pi/180, a.X()*math.Pi/180
	lat2, lon2 := b.Y()*math.Pi/180, b.X()*math.Pi/180
	dLat, dLon := lat2-lat1, lon2-lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * radiusMeters * math.Asin(math.Sqrt(h))
}

// haversineBearing is the initial great-circle bearing from a to b, in
// radians clockwise from north; unlike distance it doesn't depend on the
// sphere's radius.
func haversineBearing(a, b Point) float64 {
	lat1, lon1 := a.Y()*math.Pi/180, a.X()*math.Pi/180
	lat2, lon2 := b.Y()*math.Pi/180, b.X()*math.Pi/180
	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x)
}

// interpolatePoint linearly interpolates between v1 and v2 at ratio,
// component-wise. SRID/geodetic/Z flags are carried from v1 (callers are
// expected to have already verified compatibility via CheckCompatible).
func interpolatePoint(v1, v2 Point, ratio float64) Point {
	out := Point{
		Point:    orb.Point{v1.X() + (v2.X()-v1.X())*ratio, v1.Y() + (v2.Y()-v1.Y())*ratio},
		HasZ:     v1.HasZ,
		SRID:     v1.SRID,
		Geodetic: v1.Geodetic,
	}
	if v1.HasZ {
		out.Z = v1.Z + (v2.Z-v1.Z)*ratio
	}
	return out
}

// ParsePoint reads the "POINT(x y)" / "POINT Z(x y z)" literal produced by
// String. SRID and geodetic flags travel out of band (the WKB/text entity
// header, spec.md §6), so a parsed Point always has SRID 0 and Geodetic
// false; the caller that knows the entity's flags fills them in.
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	hasZ := strings.HasPrefix(s, "POINT Z")
	body := strings.TrimPrefix(s, "POINT Z")
	body = strings.TrimPrefix(body, "POINT")
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return Point{}, fmt.Errorf("spatial: invalid point literal %q", s)
	}
	fields := strings.Fields(body[1 : len(body)-1])
	want := 2
	if hasZ {
		want = 3
	}
	if len(fields) != want {
		return Point{}, fmt.Errorf("spatial: invalid point literal %q", s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("spatial: invalid point literal %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("spatial: invalid point literal %q: %w", s, err)
	}
	if !hasZ {
		return NewPoint(x, y, 0, false), nil
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Point{}, fmt.Errorf("spatial: invalid point literal %q: %w", s, err)
	}
	return NewPointZ(x, y, z, 0, false), nil
}

func init() {
	basetype.Register(&basetype.Ops[Point]{
		Name: "point",
		Equal: func(a, b Point) bool {
			return a.X() == b.X() && a.Y() == b.Y() && a.Z == b.Z && a.SRID == b.SRID
		},
		Hash: func(v Point) uint64 {
			return math.Float64bits(v.X()) ^ math.Float64bits(v.Y())<<1 ^ math.Float64bits(v.Z)<<2
		},
		Linear:      true,
		Interpolate: interpolatePoint,
		Collinear: func(v1, v2, v3 Point, ratio, epsilon float64) bool {
			expected := interpolatePoint(v1, v3, ratio)
			dx, dy := expected.X()-v2.X(), expected.Y()-v2.Y()
			return math.Hypot(dx, dy) <= epsilon
		},
		Format: func(v Point) string { return v.String() },
		Parse:  ParsePoint,
	})
}
