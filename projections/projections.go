// Package projections provides ready-made sample projections for use with
// projclip: a point projector plus a matching domain boundary for common
// map types. The implementations use spherical formulas; they are meant
// for tests, examples, and callers that do not need ellipsoidal accuracy.
// Production users with a full CRS stack can implement projclip.Projector
// against their own projection library instead.
package projections

import (
	"math"

	"github.com/cartotools/projclip"
)

// EarthRadius is the spherical earth radius in metres shared by the
// metre-based projections in this package.
const EarthRadius = 6378137.0

const degToRad = math.Pi / 180

// wrapLon wraps a longitude into [-180, 180) around the given central
// longitude, expressed relative to it.
func wrapLon(lon, central float64) float64 {
	d := math.Mod(lon-central+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// PlateCarree is the equirectangular projection: x is longitude relative
// to the central meridian, y is latitude, both in degrees. The seam sits
// 180° away from the central meridian.
type PlateCarree struct {
	CentralLongitude float64
}

// Forward implements projclip.Projector.
func (p PlateCarree) Forward(pt projclip.Point) (projclip.Point, bool) {
	return projclip.Pt(wrapLon(pt.X, p.CentralLongitude), pt.Y), true
}

// Boundary returns the rectangular domain [-180,180] x [-90,90].
func (p PlateCarree) Boundary() *projclip.Boundary {
	return mustBoundary(rectRing(-180, -90, 180, 90))
}

// NewPlateCarree builds a ready-to-use Projection for a plate carrée map
// centred on the given longitude.
func NewPlateCarree(centralLongitude float64) *projclip.Projection {
	p := PlateCarree{CentralLongitude: centralLongitude}
	return projclip.New(p, p.Boundary())
}

// Mercator is the spherical Mercator projection with x in degrees of
// longitude and y in gudermannian degrees, truncated at ±85° latitude.
type Mercator struct {
	CentralLongitude float64
}

// MercatorY returns the Mercator ordinate for a latitude in degrees.
func MercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4+lat*degToRad/2)) / degToRad
}

// Forward implements projclip.Projector. Latitudes at the poles have no
// image.
func (m Mercator) Forward(pt projclip.Point) (projclip.Point, bool) {
	if math.Abs(pt.Y) >= 90 {
		return projclip.Point{}, false
	}
	return projclip.Pt(wrapLon(pt.X, m.CentralLongitude), MercatorY(pt.Y)), true
}

// Boundary returns the rectangular domain truncated at ±85° latitude.
func (m Mercator) Boundary() *projclip.Boundary {
	ymax := MercatorY(85)
	return mustBoundary(rectRing(-180, -ymax, 180, ymax))
}

// NewMercator builds a ready-to-use Projection for a Mercator map centred
// on the given longitude.
func NewMercator(centralLongitude float64) *projclip.Projection {
	m := Mercator{CentralLongitude: centralLongitude}
	return projclip.New(m, m.Boundary())
}

// NorthPolarStereo is the polar stereographic projection looking down on
// the north pole, in metres. Its domain is a disc: latitudes south of
// BoundaryLatitude fall outside, and the antipodal south pole has no
// image at all.
type NorthPolarStereo struct {
	// BoundaryLatitude is the southernmost representable latitude.
	// Zero means the default of -63°.
	BoundaryLatitude float64
}

func (s NorthPolarStereo) boundaryLat() float64 {
	if s.BoundaryLatitude == 0 {
		return -63
	}
	return s.BoundaryLatitude
}

// Radius returns the projected distance from the pole for a latitude in
// degrees.
func (s NorthPolarStereo) Radius(lat float64) float64 {
	return 2 * EarthRadius * math.Tan((90-lat)*degToRad/2)
}

// Forward implements projclip.Projector. The south pole is singular.
// Walking east traces clockwise around the pole: the projection reverses
// orientation.
func (s NorthPolarStereo) Forward(pt projclip.Point) (projclip.Point, bool) {
	if pt.Y <= -89.9 {
		return projclip.Point{}, false
	}
	rho := s.Radius(pt.Y)
	lam := pt.X * degToRad
	return projclip.Pt(rho*math.Sin(lam), rho*math.Cos(lam)), true
}

// Boundary returns the circular domain rim as a 180-gon.
func (s NorthPolarStereo) Boundary() *projclip.Boundary {
	return mustBoundary(circleRing(s.Radius(s.boundaryLat()), 180))
}

// NewNorthPolarStereo builds a ready-to-use polar stereographic
// Projection with the default domain rim.
func NewNorthPolarStereo() *projclip.Projection {
	s := NorthPolarStereo{}
	return projclip.New(s, s.Boundary())
}

// TransverseMercator is the spherical transverse Mercator projection in
// metres. Points in the hemisphere opposite the central meridian, or too
// close to the projection's singular great circle, have no image: this is
// the classic bounded backward-projection range.
type TransverseMercator struct {
	CentralLongitude float64
}

// bMax bounds |cos(lat)*sin(lon)| away from the singularity at 1.
const bMax = 0.9999

// Forward implements projclip.Projector.
func (t TransverseMercator) Forward(pt projclip.Point) (projclip.Point, bool) {
	lam := wrapLon(pt.X, t.CentralLongitude) * degToRad
	phi := pt.Y * degToRad
	if math.Abs(pt.Y) >= 89.999 {
		return projclip.Point{}, false
	}
	if math.Cos(phi)*math.Cos(lam) < 0 {
		return projclip.Point{}, false
	}
	b := math.Cos(phi) * math.Sin(lam)
	if math.Abs(b) > bMax {
		return projclip.Point{}, false
	}
	x := EarthRadius * math.Atanh(b)
	y := EarthRadius * math.Atan2(math.Tan(phi), math.Cos(lam))
	return projclip.Pt(x, y), true
}

// Boundary returns the rectangular domain bounded by the x reach of bMax
// and the y reach of the pole-to-pole meridian arc.
func (t TransverseMercator) Boundary() *projclip.Boundary {
	xmax := EarthRadius * math.Atanh(bMax)
	ymax := EarthRadius * math.Pi / 2
	return mustBoundary(rectRing(-xmax, -ymax, xmax, ymax))
}

// NewTransverseMercator builds a ready-to-use transverse Mercator
// Projection centred on the given longitude.
func NewTransverseMercator(centralLongitude float64) *projclip.Projection {
	t := TransverseMercator{CentralLongitude: centralLongitude}
	return projclip.New(t, t.Boundary())
}

// rectRing returns the counter-clockwise rectangle ring for the given
// corners.
func rectRing(x0, y0, x1, y1 float64) []projclip.Point {
	return []projclip.Point{
		projclip.Pt(x0, y0),
		projclip.Pt(x1, y0),
		projclip.Pt(x1, y1),
		projclip.Pt(x0, y1),
	}
}

// circleRing returns a counter-clockwise n-gon approximating a circle of
// the given radius around the origin.
func circleRing(radius float64, n int) []projclip.Point {
	ring := make([]projclip.Point, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, projclip.Pt(radius*math.Cos(a), radius*math.Sin(a)))
	}
	return ring
}

func mustBoundary(ring []projclip.Point) *projclip.Boundary {
	b, err := projclip.NewBoundary(ring)
	if err != nil {
		panic(err)
	}
	return b
}
