package projclip

import (
	"errors"
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// ErrInvalidBoundary is returned when a boundary ring has fewer than three
// distinct vertices.
var ErrInvalidBoundary = errors.New("projclip: boundary ring needs at least 3 distinct points")

// Boundary models the projection's valid domain as a single simple closed
// ring in projected space. It answers containment queries, locates segment
// crossings, and walks arcs along itself. A Boundary is immutable after
// construction and safe for concurrent use.
type Boundary struct {
	ring   []Point   // open representation: ring[0] is not repeated at the end
	cum    []float64 // cum[i] = perimeter distance from ring[0] to ring[i]; cum[n] = total
	length float64
	rect   r2.Rect
	tol    float64 // snapping tolerance derived from the domain extent
}

// NewBoundary builds a Boundary from a closed ring of projected-space
// points. A trailing point equal to the first is accepted and dropped, as
// are repeated consecutive points. The ring is normalized to
// counter-clockwise orientation regardless of the input winding.
func NewBoundary(pts []Point) (*Boundary, error) {
	ring := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(ring) > 0 && ring[len(ring)-1] == p {
			continue
		}
		ring = append(ring, p)
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, ErrInvalidBoundary
	}

	// Normalize to counter-clockwise so that walking forward keeps the
	// domain interior on the left.
	if signedArea(ring) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	b := &Boundary{ring: ring}
	b.cum = make([]float64, len(ring)+1)
	rect := r2.RectFromPoints(r2.Point{X: ring[0].X, Y: ring[0].Y})
	for i, p := range ring {
		next := ring[(i+1)%len(ring)]
		b.cum[i+1] = b.cum[i] + p.Distance(next)
		rect = rect.AddPoint(r2.Point{X: p.X, Y: p.Y})
	}
	b.length = b.cum[len(ring)]
	b.rect = rect
	b.tol = b.Extent() * 1e-9
	return b, nil
}

// signedArea returns the shoelace area of an open ring: positive for
// counter-clockwise winding with y increasing upwards.
func signedArea(ring []Point) float64 {
	var area float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		area += p.Cross(q)
	}
	return area / 2
}

// Ring returns a copy of the boundary ring, counter-clockwise, without a
// closing duplicate point.
func (b *Boundary) Ring() []Point {
	out := make([]Point, len(b.ring))
	copy(out, b.ring)
	return out
}

// Bounds returns the axis-aligned bounding rectangle of the domain.
func (b *Boundary) Bounds() r2.Rect {
	return b.rect
}

// Extent returns the diagonal length of the domain's bounding rectangle.
// Tolerances throughout the package are expressed relative to this scale.
func (b *Boundary) Extent() float64 {
	dx := b.rect.X.Length()
	dy := b.rect.Y.Length()
	return math.Hypot(dx, dy)
}

// Length returns the perimeter of the boundary ring.
func (b *Boundary) Length() float64 {
	return b.length
}

// Tolerance returns the absolute snapping tolerance used by this boundary.
func (b *Boundary) Tolerance() float64 {
	return b.tol
}

// Contains reports whether p lies inside the domain. The domain is closed:
// points on the boundary ring itself, to within the snapping tolerance,
// count as contained.
func (b *Boundary) Contains(p Point) bool {
	rp := r2.Point{X: p.X, Y: p.Y}
	if !b.rect.ContainsPoint(rp) {
		// Still allow points a hair outside the bbox that snap onto the ring.
		d, _, _ := b.closest(p)
		return d <= b.tol
	}
	if d, _, _ := b.closest(p); d <= b.tol {
		return true
	}
	return b.winding(p) != 0
}

// winding returns the winding number of p with respect to the boundary
// ring using a horizontal ray cast.
func (b *Boundary) winding(p Point) int {
	var w int
	for i, a := range b.ring {
		c := b.ring[(i+1)%len(b.ring)]
		if a.Y <= p.Y && c.Y > p.Y {
			if isLeft(a, c, p) > 0 {
				w++
			}
		} else if a.Y > p.Y && c.Y <= p.Y {
			if isLeft(a, c, p) < 0 {
				w--
			}
		}
	}
	return w
}

// isLeft returns positive if pt is left of line a-c, negative if right,
// zero if on the line.
func isLeft(a, c, pt Point) float64 {
	return (c.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(c.Y-a.Y)
}

// Crossing is one intersection of a segment with the boundary ring.
type Crossing struct {
	T     float64 // parametric position along the queried segment, 0..1
	Point Point   // intersection point
	Edge  int     // index of the boundary edge that was crossed
}

// Intersect returns all crossings of the open segment a-c with the boundary
// ring, ordered by T. An empty result means the segment does not cross.
func (b *Boundary) Intersect(a, c Point) []Crossing {
	seg := r2.RectFromPoints(r2.Point{X: a.X, Y: a.Y}, r2.Point{X: c.X, Y: c.Y})
	if !seg.Intersects(b.rect) {
		return nil
	}
	r := c.Sub(a)
	var out []Crossing
	for i, e0 := range b.ring {
		e1 := b.ring[(i+1)%len(b.ring)]
		s := e1.Sub(e0)
		denom := r.Cross(s)
		if math.Abs(denom) < 1e-15 {
			continue // parallel or degenerate
		}
		d := e0.Sub(a)
		t := d.Cross(s) / denom
		u := d.Cross(r) / denom
		if t < 0 || t > 1 || u < 0 || u >= 1 {
			continue
		}
		out = append(out, Crossing{T: t, Point: a.Add(r.Mul(t)), Edge: i})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// closest returns the distance from p to the boundary ring, the nearest
// point on the ring, and that point's arc distance from ring[0].
func (b *Boundary) closest(p Point) (dist float64, near Point, arc float64) {
	dist = math.Inf(1)
	for i, e0 := range b.ring {
		e1 := b.ring[(i+1)%len(b.ring)]
		s := e1.Sub(e0)
		ls := s.LengthSquared()
		var u float64
		if ls > 0 {
			u = p.Sub(e0).Dot(s) / ls
			u = math.Max(0, math.Min(1, u))
		}
		cand := e0.Add(s.Mul(u))
		if d := p.Distance(cand); d < dist {
			dist = d
			near = cand
			arc = b.cum[i] + u*(b.cum[i+1]-b.cum[i])
		}
	}
	return dist, near, arc
}

// Project snaps p orthogonally onto the nearest boundary edge and returns
// the snapped point together with its arc distance along the ring from
// ring[0] in the counter-clockwise direction.
func (b *Boundary) Project(p Point) (arc float64, snapped Point) {
	_, near, at := b.closest(p)
	return at, near
}

// PointAt returns the point at the given arc distance along the ring,
// measured counter-clockwise from ring[0]. The distance wraps modulo the
// perimeter.
func (b *Boundary) PointAt(arc float64) Point {
	arc = math.Mod(arc, b.length)
	if arc < 0 {
		arc += b.length
	}
	i := sort.SearchFloat64s(b.cum, arc)
	// cum[i-1] < arc <= cum[i]; the containing edge starts at ring[i-1].
	if i == 0 {
		return b.ring[0]
	}
	if i > len(b.ring) {
		i = len(b.ring)
	}
	e0 := b.ring[i-1]
	e1 := b.ring[i%len(b.ring)]
	span := b.cum[i] - b.cum[i-1]
	if span <= 0 {
		return e0
	}
	return e0.Lerp(e1, (arc-b.cum[i-1])/span)
}

// Walk returns the boundary arc from arc position from to arc position to,
// traversed counter-clockwise when forward is true and clockwise otherwise.
// The result contains every intermediate ring vertex in travel order
// followed by the point at to; the point at from is excluded. Vertices
// within Tolerance of either endpoint are dropped; this filter always uses
// the boundary's own tolerance, which depends only on the ring geometry,
// so callers carrying a coarser working tolerance must deduplicate the
// returned points themselves.
func (b *Boundary) Walk(from, to float64, forward bool) []Point {
	var span float64
	if forward {
		span = math.Mod(to-from, b.length)
	} else {
		span = math.Mod(from-to, b.length)
	}
	if span < 0 {
		span += b.length
	}

	// Collect every ring vertex whose travel offset from the start lies
	// strictly inside the arc, then emit them in travel order.
	type hop struct {
		off float64
		pt  Point
	}
	var hops []hop
	for k, v := range b.ring {
		var off float64
		if forward {
			off = math.Mod(b.cum[k]-from, b.length)
		} else {
			off = math.Mod(from-b.cum[k], b.length)
		}
		if off < 0 {
			off += b.length
		}
		if off > b.tol && off < span-b.tol {
			hops = append(hops, hop{off: off, pt: v})
		}
	}
	sort.Slice(hops, func(i, j int) bool { return hops[i].off < hops[j].off })

	out := make([]Point, 0, len(hops)+1)
	for _, h := range hops {
		out = append(out, h.pt)
	}
	out = append(out, b.PointAt(to))
	return out
}
