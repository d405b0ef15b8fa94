package projclip

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

var (
	// ErrInvalidRing is returned when an input ring has fewer than three
	// distinct points. This is the only calling-contract failure: every
	// ordinary geometric configuration (wraps, holes, polar singularities)
	// projects without error.
	ErrInvalidRing = errors.New("projclip: ring needs at least 3 distinct points")

	// ErrNilGeometry is returned when the input geometry is nil.
	ErrNilGeometry = errors.New("projclip: nil geometry")

	// ErrUnresolvedCrossing is returned in strict mode when stitching ends
	// with an unmatched boundary attachment. In the default mode the
	// fragment is dropped, a warning is logged, and the best-effort rings
	// are returned instead.
	ErrUnresolvedCrossing = errors.New("projclip: unresolved boundary crossing")
)

// Projector is the forward point-projection capability supplied by the
// caller: it maps a source-space coordinate pair to a projected pair, or
// reports ok=false when the point has no representable image (antipodal or
// singular points). Implementations must be safe for concurrent use.
type Projector interface {
	Forward(p Point) (Point, bool)
}

// ProjectorFunc adapts a plain function to the Projector interface.
type ProjectorFunc func(p Point) (Point, bool)

// Forward implements Projector.
func (f ProjectorFunc) Forward(p Point) (Point, bool) { return f(p) }

// Projection combines a point projector with its domain boundary and
// carries the refinement configuration. A Projection is immutable after New
// and safe for concurrent use; each call is a pure function of its input.
type Projection struct {
	projector Projector
	boundary  *Boundary
	tol       float64
	threshold float64
	maxIter   int
	strict    bool
}

// New creates a Projection from a point projector and its domain boundary.
//
// Defaults: the duplicate-suppression tolerance is the boundary's own
// snapping tolerance, the discontinuity threshold is a quarter of the
// domain extent, and bisection is capped at 64 iterations. All three can
// be overridden with options.
func New(projector Projector, boundary *Boundary, opts ...Option) *Projection {
	p := &Projection{
		projector: projector,
		boundary:  boundary,
		tol:       boundary.Tolerance(),
		threshold: boundary.Extent() / 4,
		maxIter:   64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Boundary returns the projection's domain boundary.
func (p *Projection) Boundary() *Boundary { return p.boundary }

func (p *Projection) refiner() *refiner {
	return &refiner{
		proj:      p.projector,
		b:         p.boundary,
		maxIter:   p.maxIter,
		tol:       p.tol,
		threshold: p.threshold,
	}
}

// ProjectPolygon projects a polygon (exterior ring plus holes) into the
// target projection, splitting and re-stitching it wherever it crosses the
// projection's domain boundary or seam. The union of the returned polygons
// is the true image of the input; exterior winding is preserved. Input
// entirely outside the representable domain yields an empty MultiPolygon,
// which is a normal result, not an error.
func (p *Projection) ProjectPolygon(poly *geom.Polygon) (*geom.MultiPolygon, error) {
	if poly == nil {
		return nil, ErrNilGeometry
	}
	src := make([][]Point, 0, poly.NumLinearRings())
	for i := 0; i < poly.NumLinearRings(); i++ {
		ring, err := ringPoints(poly.LinearRing(i).Coords())
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		src = append(src, ring)
	}
	if len(src) == 0 {
		return nil, ErrNilGeometry
	}

	srcCCW := sourceOrientation(src[0])

	var closedRings [][]Point
	var open []*chain
	for i, ring := range src {
		for _, c := range p.projectPath(ring, i, true) {
			if c.closed {
				closedRings = append(closedRings, c.pts)
			} else {
				c.start, c.pts[0] = p.boundary.Project(c.pts[0])
				c.end, c.pts[len(c.pts)-1] = p.boundary.Project(c.pts[len(c.pts)-1])
				open = append(open, c)
			}
		}
	}

	stitched, fallback := stitch(p.boundary, open, srcCCW, p.tol)
	if fallback && p.strict {
		return nil, ErrUnresolvedCrossing
	}
	return p.assemble(append(closedRings, stitched...), srcCCW), nil
}

// ProjectMultiPolygon projects every member polygon and concatenates the
// results in input order.
func (p *Projection) ProjectMultiPolygon(mp *geom.MultiPolygon) (*geom.MultiPolygon, error) {
	if mp == nil {
		return nil, ErrNilGeometry
	}
	out := geom.NewMultiPolygon(geom.XY)
	for i := 0; i < mp.NumPolygons(); i++ {
		part, err := p.ProjectPolygon(mp.Polygon(i))
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		for j := 0; j < part.NumPolygons(); j++ {
			must(out.Push(part.Polygon(j)))
		}
	}
	return out, nil
}

// ProjectLineString projects an open line, clipping it to the domain: the
// result holds one line string per maximal projected run inside the
// domain, with refined attachment points at the clipped ends.
func (p *Projection) ProjectLineString(ls *geom.LineString) (*geom.MultiLineString, error) {
	if ls == nil {
		return nil, ErrNilGeometry
	}
	coords := ls.Coords()
	if len(coords) < 2 {
		return nil, fmt.Errorf("projclip: line needs at least 2 points")
	}
	src := make([]Point, len(coords))
	for i, c := range coords {
		src[i] = Pt(c.X(), c.Y())
	}
	out := geom.NewMultiLineString(geom.XY)
	for _, c := range p.projectPath(src, 0, false) {
		flat := make([]float64, 0, 2*len(c.pts))
		for _, pt := range c.pts {
			flat = append(flat, pt.X, pt.Y)
		}
		must(out.Push(geom.NewLineStringFlat(geom.XY, flat)))
	}
	return out, nil
}

// ringPoints converts go-geom ring coordinates to points, dropping the
// closing duplicate and any zero-length edges, and enforces the minimum
// ring size at the call boundary.
func ringPoints(coords []geom.Coord) ([]Point, error) {
	pts := make([]Point, 0, len(coords))
	for _, c := range coords {
		pt := Pt(c.X(), c.Y())
		if len(pts) > 0 && pts[len(pts)-1] == pt {
			continue
		}
		pts = append(pts, pt)
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, ErrInvalidRing
	}
	return pts, nil
}

// sourceOrientation returns the winding of the source exterior ring.
// Geodetic-style rings that are degenerate in the flat source plane (for
// example a ring of constant latitude, which encloses a pole) default to
// counter-clockwise.
func sourceOrientation(ring []Point) bool {
	if math.Abs(signedArea(ring)) < 1e-12 {
		return true
	}
	return xy.IsRingCounterClockwise(geom.XY, flatten(ring))
}
