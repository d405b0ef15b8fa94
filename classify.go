package projclip

import (
	"math"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Ring classification and hole assignment: stitched and closed rings are
// sorted into exteriors and holes by orientation, each hole is attached to
// its innermost containing exterior, and anything left over is inverted
// against the domain boundary. Orientation, area, and point-in-ring tests
// are delegated to go-geom.

// candidate is one classified output ring.
type candidate struct {
	pts  []Point
	flat []float64 // closed flat coordinates, go-geom layout XY
	area float64   // absolute area
	ccw  bool
}

// flatten returns the closed flat-coordinate form of an open ring.
func flatten(pts []Point) []float64 {
	flat := make([]float64, 0, 2*(len(pts)+1))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	flat = append(flat, pts[0].X, pts[0].Y)
	return flat
}

// assemble pairs exteriors with their holes and builds the final
// MultiPolygon. Rings matching the source exterior's orientation are
// candidate exteriors; the rest are candidate holes. Degenerate rings
// (fewer than 3 distinct vertices, or vanishing area) are discarded, which
// is how fully-clipped input yields an empty result rather than an invalid
// polygon.
func (p *Projection) assemble(rings [][]Point, srcCCW bool) *geom.MultiPolygon {
	var exts, holes []*candidate
	areaTol := p.tol * p.boundary.Extent()
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		c := &candidate{pts: ring, flat: flatten(ring)}
		c.area = math.Abs(geom.NewLinearRingFlat(geom.XY, c.flat).Area())
		if c.area <= areaTol {
			continue
		}
		c.ccw = xy.IsRingCounterClockwise(geom.XY, c.flat)
		if c.ccw == srcCCW {
			exts = append(exts, c)
		} else {
			holes = append(holes, c)
		}
	}

	type polyBits struct {
		ext   *candidate
		holes []*candidate
	}
	bits := make([]*polyBits, 0, len(exts)+1)
	for _, e := range exts {
		bits = append(bits, &polyBits{ext: e})
	}

	// Attach each hole to the innermost exterior that contains it. A hole
	// is never split across exteriors: pooled stitching already merged any
	// boundary-crossing hole into the exterior chains, so every candidate
	// hole here lies strictly inside or strictly outside each exterior.
	var leftover []*candidate
	for _, h := range holes {
		rep := geom.Coord{h.pts[0].X, h.pts[0].Y}
		best := -1
		for i, bit := range bits {
			if !xy.IsPointInRing(geom.XY, rep, bit.ext.flat) {
				continue
			}
			if best < 0 || bit.ext.area < bits[best].ext.area {
				best = i
			}
		}
		if best < 0 {
			leftover = append(leftover, h)
			continue
		}
		bits[best].holes = append(bits[best].holes, h)
	}

	// Rings with no containing exterior describe an inside-out polygon: the
	// source ring encircles the projection's far pole, so its image bounds
	// the region from the outside. The domain boundary itself becomes the
	// exterior and the leftover rings its holes.
	if len(leftover) > 0 {
		ring := p.boundary.Ring()
		inv := &candidate{pts: ring, flat: flatten(ring)}
		inv.area = math.Abs(geom.NewLinearRingFlat(geom.XY, inv.flat).Area())
		inv.ccw = true
		bits = append(bits, &polyBits{ext: inv, holes: leftover})
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, bit := range bits {
		poly := geom.NewPolygon(geom.XY)
		must(poly.Push(newRing(bit.ext, srcCCW)))
		for _, h := range bit.holes {
			must(poly.Push(newRing(h, !srcCCW)))
		}
		must(mp.Push(poly))
	}
	return mp
}

// newRing builds a go-geom linear ring from a candidate, reversing the
// coordinates if needed so the winding matches wantCCW. Exterior winding is
// preserved from the source polygon; holes get the opposite winding.
func newRing(c *candidate, wantCCW bool) *geom.LinearRing {
	flat := c.flat
	if c.ccw != wantCCW {
		n := len(flat) / 2
		rev := make([]float64, 0, len(flat))
		for i := n - 1; i >= 0; i-- {
			rev = append(rev, flat[2*i], flat[2*i+1])
		}
		flat = rev
	}
	return geom.NewLinearRingFlat(geom.XY, flat)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
