// Package projclip projects polygons between coordinate reference systems
// while handling the discontinuities of the target projection.
//
// # Overview
//
// Projecting each vertex of a polygon independently produces garbage as soon
// as one of its edges leaves the projection's representable domain or jumps
// across a seam such as the antimeridian: the resulting ring self-intersects
// or wraps around the map. projclip instead detects every boundary crossing
// along the ring, refines the true crossing point by bisection in source
// space, clips the ring into open chains, and stitches the chains back into
// valid closed rings by walking along the projection's domain boundary. The
// result is a collection of simple polygons, each with correctly assigned
// holes, whose union is the true image of the input.
//
// # Quick Start
//
//	import (
//	    "github.com/cartotools/projclip"
//	    "github.com/cartotools/projclip/projections"
//	)
//
//	// A plate carrée map centred on the antimeridian.
//	pr := projections.NewPlateCarree(180)
//
//	// A rectangle straddling the seam splits into two clean pieces.
//	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
//	    {{170, 0}, {190, 0}, {190, 10}, {170, 10}, {170, 0}},
//	})
//	out, err := pr.ProjectPolygon(poly)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Projection, Projector, Boundary, Point
//   - Core: edge refinement (refine.go), ring walking (ring.go),
//     boundary stitching (stitch.go), ring classification (classify.go)
//   - Interop: go-geom values in and out, GeoJSON helpers (geojson.go)
//   - projections/: ready-made sample projections for common map types
//
// Geometry values cross the API as github.com/twpayne/go-geom types; the
// point-projection itself is supplied by the caller through the Projector
// interface, so any projection with a defined domain boundary can be used.
package projclip
