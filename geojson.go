package projclip

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	geom "github.com/twpayne/go-geom"
)

// GeoJSON interop. The core works on go-geom values; these helpers bridge
// to GeoJSON for callers exchanging features with web maps and tile
// pipelines.

// ToGeoJSON converts a projected MultiPolygon into a GeoJSON geometry.
func ToGeoJSON(mp *geom.MultiPolygon) *geojson.Geometry {
	polys := make([][][][]float64, 0, mp.NumPolygons())
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		rings := make([][][]float64, 0, poly.NumLinearRings())
		for j := 0; j < poly.NumLinearRings(); j++ {
			coords := poly.LinearRing(j).Coords()
			ring := make([][]float64, 0, len(coords))
			for _, c := range coords {
				ring = append(ring, []float64{c.X(), c.Y()})
			}
			rings = append(rings, ring)
		}
		polys = append(polys, rings)
	}
	return geojson.NewMultiPolygonGeometry(polys...)
}

// PolygonFromGeoJSON converts a GeoJSON Polygon geometry into a go-geom
// polygon suitable for ProjectPolygon.
func PolygonFromGeoJSON(g *geojson.Geometry) (*geom.Polygon, error) {
	if g == nil || g.Type != geojson.GeometryPolygon {
		return nil, fmt.Errorf("projclip: expected Polygon geometry, got %v", geometryType(g))
	}
	poly := geom.NewPolygon(geom.XY)
	for _, ring := range g.Polygon {
		flat := make([]float64, 0, 2*len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				return nil, fmt.Errorf("projclip: position needs 2 coordinates, got %d", len(pos))
			}
			flat = append(flat, pos[0], pos[1])
		}
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			return nil, err
		}
	}
	return poly, nil
}

func geometryType(g *geojson.Geometry) string {
	if g == nil {
		return "nil"
	}
	return string(g.Type)
}
