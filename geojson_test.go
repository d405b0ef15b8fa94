package projclip

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	geom "github.com/twpayne/go-geom"
)

func TestToGeoJSON(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{2, 2}, {2, 8}, {8, 8}, {8, 2}, {2, 2}},
		},
		{
			{{20, 0}, {30, 0}, {30, 10}, {20, 10}, {20, 0}},
		},
	})

	g := ToGeoJSON(mp)
	if g.Type != geojson.GeometryMultiPolygon {
		t.Fatalf("Type = %v, want MultiPolygon", g.Type)
	}
	if len(g.MultiPolygon) != 2 {
		t.Fatalf("polygons = %d, want 2", len(g.MultiPolygon))
	}
	if len(g.MultiPolygon[0]) != 2 {
		t.Errorf("first polygon rings = %d, want 2", len(g.MultiPolygon[0]))
	}
	if len(g.MultiPolygon[1]) != 1 {
		t.Errorf("second polygon rings = %d, want 1", len(g.MultiPolygon[1]))
	}
	got := g.MultiPolygon[0][0][1]
	if got[0] != 10 || got[1] != 0 {
		t.Errorf("coordinate = %v, want [10 0]", got)
	}
}

func TestPolygonFromGeoJSON(t *testing.T) {
	g := geojson.NewPolygonGeometry([][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {2, 8}, {8, 8}, {8, 2}, {2, 2}},
	})

	poly, err := PolygonFromGeoJSON(g)
	if err != nil {
		t.Fatalf("PolygonFromGeoJSON: %v", err)
	}
	if n := poly.NumLinearRings(); n != 2 {
		t.Fatalf("rings = %d, want 2", n)
	}
	if c := poly.LinearRing(0).Coord(1); c.X() != 10 || c.Y() != 0 {
		t.Errorf("coordinate = %v, want (10, 0)", c)
	}
}

func TestPolygonFromGeoJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		g    *geojson.Geometry
	}{
		{"nil geometry", nil},
		{"wrong type", geojson.NewPointGeometry([]float64{1, 2})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PolygonFromGeoJSON(tt.g); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	g := geojson.NewPolygonGeometry([][][]float64{
		{{1, 1}, {9, 1}, {9, 9}, {1, 9}, {1, 1}},
	})
	poly, err := PolygonFromGeoJSON(g)
	if err != nil {
		t.Fatalf("PolygonFromGeoJSON: %v", err)
	}

	identity := ProjectorFunc(func(p Point) (Point, bool) { return p, true })
	proj := New(identity, unitSquare(t))
	mp, err := proj.ProjectPolygon(poly)
	if err != nil {
		t.Fatalf("ProjectPolygon: %v", err)
	}

	out := ToGeoJSON(mp)
	if len(out.MultiPolygon) != 1 {
		t.Fatalf("polygons = %d, want 1", len(out.MultiPolygon))
	}
	if got := out.MultiPolygon[0][0]; len(got) != 5 {
		t.Errorf("ring coords = %d, want 5", len(got))
	}

	empty := ToGeoJSON(geom.NewMultiPolygon(geom.XY))
	if len(empty.MultiPolygon) != 0 {
		t.Errorf("empty MultiPolygon should encode to 0 polygons, got %d", len(empty.MultiPolygon))
	}
}
