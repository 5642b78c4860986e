package geometry

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Decompose splits a geometry into its constituent polygons. A Polygon
// yields a one-element slice; a MultiPolygon yields one element per part.
// Every downstream count (num_lots, Gini, orientation entropy) works off
// this same decomposition.
func Decompose(g geom.T) ([]*geom.Polygon, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		return []*geom.Polygon{t}, nil
	case *geom.MultiPolygon:
		polys := make([]*geom.Polygon, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			polys = append(polys, t.Polygon(i))
		}
		return polys, nil
	default:
		return nil, eris.Errorf("geometry: cannot decompose %T into polygons", g)
	}
}

// Area returns the absolute planar area of a polygon or multi-polygon in
// squared coordinate units.
func Area(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return math.Abs(t.Area())
	case *geom.MultiPolygon:
		return math.Abs(t.Area())
	case *geom.LinearRing:
		return math.Abs(t.Area())
	default:
		return 0
	}
}
