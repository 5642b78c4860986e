// Package geometry provides the polygon primitives behind the lot shape
// features: convex hulls, minimum rotated rectangles, orientations, and
// multi-polygon decomposition.
package geometry

import (
	"sort"

	"github.com/twpayne/go-geom"
)

// ConvexHull returns the convex hull of the given coordinates as a
// counter-clockwise ring without a closing point. Duplicate points are
// collapsed; fewer than 3 distinct points yield the points themselves.
func ConvexHull(coords []geom.Coord) []geom.Coord {
	pts := make([]geom.Coord, 0, len(coords))
	seen := make(map[[2]float64]bool, len(coords))
	for _, c := range coords {
		key := [2]float64{c[0], c[1]}
		if seen[key] {
			continue
		}
		seen[key] = true
		pts = append(pts, geom.Coord{c[0], c[1]})
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	if len(pts) < 3 {
		return pts
	}

	// Monotone chain: lower hull then upper hull.
	lower := make([]geom.Coord, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]geom.Coord, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Last point of each chain duplicates the first point of the other.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

// cross returns the z-component of (b-a) x (c-a). Positive means a left turn.
func cross(a, b, c geom.Coord) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
