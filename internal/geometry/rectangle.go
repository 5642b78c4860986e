package geometry

import (
	"math"

	"github.com/twpayne/go-geom"
)

// MinimumRotatedRectangle returns the smallest-area rectangle, at any
// rotation, that encloses the polygon's exterior ring. The result is a
// closed 5-point ring whose first edge lies along the chosen support edge
// of the convex hull.
//
// Degenerate polygons (collinear vertices, zero area) have no well-defined
// minimum rectangle; callers must filter those out first.
func MinimumRotatedRectangle(p *geom.Polygon) *geom.Polygon {
	hull := ConvexHull(p.LinearRing(0).Coords())
	if len(hull) < 2 {
		return nil
	}

	best := math.Inf(1)
	var bestCorners [4]geom.Coord

	// Rotating calipers: the minimum-area rectangle has one side collinear
	// with a hull edge, so trying every edge direction is exhaustive.
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx := b[0] - a[0]
		dy := b[1] - a[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, pt := range hull {
			u := pt[0]*ux + pt[1]*uy
			v := -pt[0]*uy + pt[1]*ux
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < best {
			best = area
			bestCorners = [4]geom.Coord{
				unproject(minU, minV, ux, uy),
				unproject(maxU, minV, ux, uy),
				unproject(maxU, maxV, ux, uy),
				unproject(minU, maxV, ux, uy),
			}
		}
	}

	if math.IsInf(best, 1) {
		return nil
	}

	flat := make([]float64, 0, 10)
	for _, c := range bestCorners {
		flat = append(flat, c[0], c[1])
	}
	flat = append(flat, bestCorners[0][0], bestCorners[0][1])
	return geom.NewPolygonFlat(geom.XY, flat, []int{10})
}

// unproject maps rectangle-frame coordinates (u along the edge, v
// perpendicular) back to the input frame.
func unproject(u, v, ux, uy float64) geom.Coord {
	return geom.Coord{u*ux - v*uy, u*uy + v*ux}
}
