package geometry

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Orientation returns the dominant edge angle of the polygon in degrees,
// reduced into [0, 90). The angle is taken from the first edge of the
// polygon's minimum rotated rectangle; the mod-90 reduction makes the value
// symmetric, so a rectangle and its 90-degree rotation report the same
// orientation (long side vs short side carries no meaning here).
//
// Precondition: the polygon is simple and non-degenerate.
func Orientation(p *geom.Polygon) float64 {
	rect := MinimumRotatedRectangle(p)
	if rect == nil {
		return 0
	}

	ring := rect.LinearRing(0).Coords()
	rad := math.Atan2(ring[1][1]-ring[0][1], ring[1][0]-ring[0][0])

	deg := math.Mod(rad*180/math.Pi, 90)
	if deg < 0 {
		deg += 90
	}
	// A tiny negative angle folds to exactly 90.0 in float64; wrap it back
	// so the result stays in [0, 90).
	if deg >= 90 {
		deg -= 90
	}
	return deg
}
