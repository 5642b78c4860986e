package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

// squareAt builds an axis-aligned square of the given area anchored at (x, y).
func squareAt(x, y, area float64) *geom.Polygon {
	side := math.Sqrt(area)
	return geom.NewPolygonFlat(geom.XY, []float64{
		x, y, x + side, y, x + side, y + side, x, y + side, x, y,
	}, []int{10})
}

func TestComputeRatiosWorkedScenario(t *testing.T) {
	// Boundary of 1,000,000 m² holding two lots of 100 and 300 m².
	r := ComputeRatios([]float64{100, 300}, 1_000_000)

	assert.InDelta(t, 400.0, r.TotalLotArea, 1e-9)
	assert.Equal(t, 2, r.NumLots)
	assert.InDelta(t, 0.0004, r.PctLotArea, 1e-12)
	assert.InDelta(t, 0.002, r.LotsPerSqKm, 1e-12)
	assert.InDelta(t, 0.2, r.AvgLotArea, 1e-12)
}

func TestComputeRatiosZeroBoundaryArea(t *testing.T) {
	// Division by zero stays visible: the ratios are non-finite, not 0.
	r := ComputeRatios([]float64{50}, 0)

	assert.True(t, math.IsInf(r.PctLotArea, 1))
	assert.True(t, math.IsInf(r.LotsPerSqKm, 1))
	assert.InDelta(t, 0.05, r.AvgLotArea, 1e-12)
}

func TestComputeWorkedScenario(t *testing.T) {
	boundary := BoundaryRecord{
		Region:   "denver",
		Boundary: squareAt(0, 0, 1_000_000),
	}
	lots := LotRecord{
		Region: "denver",
		Lots:   []*geom.Polygon{squareAt(10, 10, 100), squareAt(100, 100, 300)},
	}

	rec := Compute(boundary, lots, 0)

	assert.Equal(t, "denver", rec.Region)
	assert.True(t, rec.HasLots)
	assert.InDelta(t, 1_000_000.0, rec.BoundaryArea, 1e-6)
	assert.InDelta(t, 400.0, rec.TotalLotArea, 1e-6)
	assert.Equal(t, 2, rec.NumLots)
	assert.InDelta(t, 0.0004, rec.PctLotArea, 1e-9)
	assert.InDelta(t, 0.002, rec.LotsPerSqKm, 1e-9)
	assert.InDelta(t, 0.2, rec.AvgLotArea, 1e-9)
	assert.InDelta(t, 0.25, rec.GiniCoef, 1e-9)
	// Two axis-aligned squares share one orientation bin.
	assert.Zero(t, rec.OrientationEntropy)
}

func TestComputeSingleLot(t *testing.T) {
	boundary := BoundaryRecord{Region: "one", Boundary: squareAt(0, 0, 10_000)}
	lots := LotRecord{Region: "one", Lots: []*geom.Polygon{squareAt(1, 1, 200)}}

	rec := Compute(boundary, lots, 0)

	assert.Equal(t, 1, rec.NumLots)
	assert.Zero(t, rec.GiniCoef)
	assert.Zero(t, rec.OrientationEntropy)
}
