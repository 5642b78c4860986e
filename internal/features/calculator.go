package features

import (
	"gonum.org/v1/gonum/stat"

	"github.com/lukegbenson/lotmetrics/internal/geometry"
	"github.com/lukegbenson/lotmetrics/internal/stats"
)

// Ratios holds the basic geographic features derived from one joined
// boundary/lot record.
type Ratios struct {
	TotalLotArea float64
	NumLots      int
	PctLotArea   float64
	LotsPerSqKm  float64
	AvgLotArea   float64
}

// ComputeRatios derives the area and density features for one region.
// areas are the constituent lot areas in m²; boundaryArea is in m².
//
// A zero boundary area yields non-finite ratios; they are returned as-is
// so malformed boundary data stays visible downstream.
func ComputeRatios(areas []float64, boundaryArea float64) Ratios {
	var total float64
	for _, a := range areas {
		total += a
	}

	return Ratios{
		TotalLotArea: total,
		NumLots:      len(areas),
		PctLotArea:   total / boundaryArea,
		LotsPerSqKm:  1000 * float64(len(areas)) / boundaryArea,
		AvgLotArea:   stat.Mean(areas, nil) / 1000,
	}
}

// Compute fills in every lot-derived feature for one region. bins is the
// orientation histogram resolution (stats.DefaultOrientationBins when <= 0).
func Compute(boundary BoundaryRecord, lots LotRecord, bins int) FeatureRecord {
	areas := make([]float64, len(lots.Lots))
	for i, p := range lots.Lots {
		areas[i] = geometry.Area(p)
	}

	boundaryArea := geometry.Area(boundary.Boundary)
	r := ComputeRatios(areas, boundaryArea)

	return FeatureRecord{
		Region:             boundary.Region,
		Boundary:           boundary.Boundary,
		BoundaryArea:       boundaryArea,
		HasLots:            true,
		TotalLotArea:       r.TotalLotArea,
		NumLots:            r.NumLots,
		PctLotArea:         r.PctLotArea,
		LotsPerSqKm:        r.LotsPerSqKm,
		AvgLotArea:         r.AvgLotArea,
		GiniCoef:           stats.Gini(areas),
		OrientationEntropy: stats.OrientationEntropy(lots.Lots, bins),
	}
}
