// Package features builds the per-region feature table that the land-use
// model consumes: area and density ratios plus two distributional indices
// (Gini coefficient of lot sizes, Shannon entropy of lot orientations).
package features

import (
	"github.com/twpayne/go-geom"
)

// BoundaryRecord is one region's central-city boundary, in the shared
// equal-area planar CRS.
type BoundaryRecord struct {
	Region   string
	Boundary *geom.Polygon
}

// LotRecord is one region's parking-lot geometry, decomposed into its
// constituent polygons at load time. Lots is never reassembled: every
// count and distribution downstream works off this same slice.
type LotRecord struct {
	Region string
	Lots   []*geom.Polygon
}

// FeatureRecord is one row of the output feature table. Lot-derived fields
// hold NaN when the region has no matching lot data (HasLots false); a
// zero boundary area propagates as non-finite ratios rather than being
// masked.
type FeatureRecord struct {
	Region       string
	Boundary     *geom.Polygon
	BoundaryArea float64

	HasLots            bool
	TotalLotArea       float64
	NumLots            int
	PctLotArea         float64
	LotsPerSqKm        float64
	AvgLotArea         float64
	GiniCoef           float64
	OrientationEntropy float64
}
