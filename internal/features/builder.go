package features

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lukegbenson/lotmetrics/internal/geometry"
)

// Builder assembles the feature table from the boundary and lot datasets.
type Builder struct {
	// Bins is the orientation histogram resolution; <= 0 means the default.
	Bins int
	// Workers bounds per-region parallelism; <= 0 means serial.
	Workers int
}

// Build left-joins lot records onto boundary records by region key and
// computes every feature per region. Output order follows the boundary
// dataset, so identical inputs always produce an identical table. Regions
// without lot data keep their row with NaN lot-derived fields.
//
// Both inputs must already be in the shared equal-area planar CRS.
func (b *Builder) Build(ctx context.Context, boundaries []BoundaryRecord, lots []LotRecord) ([]FeatureRecord, error) {
	log := zap.L().With(zap.String("component", "features.builder"))

	lotsByRegion := make(map[string]LotRecord, len(lots))
	for _, l := range lots {
		lotsByRegion[l.Region] = l
	}

	out := make([]FeatureRecord, len(boundaries))

	g, gCtx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	} else {
		g.SetLimit(1)
	}

	for i, boundary := range boundaries {
		i, boundary := i, boundary
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			lot, ok := lotsByRegion[boundary.Region]
			if !ok {
				out[i] = missingLotRecord(boundary)
				return nil
			}
			out[i] = Compute(boundary, lot, b.Bins)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var unmatched int
	for _, rec := range out {
		if !rec.HasLots {
			unmatched++
		}
	}
	log.Info("feature table built",
		zap.Int("regions", len(out)),
		zap.Int("without_lot_data", unmatched),
	)

	return out, nil
}

// missingLotRecord keeps a boundary-only region in the table with NaN
// lot-derived fields instead of dropping the row.
func missingLotRecord(boundary BoundaryRecord) FeatureRecord {
	nan := math.NaN()
	return FeatureRecord{
		Region:             boundary.Region,
		Boundary:           boundary.Boundary,
		BoundaryArea:       geometry.Area(boundary.Boundary),
		HasLots:            false,
		TotalLotArea:       nan,
		PctLotArea:         nan,
		LotsPerSqKm:        nan,
		AvgLotArea:         nan,
		GiniCoef:           nan,
		OrientationEntropy: nan,
	}
}
