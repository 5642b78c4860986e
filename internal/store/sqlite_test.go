package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/lukegbenson/lotmetrics/internal/features"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "features.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testTable() []features.FeatureRecord {
	boundary := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}, []int{10})
	nan := math.NaN()
	return []features.FeatureRecord{
		{
			Region:       "reno",
			Boundary:     boundary,
			BoundaryArea: 1_000_000,
			HasLots:      true,
			TotalLotArea: 400,
			NumLots:      2,
			PctLotArea:   0.0004,
			LotsPerSqKm:  0.002,
			AvgLotArea:   0.2,
			GiniCoef:     0.25,
		},
		{
			Region:       "ghost",
			Boundary:     boundary,
			BoundaryArea: 100,
			HasLots:      false,
			TotalLotArea: nan,
			PctLotArea:   nan,
			LotsPerSqKm:  nan,
			AvgLotArea:   nan,
			GiniCoef:     nan,
		},
	}
}

func TestSaveTable(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.SaveTable(ctx, testTable())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	n, err := s.CountFeatures(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSaveTableNullsNonFinite(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.SaveTable(ctx, testTable())
	require.NoError(t, err)

	var totalLotArea, numLots interface{}
	err = s.db.QueryRowContext(ctx,
		`SELECT total_lot_area, num_lots FROM features WHERE run_id = ? AND region = 'ghost'`,
		runID,
	).Scan(&totalLotArea, &numLots)
	require.NoError(t, err)

	assert.Nil(t, totalLotArea)
	assert.Nil(t, numLots)
}

func TestSaveTableSeparateRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.SaveTable(ctx, testTable())
	require.NoError(t, err)
	second, err := s.SaveTable(ctx, testTable())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	n, err := s.CountFeatures(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
