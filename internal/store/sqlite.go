// Package store persists built feature tables to SQLite so downstream
// modeling runs can query past tables without re-reading GeoJSON.
package store

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lukegbenson/lotmetrics/internal/features"
)

// Store wraps a SQLite database holding feature-table runs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at the given path and
// configures WAL mode.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	regions    INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS features (
	run_id              TEXT NOT NULL REFERENCES runs(id),
	region              TEXT NOT NULL,
	boundary_area       REAL NOT NULL,
	total_lot_area      REAL,
	num_lots            INTEGER,
	pct_lot_area        REAL,
	lots_per_sq_km      REAL,
	avg_lot_area        REAL,
	gini_coef           REAL,
	orientation_entropy REAL,
	PRIMARY KEY (run_id, region)
);

CREATE INDEX IF NOT EXISTS idx_features_region ON features(region);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable persists one built feature table as a new run and returns the
// run id. Non-finite values are stored as NULL; SQLite has no NaN.
func (s *Store) SaveTable(ctx context.Context, table []features.FeatureRecord) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "store: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, regions, created_at) VALUES (?, ?, ?)`,
		runID, len(table), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "store: insert run")
	}

	for _, rec := range table {
		var numLots interface{}
		if rec.HasLots {
			numLots = rec.NumLots
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO features (
				run_id, region, boundary_area, total_lot_area, num_lots,
				pct_lot_area, lots_per_sq_km, avg_lot_area, gini_coef, orientation_entropy
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.Region, rec.BoundaryArea,
			nullableFloat(rec.TotalLotArea), numLots,
			nullableFloat(rec.PctLotArea), nullableFloat(rec.LotsPerSqKm),
			nullableFloat(rec.AvgLotArea), nullableFloat(rec.GiniCoef),
			nullableFloat(rec.OrientationEntropy),
		)
		if err != nil {
			return "", eris.Wrapf(err, "store: insert features for %s", rec.Region)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "store: commit")
	}
	return runID, nil
}

// CountFeatures returns the number of feature rows stored for a run.
func (s *Store) CountFeatures(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM features WHERE run_id = ?`, runID,
	).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "store: count features for %s", runID)
	}
	return n, nil
}

// nullableFloat maps non-finite values to NULL.
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
