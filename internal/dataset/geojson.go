// Package dataset loads the boundary and lot inputs and serializes the
// feature table. Inputs arrive as GeoJSON FeatureCollections (or a
// boundary shapefile) in lon/lat; loading flattens any third coordinate
// dimension and projects into the shared equal-area CRS so that all area
// math downstream happens in one planar system.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/lukegbenson/lotmetrics/internal/features"
	"github.com/lukegbenson/lotmetrics/internal/geometry"
	"github.com/lukegbenson/lotmetrics/internal/projection"
)

// RegionKey is the canonical region identifier column in the output table.
const RegionKey = "city"

// LoadBoundaries reads a boundary FeatureCollection keyed by regionField.
// A nil proj means the input is already planar; otherwise every geometry
// is projected before being returned.
func LoadBoundaries(path, regionField string, proj *projection.Albers) ([]features.BoundaryRecord, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	records := make([]features.BoundaryRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		region, err := regionOf(f, regionField)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: boundary feature %d", i)
		}

		g, err := prepare(f.Geometry, proj)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: boundary %s", region)
		}

		poly, err := boundaryPolygon(g)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: boundary %s", region)
		}

		records = append(records, features.BoundaryRecord{Region: region, Boundary: poly})
	}

	zap.L().Debug("boundaries loaded", zap.String("path", path), zap.Int("regions", len(records)))
	return records, nil
}

// LoadLots reads a lot FeatureCollection keyed by regionField. Each
// feature's geometry is decomposed into its constituent polygons once,
// here; num_lots, Gini, and orientation entropy all share that
// decomposition.
func LoadLots(path, regionField string, proj *projection.Albers) ([]features.LotRecord, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	records := make([]features.LotRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		region, err := regionOf(f, regionField)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: lot feature %d", i)
		}

		g, err := prepare(f.Geometry, proj)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: lots %s", region)
		}

		polys, err := geometry.Decompose(g)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: lots %s", region)
		}

		records = append(records, features.LotRecord{Region: region, Lots: polys})
	}

	zap.L().Debug("lots loaded", zap.String("path", path), zap.Int("regions", len(records)))
	return records, nil
}

// WriteFeatures serializes the feature table as a GeoJSON
// FeatureCollection: one feature per region, scalar fields as properties,
// the boundary polygon as the geometry. JSON has no NaN or infinity, so
// non-finite values serialize as null; the in-memory table keeps them.
func WriteFeatures(path string, table []features.FeatureRecord) error {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(table))}

	for _, rec := range table {
		props := map[string]interface{}{
			RegionKey:             rec.Region,
			"boundary_area":       floatProp(rec.BoundaryArea),
			"total_lot_area":      floatProp(rec.TotalLotArea),
			"pct_lot_area":        floatProp(rec.PctLotArea),
			"lots_per_sq_km":      floatProp(rec.LotsPerSqKm),
			"avg_lot_area":        floatProp(rec.AvgLotArea),
			"gini_coef":           floatProp(rec.GiniCoef),
			"orientation_entropy": floatProp(rec.OrientationEntropy),
		}
		if rec.HasLots {
			props["num_lots"] = rec.NumLots
		} else {
			props["num_lots"] = nil
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   rec.Boundary,
			Properties: props,
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "dataset: marshal feature table")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "dataset: create output dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", path)
	}

	zap.L().Info("feature table written", zap.String("path", path), zap.Int("regions", len(table)))
	return nil
}

// readCollection reads and parses one GeoJSON FeatureCollection. A missing
// file surfaces as a wrapped error; callers treat it as "features
// unavailable", never as an empty table.
func readCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}
	return &fc, nil
}

// prepare flattens a geometry to XY and projects it when proj is set.
func prepare(g geom.T, proj *projection.Albers) (geom.T, error) {
	if g == nil {
		return nil, eris.New("missing geometry")
	}

	flat, err := flattenXY(g)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return flat, nil
	}
	return proj.ProjectGeom(flat)
}

// flattenXY drops any third or fourth coordinate dimension, mirroring the
// XYZ-to-XY flattening the retrieval step applies to source payloads.
func flattenXY(g geom.T) (geom.T, error) {
	if g.Layout() == geom.XY {
		return g, nil
	}

	switch t := g.(type) {
	case *geom.Polygon:
		return flattenPolygon(t), nil
	case *geom.MultiPolygon:
		mp := geom.NewMultiPolygon(geom.XY)
		for i := 0; i < t.NumPolygons(); i++ {
			if err := mp.Push(flattenPolygon(t.Polygon(i))); err != nil {
				return nil, eris.Wrap(err, "flatten multipolygon")
			}
		}
		return mp, nil
	default:
		return nil, eris.Errorf("unsupported geometry %T", g)
	}
}

func flattenPolygon(p *geom.Polygon) *geom.Polygon {
	stride := p.Stride()
	flat := p.FlatCoords()

	out := make([]float64, 0, (len(flat)/stride)*2)
	for i := 0; i+1 < len(flat); i += stride {
		out = append(out, flat[i], flat[i+1])
	}
	ends := make([]int, 0, len(p.Ends()))
	for _, end := range p.Ends() {
		ends = append(ends, (end/stride)*2)
	}
	return geom.NewPolygonFlat(geom.XY, out, ends)
}

// regionOf extracts the region key property as a string.
func regionOf(f *geojson.Feature, field string) (string, error) {
	v, ok := f.Properties[field]
	if !ok {
		return "", eris.Errorf("missing %q property", field)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return fmt.Sprintf("%v", s), nil
	default:
		return "", eris.Errorf("property %q is %T, want string", field, v)
	}
}

// floatProp maps non-finite values to nil since JSON cannot carry them.
func floatProp(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// boundaryPolygon coerces a boundary geometry to a single polygon. A
// multi-part boundary keeps its largest part.
func boundaryPolygon(g geom.T) (*geom.Polygon, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		return t, nil
	case *geom.MultiPolygon:
		if t.NumPolygons() == 0 {
			return nil, eris.New("empty multipolygon boundary")
		}
		best := t.Polygon(0)
		for i := 1; i < t.NumPolygons(); i++ {
			if geometry.Area(t.Polygon(i)) > geometry.Area(best) {
				best = t.Polygon(i)
			}
		}
		return best, nil
	default:
		return nil, eris.Errorf("boundary is %T, want polygon", g)
	}
}
