package dataset

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/lukegbenson/lotmetrics/internal/features"
	"github.com/lukegbenson/lotmetrics/internal/projection"
)

// LoadBoundariesShapefile reads boundary polygons from a shapefile,
// keyed by the named attribute field. Records without a key or without a
// usable polygon are skipped. Coordinates are assumed lon/lat unless proj
// is nil.
func LoadBoundariesShapefile(path, regionField string, proj *projection.Albers) ([]features.BoundaryRecord, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := -1
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), regionField) {
			fieldIdx = i
			break
		}
	}
	if fieldIdx < 0 {
		return nil, eris.Errorf("dataset: field %q not found in %s", regionField, path)
	}

	var records []features.BoundaryRecord
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		region := strings.TrimSpace(strings.TrimRight(reader.Attribute(fieldIdx), "\x00"))
		if region == "" {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		g := shpPolygonToGeom(poly)
		if g == nil {
			skipped++
			continue
		}

		prepared, err := prepare(g, proj)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: boundary %s", region)
		}
		boundary, err := boundaryPolygon(prepared)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: boundary %s", region)
		}

		records = append(records, features.BoundaryRecord{Region: region, Boundary: boundary})
	}

	if skipped > 0 {
		zap.L().Debug("skipped shapefile records", zap.String("path", path), zap.Int("skipped", skipped))
	}
	return records, nil
}

// shpPolygonToGeom converts a shapefile Polygon to a geom.MultiPolygon.
// Shapefile winding is exterior-clockwise, hole-counterclockwise: each
// clockwise part starts a new polygon and each counterclockwise part is
// attached to the preceding exterior as an interior ring, so holes reduce
// a boundary's area instead of counting as polygons of their own. Returns
// nil when no part survives.
func shpPolygonToGeom(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	var polys []*geom.Polygon

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		// A closed ring needs at least 4 points.
		if len(flat) < 8 {
			zap.L().Debug("skipping degenerate polygon ring", zap.Int32("part", i))
			continue
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)

		if xy.IsRingCounterClockwise(geom.XY, flat) && len(polys) > 0 {
			outer := polys[len(polys)-1]
			if err := outer.Push(ring); err != nil {
				zap.L().Debug("skipping malformed interior ring", zap.Int32("part", i), zap.Error(err))
			}
			continue
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		polys = append(polys, poly)
	}

	if len(polys) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, poly := range polys {
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("skipping malformed polygon part", zap.Error(err))
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
