package stats

import (
	"math"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lukegbenson/lotmetrics/internal/geometry"
)

// DefaultOrientationBins is the histogram resolution for orientation
// entropy: 36 bins of 2.5 degrees over [0, 90).
const DefaultOrientationBins = 36

// Histogram counts values into equal-width bins over [min, max). Values
// at or above max land in the last bin, matching a half-open final edge.
func Histogram(values []float64, bins int, min, max float64) []float64 {
	counts := make([]float64, bins)
	width := (max - min) / float64(bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts
}

// NormalizedEntropy returns the Shannon entropy of a count distribution
// divided by log(len(counts)), yielding a value in [0, 1] where 1 is the
// uniform distribution. Empty bins contribute zero (0*log 0 = 0).
func NormalizedEntropy(counts []float64) float64 {
	if len(counts) < 2 {
		return 0
	}

	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}

	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = c / total
	}
	return stat.Entropy(p) / math.Log(float64(len(counts)))
}

// OrientationEntropy returns the normalized Shannon entropy of the
// minimum-rectangle orientations of a region's constituent polygons.
// Regions with a single dominant grid orientation score near 0; regions
// whose lots point every which way score near 1. Fewer than two polygons
// score 0.
func OrientationEntropy(polys []*geom.Polygon, bins int) float64 {
	if len(polys) < 2 {
		return 0
	}
	if bins <= 0 {
		bins = DefaultOrientationBins
	}

	angles := make([]float64, len(polys))
	for i, p := range polys {
		angles[i] = geometry.Orientation(p)
	}

	return NormalizedEntropy(Histogram(angles, bins, 0, 90))
}
