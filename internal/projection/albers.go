// Package projection implements the forward Albers equal-area conic
// projection used to bring lon/lat geometries into a planar CRS before any
// area math. Parameters match EPSG:5070 (NAD83 / Conus Albers), the
// projection every area-derived feature in this pipeline is defined in.
//
// Formulas follow Snyder, Map Projections: A Working Manual (USGS
// Professional Paper 1395), section 14, ellipsoidal case.
package projection

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// GRS80 ellipsoid.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257222101
)

// EPSG:5070 projection parameters (degrees).
const (
	standardParallel1 = 29.5
	standardParallel2 = 45.5
	latitudeOfOrigin  = 23.0
	centralMeridian   = -96.0
)

// Albers projects lon/lat coordinates (degrees, NAD83/WGS84) to planar
// meters. The zero value is not usable; construct with NewConus.
type Albers struct {
	e    float64 // eccentricity
	e2   float64 // eccentricity squared
	n    float64 // cone constant
	c    float64
	rho0 float64
	lam0 float64 // central meridian, radians
}

// NewConus returns the EPSG:5070 Conus Albers projection.
func NewConus() *Albers {
	e2 := flattening * (2 - flattening)
	a := &Albers{
		e:    math.Sqrt(e2),
		e2:   e2,
		lam0: rad(centralMeridian),
	}

	phi1 := rad(standardParallel1)
	phi2 := rad(standardParallel2)
	phi0 := rad(latitudeOfOrigin)

	m1 := a.m(phi1)
	m2 := a.m(phi2)
	q0 := a.q(phi0)
	q1 := a.q(phi1)
	q2 := a.q(phi2)

	a.n = (m1*m1 - m2*m2) / (q2 - q1)
	a.c = m1*m1 + a.n*q1
	a.rho0 = a.rho(q0)

	return a
}

// Project maps a single lon/lat pair (degrees) to planar x/y meters.
func (a *Albers) Project(lon, lat float64) (x, y float64) {
	theta := a.n * (rad(lon) - a.lam0)
	r := a.rho(a.q(rad(lat)))
	return r * math.Sin(theta), a.rho0 - r*math.Cos(theta)
}

// ProjectGeom returns a copy of a Polygon or MultiPolygon with every
// coordinate projected. The input is not modified.
func (a *Albers) ProjectGeom(g geom.T) (geom.T, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		return a.projectPolygon(t), nil
	case *geom.MultiPolygon:
		mp := geom.NewMultiPolygon(geom.XY)
		for i := 0; i < t.NumPolygons(); i++ {
			if err := mp.Push(a.projectPolygon(t.Polygon(i))); err != nil {
				return nil, eris.Wrap(err, "projection: rebuild multipolygon")
			}
		}
		return mp, nil
	default:
		return nil, eris.Errorf("projection: unsupported geometry %T", g)
	}
}

func (a *Albers) projectPolygon(p *geom.Polygon) *geom.Polygon {
	flat := p.FlatCoords()
	stride := p.Stride()

	projected := make([]float64, 0, (len(flat)/stride)*2)
	ends := make([]int, 0, len(p.Ends()))
	for i := 0; i+1 < len(flat); i += stride {
		x, y := a.Project(flat[i], flat[i+1])
		projected = append(projected, x, y)
	}
	for _, end := range p.Ends() {
		ends = append(ends, (end/stride)*2)
	}
	return geom.NewPolygonFlat(geom.XY, projected, ends)
}

// m is Snyder's equation 14-15: cos(phi) / sqrt(1 - e^2 sin^2(phi)).
func (a *Albers) m(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-a.e2*s*s)
}

// q is Snyder's equation 3-12, the authalic latitude auxiliary.
func (a *Albers) q(phi float64) float64 {
	s := math.Sin(phi)
	return (1 - a.e2) * (s/(1-a.e2*s*s) - (1/(2*a.e))*math.Log((1-a.e*s)/(1+a.e*s)))
}

// rho is Snyder's equation 14-12.
func (a *Albers) rho(q float64) float64 {
	return semiMajorAxis * math.Sqrt(a.c-a.n*q) / a.n
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
