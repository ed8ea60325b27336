package geo

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnsupportedProjection = errors.New("unsupported projection")

const (
	earthRadius = 6378137.0
	maxLatitude = 85.0511287798066
)

// Projector is the default geometry provider. It projects between WGS84 and
// Web Mercator and samples positions along polylines by planar distance.
type Projector struct{}

// Project returns a copy of line expressed in target.
func (Projector) Project(line Polyline, target SpatialReference) (Polyline, error) {
	if len(line.Points) == 0 {
		return Polyline{}, ErrEmptyGeometry
	}

	var fn func(Point) Point
	from, to := line.SpatialReference.Canonical(), target.Canonical()
	switch {
	case from == to:
		fn = func(p Point) Point { return p }
	case from == WKIDWGS84 && to == WKIDWebMercator:
		fn = ToWebMercator
	case from == WKIDWebMercator && to == WKIDWGS84:
		fn = FromWebMercator
	default:
		return Polyline{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedProjection, line.SpatialReference, target)
	}

	out := Polyline{Points: make([]Point, len(line.Points)), SpatialReference: target}
	for i, p := range line.Points {
		out.Points[i] = fn(p)
	}
	return out, nil
}

// PositionAlong returns the extent of the point found at fraction along line.
func (Projector) PositionAlong(line Polyline, fraction float64) (Extent, error) {
	p, err := line.PointAlong(fraction)
	if err != nil {
		return Extent{}, err
	}
	return PointExtent(p, line.SpatialReference), nil
}

// ToWebMercator converts a lon/lat point in degrees to spherical mercator meters.
func ToWebMercator(p Point) Point {
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, p.Y))
	return Point{
		X: earthRadius * p.X * math.Pi / 180,
		Y: earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)),
	}
}

// FromWebMercator converts spherical mercator meters to lon/lat degrees.
func FromWebMercator(p Point) Point {
	return Point{
		X: p.X / earthRadius * 180 / math.Pi,
		Y: (2*math.Atan(math.Exp(p.Y/earthRadius)) - math.Pi/2) * 180 / math.Pi,
	}
}
