package geo

import (
	"errors"
	"fmt"
	"math"
)

var ErrEmptyGeometry = errors.New("geometry has no points")

// Polyline is an ordered list of vertices describing a path.
type Polyline struct {
	Points           []Point
	SpatialReference SpatialReference
}

// Length returns the planar length of the polyline.
func (l Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(l.Points); i++ {
		total += distance(l.Points[i-1], l.Points[i])
	}
	return total
}

// Extent returns the bounding rectangle of all vertices.
func (l Polyline) Extent() (Extent, error) {
	if len(l.Points) == 0 {
		return Extent{}, ErrEmptyGeometry
	}
	ext := PointExtent(l.Points[0], l.SpatialReference)
	for _, p := range l.Points[1:] {
		ext = ext.Union(PointExtent(p, l.SpatialReference))
	}
	return ext, nil
}

// PointAlong returns the point at the given fraction of the total length.
// 0 is the first vertex and 1 the last one.
func (l Polyline) PointAlong(fraction float64) (Point, error) {
	if len(l.Points) == 0 {
		return Point{}, ErrEmptyGeometry
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return Point{}, fmt.Errorf("fraction %v outside [0, 1]", fraction)
	}

	total := l.Length()
	if total == 0 || fraction == 0 {
		return l.Points[0], nil
	}
	if fraction == 1 {
		return l.Points[len(l.Points)-1], nil
	}

	target := fraction * total
	walked := 0.0
	for i := 1; i < len(l.Points); i++ {
		p0, p1 := l.Points[i-1], l.Points[i]
		seg := distance(p0, p1)
		if seg > 0 && walked+seg >= target {
			t := (target - walked) / seg
			return Point{X: p0.X + (p1.X-p0.X)*t, Y: p0.Y + (p1.Y-p0.Y)*t}, nil
		}
		walked += seg
	}

	// Rounding left target past the last segment
	return l.Points[len(l.Points)-1], nil
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
