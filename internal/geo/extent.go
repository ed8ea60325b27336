package geo

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Extent is an axis-aligned bounding rectangle with an optional reference.
type Extent struct {
	XMin, YMin, XMax, YMax float64
	SpatialReference       SpatialReference
}

// PointExtent returns the degenerate extent of a single point.
func PointExtent(p Point, sr SpatialReference) Extent {
	return Extent{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y, SpatialReference: sr}
}

// ExtentAround returns the extent of the given size centered on c.
func ExtentAround(c Point, width, height float64, sr SpatialReference) Extent {
	return Extent{
		XMin:             c.X - width/2,
		YMin:             c.Y - height/2,
		XMax:             c.X + width/2,
		YMax:             c.Y + height/2,
		SpatialReference: sr,
	}
}

func (e Extent) Width() float64  { return e.XMax - e.XMin }
func (e Extent) Height() float64 { return e.YMax - e.YMin }

// Center returns the midpoint of the extent.
func (e Extent) Center() Point {
	return Point{X: (e.XMin + e.XMax) / 2, Y: (e.YMin + e.YMax) / 2}
}

// Valid reports whether the bounds are finite and ordered.
func (e Extent) Valid() bool {
	for _, v := range []float64{e.XMin, e.YMin, e.XMax, e.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.XMin <= e.XMax && e.YMin <= e.YMax
}

// Contains reports whether p lies inside or on the border of e.
func (e Extent) Contains(p Point) bool {
	return p.X >= e.XMin && p.X <= e.XMax && p.Y >= e.YMin && p.Y <= e.YMax
}

// Union returns the smallest extent covering both e and o.
// The reference of e is kept.
func (e Extent) Union(o Extent) Extent {
	return Extent{
		XMin:             math.Min(e.XMin, o.XMin),
		YMin:             math.Min(e.YMin, o.YMin),
		XMax:             math.Max(e.XMax, o.XMax),
		YMax:             math.Max(e.YMax, o.YMax),
		SpatialReference: e.SpatialReference,
	}
}

// SameBounds compares the four coordinates, ignoring the references.
func (e Extent) SameBounds(o Extent) bool {
	return e.XMin == o.XMin && e.YMin == o.YMin && e.XMax == o.XMax && e.YMax == o.YMax
}
