// Package viewport implements a stateful map frame: a page of fixed pixel
// size showing the map at a given scale around a center point.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

var ErrInvalidScale = errors.New("scale must be > 0")

const metersPerInch = 0.0254

// MapFrame is the viewport of a map page. Limit, when set, keeps the visible
// area inside the given extent.
type MapFrame struct {
	WidthPx, HeightPx int
	DPI               float64
	Limit             *geo.Extent

	scale  float64
	center geo.Point
	sr     geo.SpatialReference
}

// New creates a frame centered on center. dpi defaults to 96.
func New(widthPx, heightPx int, dpi, scale float64, center geo.Point, sr geo.SpatialReference) (*MapFrame, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %dx%d", widthPx, heightPx)
	}
	if dpi <= 0 {
		dpi = 96
	}
	if scale <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidScale, scale)
	}
	return &MapFrame{WidthPx: widthPx, HeightPx: heightPx, DPI: dpi, scale: scale, center: center, sr: sr}, nil
}

func (m *MapFrame) Scale() float64                         { return m.scale }
func (m *MapFrame) Center() geo.Point                      { return m.center }
func (m *MapFrame) SpatialReference() geo.SpatialReference { return m.sr }

// SetScale zooms around the current center.
func (m *MapFrame) SetScale(scale float64) error {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidScale, scale)
	}
	m.scale = scale
	m.center = m.clamp(m.center)
	return nil
}

// PanTo centers the frame on extent without changing the scale.
func (m *MapFrame) PanTo(extent geo.Extent) error {
	if !extent.Valid() {
		return fmt.Errorf("invalid extent %+v", extent)
	}
	m.center = m.clamp(extent.Center())
	return nil
}

// Extent returns the visible area.
func (m *MapFrame) Extent() (geo.Extent, error) {
	w, h := m.groundSize()
	return geo.ExtentAround(m.center, w, h, m.sr), nil
}

// groundSize returns the visible width and height in map units.
func (m *MapFrame) groundSize() (float64, float64) {
	unitsPerPixel := m.scale * metersPerInch / m.DPI / m.sr.MetersPerUnit()
	return float64(m.WidthPx) * unitsPerPixel, float64(m.HeightPx) * unitsPerPixel
}

// clamp moves c so the frame stays inside Limit. On an axis where the frame
// is larger than the limit it is centered on the limit.
func (m *MapFrame) clamp(c geo.Point) geo.Point {
	if m.Limit == nil {
		return c
	}
	w, h := m.groundSize()
	c.X = clampAxis(c.X, w, m.Limit.XMin, m.Limit.XMax)
	c.Y = clampAxis(c.Y, h, m.Limit.YMin, m.Limit.YMax)
	return c
}

func clampAxis(v, size, lo, hi float64) float64 {
	if size >= hi-lo {
		return (lo + hi) / 2
	}
	return math.Max(lo+size/2, math.Min(hi-size/2, v))
}
