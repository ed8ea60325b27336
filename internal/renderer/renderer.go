// Package renderer draws trajectory frames: the basemap cropped and resampled
// to a frame extent, the path on top of it and, for debugging, a QR stamp
// carrying the frame index and extent.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

var (
	DefaultPathColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	background       = image.NewUniform(color.White)
)

const DefaultPathWidth = 3.0

// Frame holds everything shared by the frames of one export.
// The basemap extent and the path must be in the spatial reference of the
// extents passed to Render.
type Frame struct {
	Basemap       image.Image
	BasemapExtent geo.Extent
	Path          geo.Polyline
	PathColor     color.Color
	PathWidth     float64 // pixels
	Width, Height int
	Debug         bool
}

// Render draws frame index showing extent into a new image.
func (f *Frame) Render(extent geo.Extent, index int) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	if err := f.RenderInto(dst, extent, index); err != nil {
		return nil, err
	}
	return dst, nil
}

// RenderInto draws into dst, which must be Width x Height.
func (f *Frame) RenderInto(dst *image.RGBA, extent geo.Extent, index int) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("frame size %dx%d", f.Width, f.Height)
	}
	if dst.Bounds().Dx() != f.Width || dst.Bounds().Dy() != f.Height {
		return fmt.Errorf("buffer is %v, frame is %dx%d", dst.Bounds(), f.Width, f.Height)
	}
	if !extent.Valid() || extent.Width() <= 0 || extent.Height() <= 0 {
		return fmt.Errorf("frame %d: empty extent %v", index, extent)
	}

	draw.Draw(dst, dst.Bounds(), background, image.Point{}, draw.Src)

	if f.Basemap != nil {
		if err := f.drawBasemap(dst, extent); err != nil {
			return fmt.Errorf("frame %d: %w", index, err)
		}
	}

	if len(f.Path.Points) > 1 {
		f.strokePath(dst, extent)
	}

	if f.Debug {
		if err := stampDebug(dst, extent, index); err != nil {
			return fmt.Errorf("frame %d: debug stamp: %w", index, err)
		}
	}
	return nil
}

// toPixel maps a map coordinate into frame pixel space.
func (f *Frame) toPixel(extent geo.Extent, p geo.Point) (float64, float64) {
	x := (p.X - extent.XMin) / extent.Width() * float64(f.Width)
	y := (extent.YMax - p.Y) / extent.Height() * float64(f.Height)
	return x, y
}

func (f *Frame) drawBasemap(dst *image.RGBA, extent geo.Extent) error {
	be := f.BasemapExtent
	if !be.Valid() || be.Width() <= 0 || be.Height() <= 0 {
		return fmt.Errorf("empty basemap extent %v", be)
	}
	sb := f.Basemap.Bounds()
	if sb.Empty() {
		return fmt.Errorf("empty basemap image")
	}

	// map units per basemap pixel, then frame pixels per map unit
	ux := be.Width() / float64(sb.Dx())
	uy := be.Height() / float64(sb.Dy())
	kx := float64(f.Width) / extent.Width()
	ky := float64(f.Height) / extent.Height()

	sx := ux * kx
	sy := uy * ky
	tx := (be.XMin-extent.XMin)*kx - sx*float64(sb.Min.X)
	ty := (extent.YMax-be.YMax)*ky - sy*float64(sb.Min.Y)

	s2d := f64.Aff3{
		sx, 0, tx,
		0, sy, ty,
	}
	xdraw.ApproxBiLinear.Transform(dst, s2d, f.Basemap, sb, xdraw.Over, nil)
	return nil
}
