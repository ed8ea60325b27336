package renderer

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

const joinSides = 8

type pixelPoint struct{ x, y float64 }

// strokePath fills one quad per segment and a polygonal cap per vertex.
// All shapes share one winding so overlaps never cancel in the rasterizer.
func (f *Frame) strokePath(dst *image.RGBA, extent geo.Extent) {
	width := f.PathWidth
	if width <= 0 {
		width = DefaultPathWidth
	}
	col := f.PathColor
	if col == nil {
		col = DefaultPathColor
	}
	half := width / 2

	pts := make([]pixelPoint, len(f.Path.Points))
	for i, p := range f.Path.Points {
		x, y := f.toPixel(extent, p)
		pts[i] = pixelPoint{x, y}
	}

	// keep everything close to the canvas
	lo := pixelPoint{-width, -width}
	hi := pixelPoint{float64(f.Width) + width, float64(f.Height) + width}

	z := vector.NewRasterizer(f.Width, f.Height)
	z.DrawOp = draw.Over
	drawn := false

	for i := 1; i < len(pts); i++ {
		a, b, ok := clipSegment(pts[i-1], pts[i], lo, hi)
		if !ok {
			continue
		}
		dx, dy := b.x-a.x, b.y-a.y
		length := math.Hypot(dx, dy)
		if length > 0 {
			nx, ny := -dy/length*half, dx/length*half
			z.MoveTo(float32(a.x+nx), float32(a.y+ny))
			z.LineTo(float32(b.x+nx), float32(b.y+ny))
			z.LineTo(float32(b.x-nx), float32(b.y-ny))
			z.LineTo(float32(a.x-nx), float32(a.y-ny))
			z.ClosePath()
		}
		addJoin(z, a, half)
		addJoin(z, b, half)
		drawn = true
	}

	if drawn {
		z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
	}
}

func addJoin(z *vector.Rasterizer, c pixelPoint, r float64) {
	for k := 0; k < joinSides; k++ {
		theta := -2 * math.Pi * float64(k) / joinSides
		x := float32(c.x + r*math.Cos(theta))
		y := float32(c.y + r*math.Sin(theta))
		if k == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// clipSegment clips a-b to the box lo-hi (Liang-Barsky).
func clipSegment(a, b, lo, hi pixelPoint) (pixelPoint, pixelPoint, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.x-a.x, b.y-a.y

	edges := [4][2]float64{
		{-dx, a.x - lo.x},
		{dx, hi.x - a.x},
		{-dy, a.y - lo.y},
		{dy, hi.y - a.y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	return pixelPoint{a.x + t0*dx, a.y + t0*dy}, pixelPoint{a.x + t1*dx, a.y + t1*dy}, true
}
