package renderer

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/skip2/go-qrcode"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

const minStampSize = 48

// DebugPayload is the text encoded in a frame's debug stamp.
func DebugPayload(extent geo.Extent, index int) string {
	return fmt.Sprintf("frame=%d xmin=%.6f ymin=%.6f xmax=%.6f ymax=%.6f wkid=%d",
		index, extent.XMin, extent.YMin, extent.XMax, extent.YMax, extent.SpatialReference.WKID)
}

// stampDebug puts a QR code in the bottom-right corner. Frames too small to
// hold a readable code are left alone.
func stampDebug(dst *image.RGBA, extent geo.Extent, index int) error {
	b := dst.Bounds()
	size := min(b.Dx(), b.Dy()) / 4
	if size < minStampSize {
		return nil
	}

	q, err := qrcode.New(DebugPayload(extent, index), qrcode.Low)
	if err != nil {
		return err
	}
	img := q.Image(size)

	r := image.Rect(b.Max.X-size, b.Max.Y-size, b.Max.X, b.Max.Y)
	draw.Draw(dst, r, img, img.Bounds().Min, draw.Src)
	return nil
}
