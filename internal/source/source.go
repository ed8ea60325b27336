// Package source loads the basemap a trajectory is drawn over: a PDF page
// rendered with MuPDF or a plain raster image, tied to the map extent it covers.
package source

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

var ErrPageRange = errors.New("page out of range")

// Source is a paged document that can be rasterized.
type Source interface {
	PageCount() int
	PageSize(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Basemap is a raster with the map extent it depicts.
type Basemap struct {
	Image  image.Image
	Extent geo.Extent
}

// Open picks a Source by file extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewFitzPDFSource(path)
	case ".png", ".jpg", ".jpeg":
		return NewImageSource(path)
	default:
		return nil, fmt.Errorf("unsupported basemap format %q", filepath.Ext(path))
	}
}

// LoadBasemap renders one page of path at dpi and georeferences it to extent.
func LoadBasemap(path string, page, dpi int, extent geo.Extent) (*Basemap, error) {
	if !extent.Valid() || extent.Width() == 0 || extent.Height() == 0 {
		return nil, fmt.Errorf("basemap %s: empty extent", path)
	}

	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if page < 0 || page >= src.PageCount() {
		return nil, fmt.Errorf("basemap %s: %w: page %d of %d", path, ErrPageRange, page, src.PageCount())
	}

	img, err := src.RenderPage(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("render basemap %s page %d: %w", path, page, err)
	}
	return &Basemap{Image: img, Extent: extent}, nil
}
