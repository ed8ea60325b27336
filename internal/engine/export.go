package engine

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/twhiteaker/arc-panimate/internal/geo"
	"github.com/twhiteaker/arc-panimate/internal/renderer"
	"github.com/twhiteaker/arc-panimate/internal/system"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// FrameName is the PNG file name of frame i.
func FrameName(prefix string, i int) string {
	return fmt.Sprintf("%s_%03d.png", prefix, i)
}

// exportFrames renders every extent to a PNG in the output dir. Frames are
// independent, so they are rendered by a bounded pool of workers; the first
// error stops the rest.
func (p *Project) exportFrames(ctx context.Context, frame *renderer.Frame, extents []geo.Extent) ([]string, error) {
	cfg := p.Config
	total := len(extents)
	if total == 0 {
		return nil, fmt.Errorf("нет кадров для экспорта")
	}

	workers := cfg.Output.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers(uint64(frame.Width) * uint64(frame.Height) * 4)
	}
	workers = min(workers, total)
	fmt.Printf("[*] Экспорт %d кадров, воркеров: %d\n", total, workers)

	pool := system.NewFramePool(frame.Width, frame.Height)
	files := make([]string, total)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, e := range extents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			img := pool.Get()
			defer pool.Put(img)

			if err := frame.RenderInto(img, e, i); err != nil {
				return err
			}

			path := filepath.Join(cfg.Output.Dir, FrameName(cfg.Output.Name, i))
			if err := writePNG(path, img); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			files[i] = path

			fmt.Printf("[>] Ready: %d/%d\n", done.Add(1), total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := pngEncoder.Encode(w, img); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
