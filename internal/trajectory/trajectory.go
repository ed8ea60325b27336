// Package trajectory turns a path and a viewport into the ordered list of
// extents that pan and zoom smoothly along the path.
package trajectory

import (
	"errors"
	"fmt"
	"log"

	"github.com/twhiteaker/arc-panimate/internal/geo"
	"github.com/twhiteaker/arc-panimate/internal/profile"
)

var (
	// ErrInvalidInput is shared with package profile.
	ErrInvalidInput = profile.ErrInvalidInput
	ErrCollaborator = errors.New("collaborator failure")
)

// GeometryProvider projects paths and samples them.
type GeometryProvider interface {
	Project(line geo.Polyline, target geo.SpatialReference) (geo.Polyline, error)
	PositionAlong(line geo.Polyline, fraction float64) (geo.Extent, error)
}

// Viewport is a stateful map frame. SetScale and PanTo mutate it, Extent
// reads back the visible area after any adjustment the viewport makes.
type Viewport interface {
	Scale() float64
	SetScale(scale float64) error
	PanTo(extent geo.Extent) error
	Extent() (geo.Extent, error)
	SpatialReference() geo.SpatialReference
}

// Frame is one step of the animation.
type Frame struct {
	Index    int
	Position float64 // fraction of the path traveled
	Scale    float64
	Extent   geo.Extent
}

// Builder computes trajectories. Logger receives warnings, log.Default()
// when nil.
type Builder struct {
	Geometry GeometryProvider
	Logger   *log.Logger
}

// NewBuilder creates a Builder using the default planar geometry provider.
func NewBuilder() *Builder {
	return &Builder{Geometry: geo.Projector{}}
}

// Build pans and zooms vp along path and returns the extent reached at
// each of the 1 + CruiseSteps + 2*AccelerateSteps frames.
//
// The viewport is left at the last frame. On error no frames are returned.
func (b *Builder) Build(vp Viewport, path geo.Polyline, opts Options) ([]Frame, error) {
	if b.Geometry == nil {
		return nil, fmt.Errorf("%w: no geometry provider", ErrInvalidInput)
	}

	start := vp.Scale()
	if start <= 0 {
		return nil, fmt.Errorf("%w: viewport scale must be > 0, got %v", ErrInvalidInput, start)
	}
	if v, ok := opts.MaxScale.Get(); ok && v <= 0 {
		return nil, fmt.Errorf("%w: max scale must be > 0, got %v", ErrInvalidInput, v)
	}
	if v, ok := opts.TargetScale.Get(); ok && v <= 0 {
		return nil, fmt.Errorf("%w: target scale must be > 0, got %v", ErrInvalidInput, v)
	}
	sc := opts.ResolveScales(start)

	positions, err := profile.Positions(opts.AccelerateSteps, opts.CruiseSteps)
	if err != nil {
		return nil, err
	}
	scales, err := profile.Scales(opts.AccelerateSteps, opts.CruiseSteps, sc.Start, sc.Max, sc.Target)
	if err != nil {
		return nil, err
	}

	line, err := b.project(path, vp.SpatialReference())
	if err != nil {
		return nil, fmt.Errorf("%w: project path: %v", ErrCollaborator, err)
	}

	frames := make([]Frame, 0, len(positions))
	for i, pos := range positions {
		target, err := b.Geometry.PositionAlong(line, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: position %.4f along path: %v", ErrCollaborator, i, pos, err)
		}
		if err := vp.SetScale(scales[i]); err != nil {
			return nil, fmt.Errorf("%w: frame %d: set scale %v: %v", ErrCollaborator, i, scales[i], err)
		}
		if err := vp.PanTo(target); err != nil {
			return nil, fmt.Errorf("%w: frame %d: pan: %v", ErrCollaborator, i, err)
		}
		ext, err := vp.Extent()
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: read extent: %v", ErrCollaborator, i, err)
		}
		frames = append(frames, Frame{Index: i, Position: pos, Scale: scales[i], Extent: ext})
	}
	return frames, nil
}

// project brings path into the viewport reference. Unknown references
// are not fatal: the path is used as is.
func (b *Builder) project(path geo.Polyline, target geo.SpatialReference) (geo.Polyline, error) {
	const warning = "[!] Warning: %s spatial reference is unknown. Cannot project path geometry to match map."
	switch {
	case target.Unknown():
		b.logger().Printf(warning, "Viewport")
		return path, nil
	case path.SpatialReference.Unknown():
		b.logger().Printf(warning, "Path geometry")
		return path, nil
	}
	return b.Geometry.Project(path, target)
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

// Extents returns the extents of frames in order.
func Extents(frames []Frame) []geo.Extent {
	out := make([]geo.Extent, len(frames))
	for i, f := range frames {
		out[i] = f.Extent
	}
	return out
}
