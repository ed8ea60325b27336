package trajectory

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

// recordingViewport keeps the last scale and pan target and logs every call.
type recordingViewport struct {
	scale   float64
	center  geo.Point
	sr      geo.SpatialReference
	calls   []string
	failPan int // frame index whose pan fails, -1 for none
	pans    int
}

func newRecordingViewport(scale float64, sr geo.SpatialReference) *recordingViewport {
	return &recordingViewport{scale: scale, sr: sr, failPan: -1}
}

func (v *recordingViewport) Scale() float64 { return v.scale }

func (v *recordingViewport) SetScale(s float64) error {
	v.calls = append(v.calls, fmt.Sprintf("scale %g", s))
	v.scale = s
	return nil
}

func (v *recordingViewport) PanTo(e geo.Extent) error {
	defer func() { v.pans++ }()
	if v.pans == v.failPan {
		return errors.New("pan refused")
	}
	v.calls = append(v.calls, fmt.Sprintf("pan %g,%g", e.Center().X, e.Center().Y))
	v.center = e.Center()
	return nil
}

func (v *recordingViewport) Extent() (geo.Extent, error) {
	v.calls = append(v.calls, "extent")
	// One map unit per unit of scale
	return geo.ExtentAround(v.center, v.scale, v.scale, v.sr), nil
}

func (v *recordingViewport) SpatialReference() geo.SpatialReference { return v.sr }

// countingGeometry wraps the default provider and counts projections.
type countingGeometry struct {
	geo.Projector
	projected int
}

func (g *countingGeometry) Project(line geo.Polyline, sr geo.SpatialReference) (geo.Polyline, error) {
	g.projected++
	return g.Projector.Project(line, sr)
}

func mercatorLine() geo.Polyline {
	return geo.Polyline{
		Points:           []geo.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		SpatialReference: geo.NewSpatialReference(geo.WKIDWebMercator),
	}
}

func quietBuilder(g GeometryProvider) (*Builder, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Builder{Geometry: g, Logger: log.New(&buf, "", 0)}, &buf
}

func TestBuildFrames(t *testing.T) {
	vp := newRecordingViewport(1000, geo.NewSpatialReference(geo.WKIDWebMercator))
	b, _ := quietBuilder(&countingGeometry{})

	frames, err := b.Build(vp, mercatorLine(), Options{
		AccelerateSteps: 2,
		CruiseSteps:     2,
		MaxScale:        Some(3000),
		TargetScale:     Some(2000),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(frames) != 7 {
		t.Fatalf("expected 7 frames, got %d", len(frames))
	}

	wantX := []float64{0, 6.25, 25, 50, 75, 93.75, 100}
	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if math.Abs(f.Extent.Center().X-wantX[i]) > 1e-9 {
			t.Errorf("frame %d centered at %v, want x=%v", i, f.Extent.Center(), wantX[i])
		}
		if f.Extent.Width() != f.Scale {
			t.Errorf("frame %d extent width %v does not follow scale %v", i, f.Extent.Width(), f.Scale)
		}
	}
	if frames[0].Scale != 1000 || frames[3].Scale != 3000 || frames[6].Scale != 2000 {
		t.Errorf("scales = %v, %v, %v", frames[0].Scale, frames[3].Scale, frames[6].Scale)
	}
	if vp.scale != 2000 {
		t.Errorf("viewport left at scale %v, want 2000", vp.scale)
	}
}

func TestBuildCallOrder(t *testing.T) {
	vp := newRecordingViewport(500, geo.NewSpatialReference(geo.WKIDWebMercator))
	b, _ := quietBuilder(&countingGeometry{})

	if _, err := b.Build(vp, mercatorLine(), Options{CruiseSteps: 1}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"scale 500", "pan 0,0", "extent",
		"scale 500", "pan 100,0", "extent",
	}
	if strings.Join(vp.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %v, want %v", vp.calls, want)
	}
}

func TestBuildDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Scales
	}{
		{"none", Options{}, Scales{Start: 1000, Max: 1000, Target: 1000}},
		{"target_only", Options{TargetScale: Some(3000)}, Scales{Start: 1000, Max: 2000, Target: 3000}},
		{"max_only", Options{MaxScale: Some(5000)}, Scales{Start: 1000, Max: 5000, Target: 1000}},
		{"both", Options{MaxScale: Some(8000), TargetScale: Some(500)}, Scales{Start: 1000, Max: 8000, Target: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.ResolveScales(1000); got != tt.want {
				t.Errorf("ResolveScales = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildNoMotion(t *testing.T) {
	vp := newRecordingViewport(1000, geo.NewSpatialReference(geo.WKIDWebMercator))
	b, _ := quietBuilder(&countingGeometry{})

	frames, err := b.Build(vp, mercatorLine(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Scale != 1000 || frames[0].Position != 0 {
		t.Errorf("frame = %+v", frames[0])
	}
}

func TestBuildProjectsPath(t *testing.T) {
	g := &countingGeometry{}
	vp := newRecordingViewport(1000, geo.NewSpatialReference(geo.WKIDWebMercator))
	b, logs := quietBuilder(g)

	line := geo.Polyline{
		Points:           []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		SpatialReference: geo.NewSpatialReference(geo.WKIDWGS84),
	}
	frames, err := b.Build(vp, line, Options{CruiseSteps: 1})
	if err != nil {
		t.Fatal(err)
	}
	if g.projected != 1 {
		t.Errorf("expected one projection, got %d", g.projected)
	}
	// One degree of longitude at the equator
	if x := frames[1].Extent.Center().X; math.Abs(x-111319.49079327357) > 1e-6 {
		t.Errorf("last frame at x=%v", x)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %q", logs.String())
	}
}

func TestBuildUnknownSpatialReference(t *testing.T) {
	tests := []struct {
		name     string
		viewport geo.SpatialReference
		path     geo.SpatialReference
		warning  string
	}{
		{"viewport", geo.SpatialReference{}, geo.NewSpatialReference(geo.WKIDWGS84), "Viewport spatial reference is unknown"},
		{"path", geo.NewSpatialReference(geo.WKIDWebMercator), geo.SpatialReference{}, "Path geometry spatial reference is unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &countingGeometry{}
			vp := newRecordingViewport(1000, tt.viewport)
			b, logs := quietBuilder(g)

			line := geo.Polyline{Points: []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, SpatialReference: tt.path}
			frames, err := b.Build(vp, line, Options{CruiseSteps: 2})
			if err != nil {
				t.Fatalf("unknown reference must not fail: %v", err)
			}
			if g.projected != 0 {
				t.Error("path should be used unprojected")
			}
			if x := frames[2].Extent.Center().X; x != 10 {
				t.Errorf("last frame at x=%v, want 10", x)
			}
			if !strings.Contains(logs.String(), tt.warning) {
				t.Errorf("warning %q not logged, got %q", tt.warning, logs.String())
			}
		})
	}
}

func TestBuildInvalidInput(t *testing.T) {
	sr := geo.NewSpatialReference(geo.WKIDWebMercator)
	tests := []struct {
		name  string
		scale float64
		opts  Options
	}{
		{"negative_accelerate", 1000, Options{AccelerateSteps: -1}},
		{"negative_cruise", 1000, Options{CruiseSteps: -2}},
		{"zero_start_scale", 0, Options{CruiseSteps: 2}},
		{"negative_max", 1000, Options{MaxScale: Some(-5)}},
		{"zero_target", 1000, Options{TargetScale: Some(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := quietBuilder(&countingGeometry{})
			frames, err := b.Build(newRecordingViewport(tt.scale, sr), mercatorLine(), tt.opts)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if frames != nil {
				t.Errorf("expected no frames, got %d", len(frames))
			}
		})
	}
}

func TestBuildCollaboratorFailure(t *testing.T) {
	sr := geo.NewSpatialReference(geo.WKIDWebMercator)

	t.Run("pan", func(t *testing.T) {
		vp := newRecordingViewport(1000, sr)
		vp.failPan = 2
		b, _ := quietBuilder(&countingGeometry{})
		frames, err := b.Build(vp, mercatorLine(), Options{CruiseSteps: 4})
		if !errors.Is(err, ErrCollaborator) {
			t.Errorf("expected ErrCollaborator, got %v", err)
		}
		if frames != nil {
			t.Errorf("partial frames returned: %d", len(frames))
		}
		if !strings.Contains(err.Error(), "frame 2") {
			t.Errorf("error should name the frame: %v", err)
		}
	})

	t.Run("projection", func(t *testing.T) {
		line := geo.Polyline{
			Points:           []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
			SpatialReference: geo.NewSpatialReference(geo.WKIDUSAEquidistConc),
		}
		b, _ := quietBuilder(&countingGeometry{})
		_, err := b.Build(newRecordingViewport(1000, sr), line, Options{CruiseSteps: 1})
		if !errors.Is(err, ErrCollaborator) {
			t.Errorf("expected ErrCollaborator, got %v", err)
		}
	})

	t.Run("empty_path", func(t *testing.T) {
		b, _ := quietBuilder(&countingGeometry{})
		_, err := b.Build(newRecordingViewport(1000, sr), geo.Polyline{SpatialReference: sr}, Options{})
		if !errors.Is(err, ErrCollaborator) {
			t.Errorf("expected ErrCollaborator, got %v", err)
		}
	})
}

func TestOptional(t *testing.T) {
	if _, ok := None.Get(); ok {
		t.Error("None reports a value")
	}
	if v, ok := Some(0).Get(); !ok || v != 0 {
		t.Error("Some(0) must be provided")
	}
	v := 7.5
	if got := FromPtr(&v).Or(1); got != 7.5 {
		t.Errorf("FromPtr(&7.5).Or(1) = %v", got)
	}
	if got := FromPtr(nil).Or(1); got != 1 {
		t.Errorf("FromPtr(nil).Or(1) = %v", got)
	}
}

func TestExtents(t *testing.T) {
	frames := []Frame{
		{Extent: geo.Extent{XMin: 1, XMax: 2}},
		{Extent: geo.Extent{XMin: 3, XMax: 4}},
	}
	got := Extents(frames)
	if len(got) != 2 || got[1].XMin != 3 {
		t.Errorf("Extents = %+v", got)
	}
}
