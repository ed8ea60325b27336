package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

// Bounds is an extent as written in the job file.
type Bounds struct {
	XMin float64 `yaml:"xmin"`
	YMin float64 `yaml:"ymin"`
	XMax float64 `yaml:"xmax"`
	YMax float64 `yaml:"ymax"`
}

// PathConfig is the line the camera follows.
type PathConfig struct {
	WKID   int          `yaml:"wkid"`   // 0 = unknown
	Points [][2]float64 `yaml:"points"` // [x, y] vertices
}

// ViewportConfig describes the exported map page.
type ViewportConfig struct {
	WidthPx  int         `yaml:"width_px"`
	HeightPx int         `yaml:"height_px"`
	DPI      float64     `yaml:"dpi"`
	Scale    float64     `yaml:"scale"`            // starting map scale
	WKID     int         `yaml:"wkid"`             // 0 = unknown
	Center   *[2]float64 `yaml:"center,omitempty"` // defaults to the first path point
	Limit    *Bounds     `yaml:"limit,omitempty"`
}

// MotionConfig holds the step counts and optional scales of the pan.
type MotionConfig struct {
	AccelerateSteps int      `yaml:"accelerate_steps"`
	CruiseSteps     int      `yaml:"cruise_steps"`
	MaxScale        *float64 `yaml:"max_scale,omitempty"`
	TargetScale     *float64 `yaml:"target_scale,omitempty"`
}

// BasemapConfig is optional: a PDF page or image drawn under the path.
type BasemapConfig struct {
	Path   string `yaml:"path"`
	Page   int    `yaml:"page"`
	DPI    int    `yaml:"dpi"`
	Extent Bounds `yaml:"extent"` // map coordinates covered by the page
}

// OutputConfig controls what gets written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Name         string `yaml:"name"` // frame file prefix
	ExtentsFile  string `yaml:"extents_file"`
	ScenarioFile string `yaml:"scenario_file"`
	Video        string `yaml:"video"` // empty = no video
	FPS          int    `yaml:"fps"`
	Quality      int    `yaml:"quality"` // 0 = encoder default
	Workers      int    `yaml:"workers"` // 0 = one per CPU
	Debug        bool   `yaml:"debug"`
	Stats        bool   `yaml:"stats"`
}

// Config aggregates a panimate job.
type Config struct {
	Path     PathConfig     `yaml:"path"`
	Viewport ViewportConfig `yaml:"viewport"`
	Motion   MotionConfig   `yaml:"motion"`
	Basemap  *BasemapConfig `yaml:"basemap,omitempty"`
	Output   OutputConfig   `yaml:"output"`

	BuildVersion string `yaml:"-"`
}

// Load reads a YAML job file, validates it and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks the values that have no sensible default.
func (c *Config) Validate() error {
	if len(c.Path.Points) < 2 {
		return fmt.Errorf("path.points needs at least 2 vertices, got %d", len(c.Path.Points))
	}
	if c.Viewport.WidthPx <= 0 || c.Viewport.HeightPx <= 0 {
		return fmt.Errorf("viewport.width_px and viewport.height_px must be > 0, got %dx%d", c.Viewport.WidthPx, c.Viewport.HeightPx)
	}
	if c.Viewport.Scale <= 0 {
		return fmt.Errorf("viewport.scale must be > 0, got %.2f", c.Viewport.Scale)
	}
	if c.Motion.AccelerateSteps < 0 || c.Motion.CruiseSteps < 0 {
		return fmt.Errorf("motion steps must be >= 0, got accelerate=%d cruise=%d", c.Motion.AccelerateSteps, c.Motion.CruiseSteps)
	}
	if c.Motion.MaxScale != nil && *c.Motion.MaxScale <= 0 {
		return fmt.Errorf("motion.max_scale must be > 0, got %.2f", *c.Motion.MaxScale)
	}
	if c.Motion.TargetScale != nil && *c.Motion.TargetScale <= 0 {
		return fmt.Errorf("motion.target_scale must be > 0, got %.2f", *c.Motion.TargetScale)
	}
	if b := c.Basemap; b != nil {
		if b.Path == "" {
			return fmt.Errorf("basemap.path is required when basemap is set")
		}
		if b.Extent.XMin >= b.Extent.XMax || b.Extent.YMin >= b.Extent.YMax {
			return fmt.Errorf("basemap.extent must have xmin < xmax and ymin < ymax")
		}
		if b.Page < 0 {
			return fmt.Errorf("basemap.page must be >= 0, got %d", b.Page)
		}
	}
	if l := c.Viewport.Limit; l != nil && (l.XMin >= l.XMax || l.YMin >= l.YMax) {
		return fmt.Errorf("viewport.limit must have xmin < xmax and ymin < ymax")
	}
	if c.Output.FPS < 0 || c.Output.Workers < 0 {
		return fmt.Errorf("output.fps and output.workers must be >= 0")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Viewport.DPI <= 0 {
		c.Viewport.DPI = 96
	}
	if c.Basemap != nil && c.Basemap.DPI <= 0 {
		c.Basemap.DPI = 150
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.Name == "" {
		c.Output.Name = "frame"
	}
	if c.Output.ExtentsFile == "" {
		c.Output.ExtentsFile = "extents.json"
	}
	if c.Output.FPS == 0 {
		c.Output.FPS = 30
	}
}

// Polyline returns the configured path.
func (c *Config) Polyline() geo.Polyline {
	line := geo.Polyline{
		Points:           make([]geo.Point, len(c.Path.Points)),
		SpatialReference: geo.NewSpatialReference(c.Path.WKID),
	}
	for i, p := range c.Path.Points {
		line.Points[i] = geo.Point{X: p[0], Y: p[1]}
	}
	return line
}

// ViewportReference returns the spatial reference of the map page.
func (c *Config) ViewportReference() geo.SpatialReference {
	return geo.NewSpatialReference(c.Viewport.WKID)
}

// ViewportCenter returns the starting center of the page. Without an explicit
// center the first path vertex is used and fromPath reports true: that point is
// in the path's spatial reference, not the viewport's.
func (c *Config) ViewportCenter() (center geo.Point, fromPath bool) {
	if c.Viewport.Center == nil {
		return geo.Point{X: c.Path.Points[0][0], Y: c.Path.Points[0][1]}, true
	}
	return geo.Point{X: c.Viewport.Center[0], Y: c.Viewport.Center[1]}, false
}

// Extent converts b to a geo extent in sr.
func (b Bounds) Extent(sr geo.SpatialReference) geo.Extent {
	return geo.Extent{XMin: b.XMin, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax, SpatialReference: sr}
}
