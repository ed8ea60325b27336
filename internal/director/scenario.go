package director

import "github.com/twhiteaker/arc-panimate/internal/geo"

// Scenario is a human-readable record of one computed camera trajectory
type Scenario struct {
	Version          string               `yaml:"version"`
	Path             string               `yaml:"path,omitempty"` // job file the trajectory came from
	SpatialReference geo.SpatialReference `yaml:"spatial_reference"`
	Frames           []Keyframe           `yaml:"frames"`
}

// Keyframe is the camera state of a single exported frame
type Keyframe struct {
	Index    int       `yaml:"index"`
	Position float64   `yaml:"position"` // fraction along the path
	Scale    float64   `yaml:"scale"`
	Rect     Rectangle `yaml:"rect"` // visible map extent
}

// Rectangle is a map extent in the scenario's spatial reference
type Rectangle struct {
	XMin float64 `yaml:"xmin"`
	YMin float64 `yaml:"ymin"`
	XMax float64 `yaml:"xmax"`
	YMax float64 `yaml:"ymax"`
}
