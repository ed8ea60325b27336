package director

import (
	"fmt"

	"github.com/twhiteaker/arc-panimate/internal/geo"
	"github.com/twhiteaker/arc-panimate/internal/trajectory"
)

const scenarioVersion = "1.0"

// FromFrames records a built trajectory. The scenario takes the spatial
// reference of the first frame.
func FromFrames(frames []trajectory.Frame, source string) *Scenario {
	scenario := &Scenario{
		Version: scenarioVersion,
		Path:    source,
		Frames:  make([]Keyframe, len(frames)),
	}
	if len(frames) > 0 {
		scenario.SpatialReference = frames[0].Extent.SpatialReference
	}

	for i, f := range frames {
		scenario.Frames[i] = Keyframe{
			Index:    f.Index,
			Position: f.Position,
			Scale:    f.Scale,
			Rect: Rectangle{
				XMin: f.Extent.XMin,
				YMin: f.Extent.YMin,
				XMax: f.Extent.XMax,
				YMax: f.Extent.YMax,
			},
		}
	}
	return scenario
}

// Trajectory converts the scenario back into frames.
func (s *Scenario) Trajectory() ([]trajectory.Frame, error) {
	frames := make([]trajectory.Frame, len(s.Frames))
	for i, kf := range s.Frames {
		if kf.Index != i {
			return nil, fmt.Errorf("keyframe %d has index %d", i, kf.Index)
		}
		e := geo.Extent{
			XMin:             kf.Rect.XMin,
			YMin:             kf.Rect.YMin,
			XMax:             kf.Rect.XMax,
			YMax:             kf.Rect.YMax,
			SpatialReference: s.SpatialReference,
		}
		if !e.Valid() {
			return nil, fmt.Errorf("keyframe %d: rect bounds out of order", i)
		}
		frames[i] = trajectory.Frame{Index: kf.Index, Position: kf.Position, Scale: kf.Scale, Extent: e}
	}
	return frames, nil
}
