// Package extent reads and writes lists of map extents as JSON.
//
// The file is an array of objects:
//
//	[{"xmin": -409983.09, "ymin": -172289.08, "xmax": -138815.60, "ymax": 31086.54,
//	  "spatialReference": {"wkid": 102005, "latestWkid": 102005}}, ...]
package extent

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/twhiteaker/arc-panimate/internal/geo"
)

var ErrInvalidInput = errors.New("invalid extent file")

type record struct {
	XMin             *float64              `json:"xmin"`
	YMin             *float64              `json:"ymin"`
	XMax             *float64              `json:"xmax"`
	YMax             *float64              `json:"ymax"`
	SpatialReference *geo.SpatialReference `json:"spatialReference,omitempty"`
}

// Marshal encodes extents in the file format.
func Marshal(extents []geo.Extent) ([]byte, error) {
	records := make([]record, len(extents))
	for i, e := range extents {
		sr := e.SpatialReference
		records[i] = record{XMin: &e.XMin, YMin: &e.YMin, XMax: &e.XMax, YMax: &e.YMax, SpatialReference: &sr}
	}
	return json.MarshalIndent(records, "", "  ")
}

// Unmarshal decodes the file format. keepReference controls whether the
// spatialReference of each record is kept.
func Unmarshal(data []byte, keepReference bool) ([]geo.Extent, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	extents := make([]geo.Extent, 0, len(records))
	for i, r := range records {
		if r.XMin == nil || r.YMin == nil || r.XMax == nil || r.YMax == nil {
			return nil, fmt.Errorf("%w: extent %d: xmin, ymin, xmax and ymax are required", ErrInvalidInput, i)
		}
		e := geo.Extent{XMin: *r.XMin, YMin: *r.YMin, XMax: *r.XMax, YMax: *r.YMax}
		if !e.Valid() {
			return nil, fmt.Errorf("%w: extent %d: bounds out of order (%v, %v, %v, %v)", ErrInvalidInput, i, e.XMin, e.YMin, e.XMax, e.YMax)
		}
		if keepReference && r.SpatialReference != nil {
			e.SpatialReference = *r.SpatialReference
		}
		extents = append(extents, e)
	}
	return extents, nil
}

// Save writes extents to filename.
func Save(extents []geo.Extent, filename string) error {
	data, err := Marshal(extents)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Load reads extents from filename. Only the bounds are restored; the
// spatialReference stored in the file is dropped and callers assign their
// own. Use LoadWithReference to keep it.
func Load(filename string) ([]geo.Extent, error) {
	return load(filename, false)
}

// LoadWithReference reads extents from filename, spatial references included.
func LoadWithReference(filename string) ([]geo.Extent, error) {
	return load(filename, true)
}

func load(filename string, keepReference bool) ([]geo.Extent, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	extents, err := Unmarshal(data, keepReference)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return extents, nil
}
