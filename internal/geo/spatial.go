package geo

import "fmt"

// Well-known IDs understood by this package.
const (
	WKIDUnknown         = 0
	WKIDWGS84           = 4326
	WKIDWebMercator     = 3857
	WKIDWebMercatorAux  = 102100 // legacy Esri id for Web Mercator
	WKIDUSAEquidistConc = 102005
)

// metersPerDegree is the length of one degree of longitude at the equator
// on the WGS84 ellipsoid.
const metersPerDegree = 111319.49079327357

// SpatialReference identifies the coordinate system a geometry is expressed in.
// The zero value is the unknown reference.
type SpatialReference struct {
	WKID       int `json:"wkid" yaml:"wkid"`
	LatestWKID int `json:"latestWkid,omitempty" yaml:"latest_wkid,omitempty"`
}

// NewSpatialReference returns a reference for wkid, filling LatestWKID for
// the legacy ids that have a newer equivalent.
func NewSpatialReference(wkid int) SpatialReference {
	sr := SpatialReference{WKID: wkid}
	switch wkid {
	case WKIDWebMercatorAux:
		sr.LatestWKID = WKIDWebMercator
	case WKIDUnknown:
	default:
		sr.LatestWKID = wkid
	}
	return sr
}

// Unknown reports whether the reference is unset.
func (sr SpatialReference) Unknown() bool {
	return sr.WKID == WKIDUnknown && sr.LatestWKID == WKIDUnknown
}

// Canonical returns the newest id for the reference.
func (sr SpatialReference) Canonical() int {
	if sr.LatestWKID != 0 {
		return sr.LatestWKID
	}
	if sr.WKID == WKIDWebMercatorAux {
		return WKIDWebMercator
	}
	return sr.WKID
}

// Equal reports whether both references describe the same coordinate system.
func (sr SpatialReference) Equal(other SpatialReference) bool {
	return sr.Canonical() == other.Canonical()
}

// Geographic reports whether coordinates are in degrees.
func (sr SpatialReference) Geographic() bool {
	return sr.Canonical() == WKIDWGS84
}

// MetersPerUnit converts one coordinate unit to meters. Geographic units are
// approximated at the equator.
func (sr SpatialReference) MetersPerUnit() float64 {
	if sr.Geographic() {
		return metersPerDegree
	}
	return 1
}

// Name returns a human readable name, "Unknown" for the zero reference.
func (sr SpatialReference) Name() string {
	switch sr.Canonical() {
	case WKIDUnknown:
		return "Unknown"
	case WKIDWGS84:
		return "GCS_WGS_1984"
	case WKIDWebMercator:
		return "WGS_1984_Web_Mercator_Auxiliary_Sphere"
	case WKIDUSAEquidistConc:
		return "USA_Contiguous_Equidistant_Conic"
	}
	return fmt.Sprintf("WKID %d", sr.WKID)
}

func (sr SpatialReference) String() string {
	return sr.Name()
}
