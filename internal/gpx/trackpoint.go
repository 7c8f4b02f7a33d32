package gpx

import (
	"fmt"
	"time"
)

// FixQuality is the receiver's positioning mode for a point.
type FixQuality int

const (
	FixUnknown FixQuality = iota
	FixThreeD
	FixDGPS
)

// ParseFixQuality maps the text of a <fix> element. Matching is exact and
// case-sensitive; anything but "3d" or "dgps" is FixUnknown.
func ParseFixQuality(s string) FixQuality {
	switch s {
	case "3d":
		return FixThreeD
	case "dgps":
		return FixDGPS
	default:
		return FixUnknown
	}
}

func (f FixQuality) String() string {
	switch f {
	case FixThreeD:
		return "3d"
	case FixDGPS:
		return "dgps"
	default:
		return "unknown"
	}
}

// Trackpoint is one timestamped fix. It is immutable once extracted.
type Trackpoint struct {
	lat  float64
	lon  float64
	ele  float64
	time time.Time
	fix  FixQuality
}

func (p Trackpoint) Latitude() float64  { return p.lat }
func (p Trackpoint) Longitude() float64 { return p.lon }
func (p Trackpoint) Elevation() float64 { return p.ele }
func (p Trackpoint) Time() time.Time    { return p.time }
func (p Trackpoint) Fix() FixQuality    { return p.fix }

func (p Trackpoint) String() string {
	return fmt.Sprintf("(%g, %g) ele=%g fix=%s at %s", p.lat, p.lon, p.ele, p.fix, p.time.Format(time.RFC3339))
}

// ExtractTrackpoint builds a Trackpoint from a <trkpt> element. Checks run in a
// fixed order and the first failure is returned:
// lat/lon attributes, <time> element, coordinate values, timestamp, elevation.
//
// A coordinate of exactly 0 is rejected because zero has always meant "unset"
// for this loader, so points on the equator or prime meridian cannot be loaded.
func ExtractTrackpoint(n *Node, o Options) (Trackpoint, error) {
	latText, hasLat := n.Attr("lat")
	lonText, hasLon := n.Attr("lon")
	if !hasLat || !hasLon {
		return Trackpoint{}, newError(KindFormat, ErrMissingCoordinates)
	}

	timeNode := n.FirstChild("time")
	if timeNode == nil {
		return Trackpoint{}, newError(KindFormat, ErrMissingTimestamp)
	}

	lat, err := ParseFloat(latText)
	if err != nil {
		return Trackpoint{}, newError(KindFormat, fmt.Errorf("%w: lat: %v", ErrInvalidCoordinates, err))
	}
	lon, err := ParseFloat(lonText)
	if err != nil {
		return Trackpoint{}, newError(KindFormat, fmt.Errorf("%w: lon: %v", ErrInvalidCoordinates, err))
	}
	if lat == 0 || lon == 0 {
		return Trackpoint{}, newError(KindSemantic, fmt.Errorf("%w: lat=%g lon=%g", ErrInvalidCoordinates, lat, lon))
	}

	ts, err := ParseTimestamp(timeNode.Text(), o.location(lat, lon, timeNode.Text()))
	if err != nil {
		return Trackpoint{}, newError(KindFormat, err)
	}

	var ele float64
	if eleNode := n.FirstChild("ele"); eleNode != nil {
		ele, err = ParseFloat(eleNode.Text())
		if err != nil {
			return Trackpoint{}, newError(KindFormat, fmt.Errorf("%w: %v", ErrInvalidElevation, err))
		}
	}

	fix := FixUnknown
	if fixNode := n.FirstChild("fix"); fixNode != nil {
		fix = ParseFixQuality(fixNode.Text())
	}

	return Trackpoint{lat: lat, lon: lon, ele: ele, time: ts, fix: fix}, nil
}
