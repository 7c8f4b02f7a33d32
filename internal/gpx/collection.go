package gpx

import (
	"time"

	"github.com/golang/geo/s2"
)

// Collection holds the trackpoints of one document in document order, with all
// tracks and segments flattened together. It is read-only once returned.
type Collection struct {
	points []Trackpoint
	tracks int
	size   int64
}

// Len returns the number of trackpoints.
func (c *Collection) Len() int { return len(c.points) }

// Tracks returns the number of <trk> elements the points were read from.
func (c *Collection) Tracks() int { return c.tracks }

// SourceSize returns the number of bytes Load read for the collection.
func (c *Collection) SourceSize() int64 { return c.size }

// At returns the i'th trackpoint.
func (c *Collection) At(i int) Trackpoint { return c.points[i] }

// Points returns a copy of the trackpoints.
func (c *Collection) Points() []Trackpoint {
	out := make([]Trackpoint, len(c.points))
	copy(out, c.points)
	return out
}

// Each calls fn for every point in order until fn returns false.
func (c *Collection) Each(fn func(i int, p Trackpoint) bool) {
	for i, p := range c.points {
		if !fn(i, p) {
			return
		}
	}
}

// Bounds returns the smallest lat/lng rectangle holding every point. It is
// empty for an empty collection.
func (c *Collection) Bounds() s2.Rect {
	rect := s2.EmptyRect()
	for _, p := range c.points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.lat, p.lon))
	}
	return rect
}

// TimeSpan returns the earliest and latest timestamps. Both are zero for an
// empty collection.
func (c *Collection) TimeSpan() (start, end time.Time) {
	for i, p := range c.points {
		if i == 0 || p.time.Before(start) {
			start = p.time
		}
		if i == 0 || p.time.After(end) {
			end = p.time
		}
	}
	return start, end
}

func (c *Collection) add(p Trackpoint) {
	c.points = append(c.points, p)
}
