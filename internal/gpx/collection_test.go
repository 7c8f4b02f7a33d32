package gpx

import (
	"math"
	"testing"
	"time"
)

func TestCollectionSummaries(t *testing.T) {
	c, err := Load(writeGPX(t, multiTrack))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rect := c.Bounds()
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	if !near(rect.Lo().Lat.Degrees(), -1.4) || !near(rect.Hi().Lat.Degrees(), 1.3) {
		t.Fatalf("latitude bounds = %v..%v", rect.Lo().Lat.Degrees(), rect.Hi().Lat.Degrees())
	}
	if !near(rect.Lo().Lng.Degrees(), -2.4) || !near(rect.Hi().Lng.Degrees(), 2.3) {
		t.Fatalf("longitude bounds = %v..%v", rect.Lo().Lng.Degrees(), rect.Hi().Lng.Degrees())
	}

	start, end := c.TimeSpan()
	if !start.Equal(time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2023, 5, 1, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("TimeSpan() = %v, %v", start, end)
	}

	var seen int
	c.Each(func(i int, p Trackpoint) bool {
		seen++
		return i < 1
	})
	if seen != 2 {
		t.Fatalf("Each visited %d points after stop, want 2", seen)
	}

	pts := c.Points()
	pts[0] = Trackpoint{}
	if c.At(0).Latitude() != 1.1 {
		t.Fatalf("Points() exposed internal storage")
	}
}

func TestEmptyCollection(t *testing.T) {
	c, err := Load(writeGPX(t, `<gpx><trk><trkseg/></trk></gpx>`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 || c.Tracks() != 1 {
		t.Fatalf("Len() = %d, Tracks() = %d", c.Len(), c.Tracks())
	}
	if !c.Bounds().IsEmpty() {
		t.Fatalf("Bounds() of empty collection is not empty")
	}
	if start, end := c.TimeSpan(); !start.IsZero() || !end.IsZero() {
		t.Fatalf("TimeSpan() = %v, %v", start, end)
	}
}
