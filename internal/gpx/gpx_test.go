package gpx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeGPX(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.gpx")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const singlePoint = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Morning hike</name>
    <trkseg>
      <trkpt lat="45.5" lon="7.6">
        <ele>120.3</ele>
        <time>2023-05-01T10:15:30</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestLoadSinglePoint(t *testing.T) {
	c, err := Load(writeGPX(t, singlePoint))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	p := c.At(0)
	if p.Latitude() != 45.5 || p.Longitude() != 7.6 {
		t.Fatalf("coordinates = (%v, %v), want (45.5, 7.6)", p.Latitude(), p.Longitude())
	}
	if p.Elevation() != 120.3 {
		t.Fatalf("Elevation() = %v, want 120.3", p.Elevation())
	}
	if p.Fix() != FixUnknown {
		t.Fatalf("Fix() = %v, want unknown", p.Fix())
	}
	want := time.Date(2023, 5, 1, 10, 15, 30, 0, time.UTC)
	if !p.Time().Equal(want) {
		t.Fatalf("Time() = %v, want %v", p.Time(), want)
	}
}

const multiTrack = `<gpx>
  <trk>
    <trkseg>
      <trkpt lat="1.1" lon="2.1"><time>2023-05-01T10:00:00Z</time></trkpt>
      <trkpt lat="1.2" lon="2.2"><time>2023-05-01T10:00:05Z</time><fix>3d</fix></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="1.3" lon="2.3"><time>2023-05-01T10:00:10Z</time><fix>dgps</fix></trkpt>
    </trkseg>
  </trk>
  <wpt lat="9" lon="9"><time>2023-05-01T09:00:00Z</time></wpt>
  <trk>
    <name>second</name>
    <trkseg>
      <trkpt lat="-1.4" lon="-2.4"><ele>-3</ele><time>2023-05-01T11:00:00Z</time><fix>3D</fix></trkpt>
    </trkseg>
  </trk>
  <trk><name>empty</name></trk>
</gpx>`

func TestLoadPreservesDocumentOrder(t *testing.T) {
	var events []ProgressEvent
	c, err := Load(writeGPX(t, multiTrack), WithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantLat := []float64{1.1, 1.2, 1.3, -1.4}
	wantFix := []FixQuality{FixUnknown, FixThreeD, FixDGPS, FixUnknown}
	if c.Len() != len(wantLat) {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(wantLat))
	}
	for i, p := range c.Points() {
		if p.Latitude() != wantLat[i] {
			t.Errorf("point %d lat = %v, want %v", i, p.Latitude(), wantLat[i])
		}
		if p.Fix() != wantFix[i] {
			t.Errorf("point %d fix = %v, want %v", i, p.Fix(), wantFix[i])
		}
	}
	if c.Tracks() != 3 {
		t.Fatalf("Tracks() = %d, want 3", c.Tracks())
	}
	if got := c.At(3).Elevation(); got != -3 {
		t.Fatalf("elevation = %v, want -3", got)
	}

	wantEvents := []ProgressEvent{
		{Kind: TrackStarted, Track: 0, Name: UnnamedTrack},
		{Kind: TrackFinished, Track: 0, Name: UnnamedTrack, Points: 3},
		{Kind: TrackStarted, Track: 1, Name: "second"},
		{Kind: TrackFinished, Track: 1, Name: "second", Points: 1},
		{Kind: TrackStarted, Track: 2, Name: "empty"},
		{Kind: TrackFinished, Track: 2, Name: "empty", Points: 0},
		{Kind: LoadFinished, Tracks: 3, Points: 4},
	}
	if len(events) != len(wantEvents) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantEvents), events)
	}
	for i := range wantEvents {
		if events[i] != wantEvents[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], wantEvents[i])
		}
	}
}

func TestLoadRejectsWholeDocument(t *testing.T) {
	tests := []struct {
		name    string
		point   string
		kind    ErrorKind
		wantErr error
	}{
		{"missing lat", `<trkpt lon="7.6"><time>2023-05-01T10:15:30</time></trkpt>`, KindFormat, ErrMissingCoordinates},
		{"missing lon", `<trkpt lat="45.5"><time>2023-05-01T10:15:30</time></trkpt>`, KindFormat, ErrMissingCoordinates},
		{"missing time", `<trkpt lat="45.5" lon="7.6"><ele>1</ele></trkpt>`, KindFormat, ErrMissingTimestamp},
		{"zero lat", `<trkpt lat="0.0" lon="7.6"><time>2023-05-01T10:15:30</time></trkpt>`, KindSemantic, ErrInvalidCoordinates},
		{"zero lon", `<trkpt lat="45.5" lon="0.0"><time>2023-05-01T10:15:30</time></trkpt>`, KindSemantic, ErrInvalidCoordinates},
		{"non numeric lat", `<trkpt lat="north" lon="7.6"><time>2023-05-01T10:15:30</time></trkpt>`, KindFormat, ErrInvalidCoordinates},
		{"bad time", `<trkpt lat="45.5" lon="7.6"><time>yesterday</time></trkpt>`, KindFormat, ErrInvalidTimestamp},
		{"bad elevation", `<trkpt lat="45.5" lon="7.6"><ele>high</ele><time>2023-05-01T10:15:30</time></trkpt>`, KindFormat, ErrInvalidElevation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<gpx><trk><trkseg>
				<trkpt lat="45.4" lon="7.5"><time>2023-05-01T10:15:00</time></trkpt>
				` + tt.point + `
			</trkseg></trk></gpx>`
			path := writeGPX(t, doc)

			c, err := Load(path)
			if err == nil {
				t.Fatalf("Load() = %d points, want error", c.Len())
			}
			if c != nil {
				t.Fatalf("Load() returned a partial collection")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if KindOf(err) != tt.kind {
				t.Fatalf("KindOf() = %v, want %v", KindOf(err), tt.kind)
			}

			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if gerr.Path != path || gerr.Track != 0 || gerr.Segment != 0 || gerr.Point != 1 {
				t.Fatalf("error location = %q track %d segment %d point %d", gerr.Path, gerr.Track, gerr.Segment, gerr.Point)
			}
		})
	}
}

func TestLoadRejectsForeignRoot(t *testing.T) {
	path := writeGPX(t, `<notgpx><trk><trkseg><trkpt lat="1" lon="1"><time>2023-05-01T10:15:30</time></trkpt></trkseg></trk></notgpx>`)
	_, err := Load(path)
	if !errors.Is(err, ErrRootMismatch) {
		t.Fatalf("error = %v, want %v", err, ErrRootMismatch)
	}
	if KindOf(err) != KindFormat {
		t.Fatalf("KindOf() = %v, want format", KindOf(err))
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error %q does not name the file", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeGPX(t, ""))
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("error = %v, want %v", err, ErrEmptyFile)
	}
}

func TestLoadWithLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c, err := Load(writeGPX(t, singlePoint), WithLocation(loc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(2023, 5, 1, 8, 15, 30, 0, time.UTC)
	if !c.At(0).Time().Equal(want) {
		t.Fatalf("Time() = %v, want %v", c.At(0).Time(), want)
	}
}

type fixedResolver struct {
	loc   *time.Location
	calls int
}

func (r *fixedResolver) LocationFor(lat, lon float64) (*time.Location, error) {
	r.calls++
	return r.loc, nil
}

func TestLoadWithZoneResolver(t *testing.T) {
	r := &fixedResolver{loc: time.FixedZone("UTC-5", -5*60*60)}
	c, err := Load(writeGPX(t, multiTrack), WithZoneResolver(r))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.calls != 0 {
		t.Fatalf("resolver called %d times for zoned timestamps", r.calls)
	}

	c, err = Load(writeGPX(t, singlePoint), WithZoneResolver(r))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(2023, 5, 1, 15, 15, 30, 0, time.UTC)
	if !c.At(0).Time().Equal(want) {
		t.Fatalf("Time() = %v, want %v", c.At(0).Time(), want)
	}
}
