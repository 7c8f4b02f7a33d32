package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoTracks = `<gpx>
<trk><name>up</name><trkseg>
<trkpt lat="45.5" lon="7.6"><time>2023-05-01T10:15:30</time></trkpt>
<trkpt lat="45.6" lon="7.6"><time>2023-05-01T10:16:30</time></trkpt>
</trkseg></trk>
<trk><trkseg>
<trkpt lat="45.7" lon="7.6"><time>2023-05-01T10:17:30</time></trkpt>
</trkseg></trk>
</gpx>`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "in.gpx")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, args := range [][]string{
		{"gpxload"},
		{"gpxload", "in.gpx"},
		{"gpxload", "a", "b", "c"},
	} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 1 {
			t.Fatalf("run(%q) = %d, want 1", args, code)
		}
		if !strings.Contains(stderr.String(), "Usage: gpxload") {
			t.Fatalf("stderr = %q, want usage", stderr.String())
		}
	}
}

func TestRunLoads(t *testing.T) {
	in := writeInput(t, twoTracks)
	out := filepath.Join(filepath.Dir(in), "out.gpx")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"gpxload", in, out}, &stdout, &stderr); code != 0 {
		t.Fatalf("run = %d, stderr %q", code, stderr.String())
	}

	want := "reading track: up ... done\n" +
		"reading track: <unnamed> ... done\n" +
		"found 2 tracks, containing 3 trackpoints\n"
	if stdout.String() != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output file was written")
	}
}

func TestRunFailure(t *testing.T) {
	in := writeInput(t, `<notgpx/>`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"gpxload", in, "out.gpx"}, &stdout, &stderr); code != 1 {
		t.Fatalf("run = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Cannot read file '"+in+"'") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunStoresInDatabase(t *testing.T) {
	in := writeInput(t, twoTracks)
	db := filepath.Join(filepath.Dir(in), "tracks.db")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"gpxload", "-quiet", "-db", db, in, "out.gpx"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run = %d, stderr %q", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "stored import ") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("database not created: %v", err)
	}
}
