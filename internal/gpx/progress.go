package gpx

import (
	"log/slog"
)

// UnnamedTrack is reported for tracks without a <name> element.
const UnnamedTrack = "<unnamed>"

type ProgressKind int

const (
	TrackStarted ProgressKind = iota
	TrackFinished
	LoadFinished
)

func (k ProgressKind) String() string {
	switch k {
	case TrackStarted:
		return "track started"
	case TrackFinished:
		return "track finished"
	case LoadFinished:
		return "load finished"
	default:
		return "unknown"
	}
}

// ProgressEvent is emitted while a document is extracted.
//
// TrackStarted sets Track and Name. TrackFinished adds Points, the number of
// points read from that track. LoadFinished sets Tracks and Points for the
// whole document.
type ProgressEvent struct {
	Kind   ProgressKind
	Track  int
	Name   string
	Tracks int
	Points int
}

// LogProgress returns a progress callback that logs to logger. A nil logger uses
// slog.Default().
func LogProgress(logger *slog.Logger) func(ProgressEvent) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev ProgressEvent) {
		switch ev.Kind {
		case TrackStarted:
			logger.Debug("reading track", "track", ev.Track+1, "name", ev.Name)
		case TrackFinished:
			logger.Debug("track done", "track", ev.Track+1, "name", ev.Name, "points", ev.Points)
		case LoadFinished:
			logger.Info("tracks loaded", "tracks", ev.Tracks, "points", ev.Points)
		}
	}
}
