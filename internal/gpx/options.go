package gpx

import (
	"log/slog"
	"os"
	"time"
)

// ZoneResolver returns the local time zone at a coordinate. It is consulted for
// timestamps that carry no zone of their own.
type ZoneResolver interface {
	LocationFor(lat, lon float64) (*time.Location, error)
}

// Options controls a load. The zero value loads with the default size ceiling,
// reads zoneless timestamps as UTC and reports no progress.
type Options struct {
	MaxFileSize  int64
	Location     *time.Location
	ZoneResolver ZoneResolver
	Progress     func(ProgressEvent)
	// Root confines Load to names inside a directory.
	Root *os.Root
}

type Option func(*Options)

func WithMaxFileSize(n int64) Option {
	return func(o *Options) { o.MaxFileSize = n }
}

// WithLocation sets the zone for zoneless timestamps.
func WithLocation(loc *time.Location) Option {
	return func(o *Options) { o.Location = loc }
}

// WithZoneResolver resolves zoneless timestamps in the zone of each point.
// Points the resolver cannot place fall back to the WithLocation zone.
func WithZoneResolver(r ZoneResolver) Option {
	return func(o *Options) { o.ZoneResolver = r }
}

// WithRoot resolves the path given to Load inside root.
func WithRoot(root *os.Root) Option {
	return func(o *Options) { o.Root = root }
}

func WithProgress(fn func(ProgressEvent)) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithLogger reports progress as structured log records.
func WithLogger(logger *slog.Logger) Option {
	return WithProgress(LogProgress(logger))
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) location(lat, lon float64, text string) *time.Location {
	if o.ZoneResolver != nil && !hasZone(text) {
		if loc, err := o.ZoneResolver.LocationFor(lat, lon); err == nil && loc != nil {
			return loc
		}
	}
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) report(ev ProgressEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
