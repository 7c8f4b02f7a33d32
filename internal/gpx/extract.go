package gpx

import (
	"errors"
)

// ExtractAll walks gpx/trk/trkseg/trkpt in document order and returns every
// trackpoint. The first bad point aborts the whole document.
func ExtractAll(doc *Document, o Options) (*Collection, error) {
	if err := doc.checkRoot(); err != nil {
		return nil, err
	}

	c := &Collection{}
	track := 0
	for trk := doc.root.FirstChild("trk"); trk != nil; trk = trk.NextSibling("trk") {
		name := trackName(trk)
		o.report(ProgressEvent{Kind: TrackStarted, Track: track, Name: name})

		before := c.Len()
		if err := extractTrack(trk, c, o); err != nil {
			var gerr *Error
			if errors.As(err, &gerr) {
				gerr.Track = track
			}
			return nil, err
		}
		o.report(ProgressEvent{Kind: TrackFinished, Track: track, Name: name, Points: c.Len() - before})
		track++
	}
	c.tracks = track

	o.report(ProgressEvent{Kind: LoadFinished, Tracks: track, Points: c.Len()})
	return c, nil
}

func extractTrack(trk *Node, c *Collection, o Options) error {
	segment := 0
	for seg := trk.FirstChild("trkseg"); seg != nil; seg = seg.NextSibling("trkseg") {
		point := 0
		for pt := seg.FirstChild("trkpt"); pt != nil; pt = pt.NextSibling("trkpt") {
			p, err := ExtractTrackpoint(pt, o)
			if err != nil {
				var gerr *Error
				if errors.As(err, &gerr) {
					gerr.Segment = segment
					gerr.Point = point
				}
				return err
			}
			c.add(p)
			point++
		}
		segment++
	}
	return nil
}

func trackName(trk *Node) string {
	if name := trk.FirstChild("name").Text(); name != "" {
		return name
	}
	return UnnamedTrack
}
