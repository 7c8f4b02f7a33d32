package gpx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a load failed. Every kind is terminal for the load.
type ErrorKind int

const (
	KindFilesystem ErrorKind = iota + 1
	KindResourceLimit
	KindFormat
	KindSemantic
)

func (k ErrorKind) String() string {
	switch k {
	case KindFilesystem:
		return "filesystem"
	case KindResourceLimit:
		return "resource limit"
	case KindFormat:
		return "format"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

var (
	ErrNotRegular         = errors.New("not a regular file")
	ErrEmptyFile          = errors.New("file is empty")
	ErrTooLarge           = errors.New("file is too big")
	ErrShortRead          = errors.New("file size changed while reading")
	ErrMalformedXML       = errors.New("malformed xml")
	ErrRootMismatch       = errors.New("unrecognized format")
	ErrMissingCoordinates = errors.New("missing coordinate attributes")
	ErrMissingTimestamp   = errors.New("missing timestamp")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidElevation   = errors.New("invalid elevation")
	ErrInvalidNumber      = errors.New("invalid number")
)

// Error is returned by every stage of a load. Track, Segment and Point are
// zero-based positions of the offending trkpt, or -1 when not applicable.
type Error struct {
	Kind    ErrorKind
	Path    string
	Track   int
	Segment int
	Point   int
	Err     error
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Track: -1, Segment: -1, Point: -1, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("gpx")
	if e.Path != "" {
		fmt.Fprintf(&b, ": '%s'", e.Path)
	}
	if e.Track >= 0 {
		fmt.Fprintf(&b, ": track %d", e.Track+1)
		if e.Segment >= 0 {
			fmt.Fprintf(&b, " segment %d", e.Segment+1)
		}
		if e.Point >= 0 {
			fmt.Fprintf(&b, " point %d", e.Point+1)
		}
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the ErrorKind carried by err, or 0 if err is not a load error.
func KindOf(err error) ErrorKind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return 0
}
