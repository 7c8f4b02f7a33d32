// Package gpx loads the track points of a GPX file.
//
// A load reads the whole file into memory, parses it into an element tree and
// extracts every gpx/trk/trkseg/trkpt in document order. Any failure aborts the
// load and no partial result is returned. Errors are *Error values classified
// by ErrorKind.
package gpx

import (
	"errors"
)

// Load reads, parses and extracts the GPX file at path.
func Load(path string, opts ...Option) (*Collection, error) {
	o := newOptions(opts)

	var (
		data []byte
		err  error
	)
	if o.Root != nil {
		data, err = ReadFileIn(o.Root, path, o.MaxFileSize)
	} else {
		data, err = ReadFile(path, o.MaxFileSize)
	}
	if err != nil {
		return nil, withPath(err, path)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, withPath(err, path)
	}

	c, err := ExtractAll(doc, o)
	if err != nil {
		return nil, withPath(err, path)
	}
	c.size = int64(len(data))
	return c, nil
}

func withPath(err error, path string) error {
	var gerr *Error
	if errors.As(err, &gerr) {
		gerr.Path = path
	}
	return err
}
