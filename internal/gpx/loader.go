package gpx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultMaxFileSize is the largest file ReadFile accepts unless told otherwise.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

type fileSystem interface {
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (*os.File, error)
}

type osFS struct{}

func (osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (osFS) Open(name string) (*os.File, error)     { return os.Open(name) }

// ReadFile reads the regular file at path into memory. The path itself must be a
// regular file: symlinks are not followed. A maxSize <= 0 selects
// DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	return readFile(osFS{}, path, maxSize)
}

// ReadFileIn is ReadFile for a name resolved inside root. Names that leave the
// root, directly or through a symlinked directory, fail as filesystem errors.
func ReadFileIn(root *os.Root, name string, maxSize int64) ([]byte, error) {
	return readFile(root, name, maxSize)
}

func readFile(fsys fileSystem, path string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := fsys.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindFilesystem, fmt.Errorf("does not exist: %w", err))
		}
		return nil, newError(KindFilesystem, fmt.Errorf("failed to stat: %w", err))
	}
	if !info.Mode().IsRegular() {
		return nil, newError(KindFilesystem, fmt.Errorf("%w (%s)", ErrNotRegular, info.Mode().Type()))
	}

	size := info.Size()
	if size == 0 {
		return nil, newError(KindFilesystem, ErrEmptyFile)
	}
	if size > maxSize {
		return nil, newError(KindResourceLimit, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, size, maxSize))
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, newError(KindFilesystem, fmt.Errorf("cannot open: %w", err))
	}
	defer f.Close()

	// One extra byte detects a file that grew after the stat.
	buf := make([]byte, size+1)
	n, err := io.ReadFull(f, buf)
	switch {
	case err == nil:
		return nil, newError(KindFilesystem, fmt.Errorf("%w: more than %d bytes", ErrShortRead, size))
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		if int64(n) != size {
			return nil, newError(KindFilesystem, fmt.Errorf("%w: read %d of %d bytes", ErrShortRead, n, size))
		}
	default:
		return nil, newError(KindFilesystem, fmt.Errorf("failed to read: %w", err))
	}

	return buf[:n], nil
}
