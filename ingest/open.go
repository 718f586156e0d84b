package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// readCloser closes a decompressor and the file under it, innermost last.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path, decompressing .gz, .bz2 and .xz files on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open: %w", err)
	}

	var r io.Reader
	var closers []io.Closer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("ingest: gzip %s: %w", path, err)
		}
		r, closers = zr, []io.Closer{zr}
	case ".bz2":
		zr, err := bzip2.NewReader(f, nil)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("ingest: bzip2 %s: %w", path, err)
		}
		r, closers = zr, []io.Closer{zr}
	case ".xz":
		zr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("ingest: xz %s: %w", path, err)
		}
		r = zr
	default:
		r = f
	}
	return &readCloser{Reader: r, closers: append(closers, f)}, nil
}

// ReadFile opens and reads the sequence stored at path.
func ReadFile(path string, opts Options) (*Sequence, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	seq, err := Read(rc, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}
