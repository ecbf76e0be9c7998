// Package compress implements chainkit container backends for single-stream
// compression formats: gzip, zstd and lz4. A compression hop addresses the
// whole decompressed stream, so its path is empty:
//
//	gzip://::local://notes.txt.gz
//	tar://a.txt::zstd://::s3://bucket/bundle.tar.zst
package compress

import (
	"context"
	"fmt"
	"io"

	"github.com/gobeaver/chainkit"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm selects the compression format an Adapter decodes.
type Algorithm string

const (
	Gzip Algorithm = "gzip"
	Zstd Algorithm = "zstd"
	LZ4  Algorithm = "lz4"
)

// Adapter decompresses the outer hop's stream. Direct Open/List/Remove are
// unsupported: a compression hop always reads through a container hop.
type Adapter struct {
	algorithm Algorithm
}

// New creates a decompression backend for the given algorithm.
func New(algorithm Algorithm) (*Adapter, error) {
	switch algorithm {
	case Gzip, Zstd, LZ4:
		return &Adapter{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compression algorithm: %s", chainkit.ErrNotSupported, algorithm)
	}
}

// Algorithm returns the algorithm the adapter decodes.
func (a *Adapter) Algorithm() Algorithm {
	return a.algorithm
}

// Open implements chainkit.Backend
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotSupported}
}

// List implements chainkit.Backend
func (a *Adapter) List(ctx context.Context, path string) ([]chainkit.EntryInfo, error) {
	return nil, &chainkit.PathError{Op: "list", Path: path, Err: chainkit.ErrNotSupported}
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, path string) error {
	return &chainkit.PathError{Op: "remove", Path: path, Err: chainkit.ErrNotSupported}
}

// OpenWithin implements chainkit.ContainerOpener. The path is ignored apart
// from error reporting; the whole outer stream is the container's single
// entry.
func (a *Adapter) OpenWithin(ctx context.Context, outer io.Reader, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	switch a.algorithm {
	case Gzip:
		r, err := gzip.NewReader(outer)
		if err != nil {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
		}
		return r, nil
	case Zstd:
		r, err := zstd.NewReader(outer)
		if err != nil {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
		}
		return r.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(outer)), nil
	default:
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotSupported}
	}
}
