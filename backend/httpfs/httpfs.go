// Package httpfs implements a read-only chainkit backend over HTTP(S). The
// hop's path is everything after the scheme separator, so ordinary URLs work
// unchanged as outermost hops:
//
//	zip://inner.png::https://example.com/archives/bundle.zip
//
// Listing and removal are not supported; plain HTTP offers neither.
package httpfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gobeaver/chainkit"
)

// Adapter provides a read-only HTTP implementation of chainkit.Backend.
type Adapter struct {
	scheme    string
	client    *http.Client
	userAgent string
}

// AdapterOption is a function that configures the HTTP Adapter
type AdapterOption func(*Adapter)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) AdapterOption {
	return func(a *Adapter) {
		a.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(userAgent string) AdapterOption {
	return func(a *Adapter) {
		a.userAgent = userAgent
	}
}

// New creates an HTTP backend for the given scheme ("http" or "https").
func New(scheme string, options ...AdapterOption) *Adapter {
	adapter := &Adapter{
		scheme: scheme,
		client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, option := range options {
		option(adapter)
	}

	return adapter
}

// Open implements chainkit.Backend. The path is the URL without its scheme
// prefix; a 404 maps to ErrNotExist.
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	url := a.scheme + "://" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotExist}
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, &chainkit.PathError{
			Op:   "open",
			Path: path,
			Err:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	return resp.Body, nil
}

// List implements chainkit.Backend
func (a *Adapter) List(ctx context.Context, path string) ([]chainkit.EntryInfo, error) {
	return nil, &chainkit.PathError{Op: "list", Path: path, Err: chainkit.ErrNotSupported}
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, path string) error {
	return &chainkit.PathError{Op: "remove", Path: path, Err: chainkit.ErrNotSupported}
}
