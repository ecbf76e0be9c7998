// Package chainkit resolves chained resource locators: compound addresses
// that identify a file nested inside a container that itself lives on some
// other store, such as a PNG inside a ZIP archive stored in an S3 bucket.
//
// # Locators
//
// A locator chains one segment per nesting level with "::". Each segment has
// the form scheme://path. The rightmost segment is the outermost, physically
// reachable resource; the leftmost is the resource the caller actually wants:
//
//	local://archive.zip                      // plain file on disk
//	zip://inner.png::local://archive.zip     // entry inside a local archive
//	zip://img/a.png::s3://bucket/data.zip    // entry inside an archive on S3
//	tar://a.txt::gzip://::local://a.tar.gz   // tar entry behind a gzip hop
//
// [ParseLocator] splits a locator into [Hop] values, outermost first, and
// [FormatLocator] joins them back.
//
// # Backends
//
// Each scheme maps to a [Backend] registered in a [Registry]. A backend
// opens, lists and removes paths for its scheme. Backends may implement
// optional capability interfaces, checked by type assertion:
//
//	// Open a path inside another backend's byte stream
//	if co, ok := b.(chainkit.ContainerOpener); ok {
//	    rc, err := co.OpenWithin(ctx, outer, "inner.png")
//	}
//
//	// Expand wildcard patterns into concrete paths
//	if ex, ok := b.(chainkit.Expander); ok {
//	    paths, err := ex.Expand(ctx, "*.png")
//	}
//
// Shipped backends:
//
//   - Local filesystem (github.com/gobeaver/chainkit/backend/local)
//   - In-memory (github.com/gobeaver/chainkit/backend/memory)
//   - ZIP archives (github.com/gobeaver/chainkit/backend/zip)
//   - Tar archives (github.com/gobeaver/chainkit/backend/tar)
//   - gzip/zstd/lz4 streams (github.com/gobeaver/chainkit/backend/compress)
//   - Amazon S3 (github.com/gobeaver/chainkit/backend/s3)
//   - HTTP(S), read-only (github.com/gobeaver/chainkit/backend/httpfs)
//
// Importing a backend package registers its factory; [BuildRegistry] then
// constructs a registry from a [Config]:
//
//	import (
//	    "github.com/gobeaver/chainkit"
//	    _ "github.com/gobeaver/chainkit/backend/local"
//	    _ "github.com/gobeaver/chainkit/backend/zip"
//	)
//
//	cfg, _ := chainkit.GetConfig()
//	reg, _ := chainkit.BuildRegistry(cfg)
//	r := chainkit.New(reg)
//
// Backends can also be registered directly, which keeps tests free of
// ambient state:
//
//	reg := chainkit.NewRegistry()
//	reg.Register("local", localBackend)
//	reg.Register("zip", zipBackend)
//
// # Chained resolution
//
// [Resolver.Open] resolves a locator into a single [Stream]. The outermost
// hop is opened through its backend's Open; every subsequent hop is opened
// through its backend's OpenWithin, reading the container format from the
// previous hop's stream rather than fetching the resource again. Hops open
// strictly in order, and on any failure every stream opened so far is closed
// in reverse order before the error returns. Closing the returned Stream
// closes the whole chain.
//
//	stream, err := r.Open(ctx, "zip://inner.png::local://archive.zip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//	data, err := io.ReadAll(stream)
//
// Convenience helpers cover the common one-shot operations: [Resolver.ReadAll],
// [Resolver.List], [Resolver.Remove], [Resolver.Copy], [Resolver.Expand] and
// [Resolver.Checksum].
//
// # Errors
//
// Failures carry a typed cause and, for chain failures, the failing hop:
//
//	_, err := r.Open(ctx, "zip://missing.png::local://archive.zip")
//	if chainkit.IsHopNotFound(err) {
//	    var hopErr *chainkit.HopError
//	    errors.As(err, &hopErr)
//	    fmt.Printf("hop %d failed: %s://%s\n", hopErr.Index, hopErr.Scheme, hopErr.Path)
//	}
//
// [IsMalformed], [IsUnknownScheme] and [IsHopNotFound] classify the three
// terminal failure modes; none of them is retried internally.
//
// # Concurrency
//
// A Resolver is safe for concurrent use. Independent resolutions share only
// the registry, which tolerates concurrent reads; registration takes a write
// lock and simply replaces the entry for a scheme.
package chainkit
