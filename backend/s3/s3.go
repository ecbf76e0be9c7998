// Package s3 implements a chainkit backend over Amazon S3 (or any
// S3-compatible object store). It is the usual outermost hop for archives
// kept in a bucket:
//
//	zip://inner.png::s3://data/archives/bundle.zip
//
// The path of an s3 hop is the object key, relative to the adapter's
// optional prefix.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gobeaver/chainkit"
)

// Adapter provides an S3 implementation of chainkit.Backend. It also
// implements chainkit.Writer.
type Adapter struct {
	client *s3.Client
	bucket string
	prefix string
}

// AdapterOption is a function that configures the S3 Adapter
type AdapterOption func(*Adapter)

// WithPrefix sets the prefix for S3 objects
func WithPrefix(prefix string) AdapterOption {
	return func(a *Adapter) {
		// Ensure prefix ends with a slash if it's not empty
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		a.prefix = prefix
	}
}

// New creates a new S3 backend
func New(client *s3.Client, bucket string, options ...AdapterOption) *Adapter {
	adapter := &Adapter{
		client: client,
		bucket: bucket,
	}

	for _, option := range options {
		option(adapter)
	}

	return adapter
}

func (a *Adapter) key(p string) string {
	return path.Join(a.prefix, strings.TrimPrefix(p, "/"))
}

// Open implements chainkit.Backend
func (a *Adapter) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(filePath)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, &chainkit.PathError{Op: "open", Path: filePath, Err: chainkit.ErrNotExist}
		}
		return nil, &chainkit.PathError{Op: "open", Path: filePath, Err: err}
	}
	return out.Body, nil
}

// List implements chainkit.Backend. It lists the objects and common
// prefixes directly under the path, treating "/" as the delimiter.
func (a *Adapter) List(ctx context.Context, dirPath string) ([]chainkit.EntryInfo, error) {
	prefix := a.key(dirPath)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if prefix == "." {
		prefix = ""
	}

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(a.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []chainkit.EntryInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &chainkit.PathError{Op: "list", Path: dirPath, Err: err}
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, chainkit.EntryInfo{
				Name:  name,
				Path:  strings.TrimPrefix(aws.ToString(cp.Prefix), a.prefix),
				IsDir: true,
			})
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			if name == "" {
				continue
			}
			entry := chainkit.EntryInfo{
				Name: name,
				Path: strings.TrimPrefix(key, a.prefix),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				entry.ModTime = *obj.LastModified
			}
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, filePath string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(filePath)),
	})
	if err != nil {
		return &chainkit.PathError{Op: "remove", Path: filePath, Err: err}
	}
	return nil
}

// Write implements chainkit.Writer
func (a *Adapter) Write(ctx context.Context, filePath string, content io.Reader) error {
	// PutObject needs a seekable body with a known length; buffer
	// anything that is not already one.
	var body io.Reader
	var contentLength int64

	switch r := content.(type) {
	case *bytes.Reader:
		contentLength = int64(r.Len())
		body = r
	case *strings.Reader:
		contentLength = int64(r.Len())
		body = r
	default:
		data, err := io.ReadAll(content)
		if err != nil {
			return &chainkit.PathError{Op: "write", Path: filePath, Err: err}
		}
		contentLength = int64(len(data))
		body = bytes.NewReader(data)
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(a.key(filePath)),
		Body:          body,
		ContentLength: aws.Int64(contentLength),
	})
	if err != nil {
		return &chainkit.PathError{Op: "write", Path: filePath, Err: err}
	}
	return nil
}
