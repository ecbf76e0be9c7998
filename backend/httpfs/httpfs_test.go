package httpfs_test

import (
	stdzip "archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobeaver/chainkit"
	"github.com/gobeaver/chainkit/backend/httpfs"
	zipbackend "github.com/gobeaver/chainkit/backend/zip"
)

// hostPath strips the scheme prefix from a test server URL so it can be used
// as a hop path.
func hostPath(serverURL, suffix string) string {
	return strings.TrimPrefix(serverURL, "http://") + suffix
}

func TestOpen(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/data/file.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("served over http"))
	}))
	defer server.Close()

	a := httpfs.New("http", httpfs.WithUserAgent("chainkit-test/1.0"))

	rc, err := a.Open(context.Background(), hostPath(server.URL, "/data/file.txt"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	buf.ReadFrom(rc)
	if buf.String() != "served over http" {
		t.Errorf("read %q, want %q", buf.String(), "served over http")
	}
	if gotUserAgent != "chainkit-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, "chainkit-test/1.0")
	}
}

func TestOpenNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	a := httpfs.New("http")

	_, err := a.Open(context.Background(), hostPath(server.URL, "/missing"))
	if !chainkit.IsNotExist(err) {
		t.Errorf("Open = %v, want not-exist", err)
	}
}

func TestOpenServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	a := httpfs.New("http")

	_, err := a.Open(context.Background(), hostPath(server.URL, "/whatever"))
	if err == nil {
		t.Fatal("Open succeeded on a 500 response")
	}
	if chainkit.IsNotExist(err) {
		t.Errorf("Open = %v, want a non not-exist error", err)
	}
}

func TestZipOverHTTP(t *testing.T) {
	var zipBuf bytes.Buffer
	w := stdzip.NewWriter(&zipBuf)
	f, err := w.Create("report.csv")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte("a,b\n1,2\n"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipBuf.Bytes())
	}))
	defer server.Close()

	reg := chainkit.NewRegistry()
	reg.Register("http", httpfs.New("http"))
	reg.Register("zip", zipbackend.New())
	r := chainkit.New(reg)

	locator := "zip://report.csv::http://" + hostPath(server.URL, "/bundle.zip")
	data, err := r.ReadAll(context.Background(), locator)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("read %q, want %q", data, "a,b\n1,2\n")
	}
}

func TestListAndRemoveUnsupported(t *testing.T) {
	a := httpfs.New("http")
	if _, err := a.List(context.Background(), "example.com/dir"); !chainkit.IsNotSupported(err) {
		t.Errorf("List = %v, want not-supported", err)
	}
	if err := a.Remove(context.Background(), "example.com/f"); !chainkit.IsNotSupported(err) {
		t.Errorf("Remove = %v, want not-supported", err)
	}
}
