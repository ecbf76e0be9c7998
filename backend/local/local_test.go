package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gobeaver/chainkit"
)

func TestWriteAndOpen(t *testing.T) {
	ctx := context.Background()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := a.Write(ctx, "docs/readme.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rc, err := a.Open(ctx, "docs/readme.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("read %q, want %q", data, "hello")
	}
}

func TestOpenMissing(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Open(context.Background(), "nope.txt")
	if !chainkit.IsNotExist(err) {
		t.Errorf("Open = %v, want not-exist", err)
	}
}

func TestPathEscape(t *testing.T) {
	root := t.TempDir()
	secret := filepath.Join(filepath.Dir(root), "secret.txt")
	os.WriteFile(secret, []byte("secret"), 0o644)
	defer os.Remove(secret)

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	// Cleaning pins traversal attempts inside the root, so the path simply
	// does not exist there.
	if _, err := a.Open(context.Background(), "../secret.txt"); err == nil {
		t.Error("Open escaped the backend root")
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a.Write(ctx, "docs/a.txt", strings.NewReader("a"))
	a.Write(ctx, "docs/sub/b.txt", strings.NewReader("b"))

	entries, err := a.List(ctx, "docs")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Name != "a.txt" || entries[0].IsDir {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Name != "sub" || !entries[1].IsDir {
		t.Errorf("entries[1] = %+v, want dir sub", entries[1])
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a.Write(ctx, "doomed.txt", strings.NewReader("x"))

	if err := a.Remove(ctx, "doomed.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := a.Remove(ctx, "doomed.txt"); !chainkit.IsNotExist(err) {
		t.Errorf("second Remove = %v, want not-exist", err)
	}
}

func TestExpand(t *testing.T) {
	ctx := context.Background()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a.Write(ctx, "img/b.png", strings.NewReader("b"))
	a.Write(ctx, "img/a.png", strings.NewReader("a"))
	a.Write(ctx, "img/c.txt", strings.NewReader("c"))

	matches, err := a.Expand(ctx, "img/*.png")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	want := []string{"img/a.png", "img/b.png"}
	if len(matches) != len(want) {
		t.Fatalf("Expand = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("Expand[%d] = %q, want %q", i, matches[i], want[i])
		}
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	token, err := a.Watch(ctx, "*.json")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := a.Write(ctx, "app.json", strings.NewReader("{}")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !token.HasChanged() {
		if time.Now().After(deadline) {
			t.Fatal("token did not change within the deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
