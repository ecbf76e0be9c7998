package chainkit

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
)

// globBackend is a kvBackend that can also expand patterns over its keys.
type globBackend struct {
	*kvBackend
}

func (b *globBackend) Expand(ctx context.Context, pattern string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var matches []string
	for p := range b.files {
		ok, err := matchSimple(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (b *globBackend) ExpandWithin(ctx context.Context, outer io.Reader, pattern string) ([]string, error) {
	data, err := io.ReadAll(outer)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, line := range strings.Split(string(data), "\n") {
		key, _, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		ok, err := matchSimple(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, key)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// matchSimple supports only a trailing "*.suffix" pattern; enough for these
// tests without pulling the glob backends into the core package.
func matchSimple(pattern, name string) (bool, error) {
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(name, pattern[1:]), nil
	}
	return pattern == name, nil
}

func newExpandResolver(counter *resourceCounter) (*Resolver, *globBackend) {
	gb := &globBackend{kvBackend: newKVBackend(counter)}
	reg := NewRegistry()
	reg.Register("kv", gb)
	reg.Register("section", &sectionBackend{counter: counter})
	return New(reg), gb
}

func TestHasWildcard(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"inner.png", false},
		{"*.png", true},
		{"img/?.png", true},
		{"[ab].png", true},
		{"{a,b}.png", true},
		{"plain/dir/file.txt", false},
	}
	for _, tt := range tests {
		if got := HasWildcard(tt.path); got != tt.want {
			t.Errorf("HasWildcard(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExpandSingleHop(t *testing.T) {
	counter := &resourceCounter{}
	r, gb := newExpandResolver(counter)
	gb.set("b.png", "x")
	gb.set("a.png", "x")
	gb.set("c.txt", "x")

	got, err := r.Expand(context.Background(), "kv://*.png")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := []string{"kv://a.png", "kv://b.png"}
	if len(got) != len(want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandNested(t *testing.T) {
	counter := &resourceCounter{}
	r, gb := newExpandResolver(counter)
	gb.set("bundle", "b.png=2\na.png=1\nnotes.txt=3")

	// The container is addressed through an outer hop; matches become full
	// locators resolvable on their own.
	got, err := r.Expand(context.Background(), "kv://*.png::kv://bundle")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := []string{"kv://a.png::kv://bundle", "kv://b.png::kv://bundle"}
	if len(got) != len(want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if counter.net() != 0 {
		t.Errorf("net open resources = %d, want 0", counter.net())
	}
}

func TestExpandPassthrough(t *testing.T) {
	counter := &resourceCounter{}
	r, _ := newExpandResolver(counter)

	locator := "section://inner::kv://outer"
	got, err := r.Expand(context.Background(), locator)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(got) != 1 || got[0] != locator {
		t.Errorf("Expand(%q) = %v, want the locator unchanged", locator, got)
	}
}

func TestExpandNotSupported(t *testing.T) {
	counter := &resourceCounter{}
	reg := NewRegistry()
	reg.Register("kv", newKVBackend(counter)) // plain kv has no Expander
	r := New(reg)

	_, err := r.Expand(context.Background(), "kv://*.png")
	if !IsNotSupported(err) {
		t.Errorf("Expand = %v, want not-supported", err)
	}
}
