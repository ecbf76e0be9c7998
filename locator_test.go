package chainkit

import (
	"errors"
	"testing"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		want    []Hop
	}{
		{
			name:    "single segment",
			locator: "local://archive.zip",
			want:    []Hop{{Scheme: "local", Path: "archive.zip"}},
		},
		{
			name:    "single segment with nested path",
			locator: "s3://bucket/data/archive.zip",
			want:    []Hop{{Scheme: "s3", Path: "bucket/data/archive.zip"}},
		},
		{
			name:    "two segments",
			locator: "zip://inner.png::local://archive.zip",
			want: []Hop{
				{Scheme: "local", Path: "archive.zip"},
				{Scheme: "zip", Path: "inner.png"},
			},
		},
		{
			name:    "three segments",
			locator: "tar://a.txt::gzip://::local://a.tar.gz",
			want: []Hop{
				{Scheme: "local", Path: "a.tar.gz"},
				{Scheme: "gzip", Path: ""},
				{Scheme: "tar", Path: "a.txt"},
			},
		},
		{
			name:    "empty path",
			locator: "gzip://",
			want:    []Hop{{Scheme: "gzip", Path: ""}},
		},
		{
			name:    "wildcards pass through verbatim",
			locator: "zip://**/*.png::local://archive.zip",
			want: []Hop{
				{Scheme: "local", Path: "archive.zip"},
				{Scheme: "zip", Path: "**/*.png"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hops, err := ParseLocator(tt.locator)
			if err != nil {
				t.Fatalf("ParseLocator(%q) failed: %v", tt.locator, err)
			}
			if len(hops) != len(tt.want) {
				t.Fatalf("got %d hops, want %d", len(hops), len(tt.want))
			}
			for i := range hops {
				if hops[i] != tt.want[i] {
					t.Errorf("hop %d = %+v, want %+v", i, hops[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseLocatorMalformed(t *testing.T) {
	tests := []struct {
		name    string
		locator string
	}{
		{name: "no scheme separator", locator: "not-a-valid-string"},
		{name: "empty string", locator: ""},
		{name: "empty scheme", locator: "://path"},
		{name: "one bad segment", locator: "zip://inner.png::plain-path"},
		{name: "empty segment", locator: "::local://archive.zip"},
		{name: "bare separator", locator: "::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocator(tt.locator)
			if err == nil {
				t.Fatalf("ParseLocator(%q) succeeded, want malformed error", tt.locator)
			}
			if !IsMalformed(err) {
				t.Errorf("IsMalformed(%v) = false, want true", err)
			}
			var locErr *LocatorError
			if !errors.As(err, &locErr) {
				t.Errorf("error %v is not a *LocatorError", err)
			} else if locErr.Locator != tt.locator {
				t.Errorf("LocatorError.Locator = %q, want %q", locErr.Locator, tt.locator)
			}
		})
	}
}

func TestLocatorRoundTrip(t *testing.T) {
	locators := []string{
		"local://archive.zip",
		"zip://inner.png::local://archive.zip",
		"zip://img/a.png::s3://bucket/data.zip",
		"tar://a.txt::gzip://::local://a.tar.gz",
		"zip://*.png::zip://nested.zip::https://example.com/outer.zip",
	}

	for _, locator := range locators {
		hops, err := ParseLocator(locator)
		if err != nil {
			t.Fatalf("ParseLocator(%q) failed: %v", locator, err)
		}
		if got := FormatLocator(hops); got != locator {
			t.Errorf("FormatLocator(ParseLocator(%q)) = %q", locator, got)
		}
	}
}

func TestHopString(t *testing.T) {
	hop := Hop{Scheme: "zip", Path: "inner.png"}
	if got := hop.String(); got != "zip://inner.png" {
		t.Errorf("Hop.String() = %q, want %q", got, "zip://inner.png")
	}

	empty := Hop{Scheme: "gzip"}
	if got := empty.String(); got != "gzip://" {
		t.Errorf("Hop.String() = %q, want %q", got, "gzip://")
	}
}
