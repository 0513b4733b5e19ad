package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/five82/backoffice/internal/api"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"trimmed", "  hello  ", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"no_limit", "hello", 0, "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("a/b/c/d/e", 7)
	if got == "a/b/c/d/e" {
		t.Fatalf("expected truncation")
	}
	if len([]rune(got)) > 7 {
		t.Fatalf("got %q (%d runes), want <=7", got, len([]rune(got)))
	}
}

func TestCellPadsToWidth(t *testing.T) {
	if got := cell("ab", 5); got != "ab   " {
		t.Fatalf("cell = %q, want %q", got, "ab   ")
	}
	if got := cell("abcdefgh", 6); got != "abc..." {
		t.Fatalf("cell = %q, want %q", got, "abc...")
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("a\n  b\tc "); got != "a b c" {
		t.Fatalf("singleLine = %q, want %q", got, "a b c")
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "record"); got != "1 record" {
		t.Fatalf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "record"); got != "3 records" {
		t.Fatalf("pluralize(3) = %q", got)
	}
}

func TestBulkFailureText(t *testing.T) {
	err := errors.Join(fmt.Errorf("a"), fmt.Errorf("b"))
	if got := bulkFailureText(2, err); got != "2 records deleted, 2 failed" {
		t.Fatalf("bulkFailureText = %q", got)
	}
	if got := bulkFailureText(0, errors.New("x")); got != "0 records deleted, 1 failed" {
		t.Fatalf("bulkFailureText single = %q", got)
	}
}

func TestClassifyError(t *testing.T) {
	cases := map[string]string{
		"dial tcp: connection refused": "OFFLINE",
		"context deadline exceeded":    "TIMEOUT",
		"boom":                         "ERROR",
	}
	for in, want := range cases {
		if got := classifyError(errors.New(in)); got != want {
			t.Fatalf("classifyError(%q) = %q, want %q", in, got, want)
		}
	}
	wrapped := fmt.Errorf("load blogs: %w", &api.StatusError{Method: "GET", Path: "/api/blogs", Code: 502})
	if got := classifyError(wrapped); got != "HTTP 502" {
		t.Fatalf("classifyError(status) = %q, want HTTP 502", got)
	}
}
