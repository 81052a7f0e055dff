// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestEscapeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "study of ai ml", "study of ai ml"},
		{"slash", "tcp/ip networking", "tcp%2fip networking"},
		{"colon and question", "what: why?", "what%3a why%3f"},
		{"quote star pipe", `a"b*c|d`, "a%22b%2ac%7cd"},
		{"backslash and angle brackets", `a\b<c>d`, "a%5cb%3cc%3ed"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeTitle(tt.input)
			if got != tt.want {
				t.Errorf("EscapeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeTitleTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := EscapeTitle(long)
	if len(got) != 200 {
		t.Errorf("len(EscapeTitle(300 chars)) = %d, want 200", len(got))
	}
}

func TestPutAndLookup(t *testing.T) {
	s := newTestStore(t)

	content := []byte("<html><head></head></html>")
	path, err := s.Put("study of systems", "01", KindHTML, content)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if path == "" {
		t.Fatal("Put returned empty path for a new entry")
	}

	entry, ok, err := s.Lookup("study of systems", "01")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("Lookup missed a just-written entry")
	}
	if entry.Kind != KindHTML {
		t.Errorf("Kind = %q, want %q", entry.Kind, KindHTML)
	}
	if string(entry.Content) != string(content) {
		t.Errorf("Content = %q, want %q", entry.Content, content)
	}
}

func TestLookupDistinguishesSources(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Put("same title", "01", KindHTML, []byte("acm page")); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Lookup("same title", "00"); ok {
		t.Error("lookup for source 00 returned the entry cached under 01")
	}
	if _, ok, _ := s.Lookup("same title", "01"); !ok {
		t.Error("lookup for source 01 missed its own entry")
	}
}

func TestPutIsImmutable(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Put("a title", "02", KindHTML, []byte("first")); err != nil {
		t.Fatal(err)
	}
	path, err := s.Put("a title", "02", KindHTML, []byte("second"))
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if path != "" {
		t.Error("second Put wrote a new file for an existing entry")
	}

	entry, ok, _ := s.Lookup("a title", "02")
	if !ok || string(entry.Content) != "first" {
		t.Errorf("cached content changed: %q", entry.Content)
	}
}

func TestLookupRequiresExactStem(t *testing.T) {
	s := newTestStore(t)

	// Underscores survive normalization, so one title can end with another.
	if _, err := s.Put("study of foo_bar naming", "01", KindHTML, []byte("long-title page")); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Lookup("bar naming", "01"); ok {
		t.Error("lookup matched an entry whose title merely ends with the query")
	}
	entry, ok, err := s.Lookup("study of foo_bar naming", "01")
	if err != nil || !ok {
		t.Fatalf("Lookup = %v, %v; want hit for the full title", ok, err)
	}
	if string(entry.Content) != "long-title page" {
		t.Errorf("Content = %q", entry.Content)
	}
}

func TestLookupIgnoresDatePrefix(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC) }

	if _, err := s.Put("old title", "03", KindBibTeX, []byte("@article{x, title={Old}}")); err != nil {
		t.Fatal(err)
	}

	// A later run with a different clock still finds the historical entry.
	s.now = time.Now
	entry, ok, err := s.Lookup("old title", "03")
	if err != nil || !ok {
		t.Fatalf("Lookup = %v, %v; want hit", ok, err)
	}
	if entry.Kind != KindBibTeX {
		t.Errorf("Kind = %q, want %q", entry.Kind, KindBibTeX)
	}
}

func TestLookupDropsUndecodableBytes(t *testing.T) {
	s := newTestStore(t)

	name := "2020-01-01_" + EscapeTitle("legacy title") + "_00.html"
	raw := append([]byte("latin1 caf"), 0xe9, ' ', 'p', 'a', 'g', 'e')
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	entry, ok, err := s.Lookup("legacy title", "00")
	if err != nil || !ok {
		t.Fatalf("Lookup = %v, %v; want hit", ok, err)
	}
	if !strings.Contains(string(entry.Content), "latin1 caf") {
		t.Errorf("decodable prefix lost: %q", entry.Content)
	}
	if strings.ContainsRune(string(entry.Content), '�') {
		t.Errorf("undecodable byte kept as replacement rune: %q", entry.Content)
	}
}

func TestLookupUnknownExtensionIgnored(t *testing.T) {
	s := newTestStore(t)

	name := "2020-01-01_" + EscapeTitle("pdf title") + "_00.pdf"
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Lookup("pdf title", "00"); ok {
		t.Error("lookup returned an entry with an unknown extension")
	}
}
