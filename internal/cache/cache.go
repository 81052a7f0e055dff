// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists every fetched publisher page so a title is never
// fetched twice. Entries live in a single directory under the filename
// convention {date}_{escaped-title}_{2-digit-source-code}.{html|bib} and
// are immutable once written: Put never overwrites an existing entry for
// the same title and source. Lookups ignore the date prefix, so pages
// cached by earlier runs keep satisfying later ones.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind distinguishes cached page formats.
type Kind string

const (
	KindHTML   Kind = "html"
	KindBibTeX Kind = "bib"
)

// Entry is one cached page.
type Entry struct {
	Path    string
	Kind    Kind
	Content []byte
}

// Store is a filesystem-backed page cache.
type Store struct {
	dir string
	now func() time.Time
}

// New opens (creating if needed) a cache directory.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// unsafe lists the filesystem-unsafe characters escaped in cache filenames.
const unsafe = `\/:*?"<>|`

// maxStemLen caps the escaped-title portion of a cache filename.
const maxStemLen = 200

// EscapeTitle converts a normalized title into the filename stem used by
// the cache convention: each unsafe character becomes '%' plus its 2-digit
// hex code, and the result is truncated to 200 characters.
func EscapeTitle(normalizedTitle string) string {
	var b strings.Builder
	for _, r := range normalizedTitle {
		if r < 128 && strings.ContainsRune(unsafe, r) {
			fmt.Fprintf(&b, "%%%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	if len(s) > maxStemLen {
		s = s[:maxStemLen]
	}
	return s
}

// dateLen is the length of the filename date prefix.
const dateLen = len("2006-01-02")

// Lookup returns the cached entry for a normalized title and source code,
// or ok=false when none exists. Historical entries may contain undecodable
// bytes; those are dropped rather than failing the row.
func (s *Store) Lookup(normalizedTitle, sourceCode string) (Entry, bool, error) {
	suffix := "_" + EscapeTitle(normalizedTitle) + "_" + sourceCode

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		var kind Kind
		switch ext {
		case ".html":
			kind = KindHTML
		case ".bib":
			kind = KindBibTeX
		default:
			continue
		}
		// Exact stem match after the date prefix. Titles may themselves
		// contain underscores, so suffix matching would let one title's
		// entry satisfy another that ends the same way.
		stem := strings.TrimSuffix(name, ext)
		if len(stem) != dateLen+len(suffix) || stem[dateLen:] != suffix {
			continue
		}

		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return Entry{}, false, fmt.Errorf("reading cache entry %s: %w", name, err)
		}
		// Permissive decode: historical caches mix encodings.
		data = []byte(strings.ToValidUTF8(string(data), ""))
		return Entry{Path: path, Kind: kind, Content: data}, true, nil
	}

	return Entry{}, false, nil
}

// Put stores raw page content under the filename convention. If an entry
// for the same title and source already exists it is kept as-is: entries
// are immutable once the filename is fixed.
func (s *Store) Put(normalizedTitle, sourceCode string, kind Kind, content []byte) (string, error) {
	if _, ok, err := s.Lookup(normalizedTitle, sourceCode); err != nil {
		return "", err
	} else if ok {
		return "", nil
	}

	name := fmt.Sprintf("%s_%s_%s.%s",
		s.now().Format("2006-01-02"), EscapeTitle(normalizedTitle), sourceCode, kind)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing cache entry %s: %w", name, err)
	}
	return path, nil
}
