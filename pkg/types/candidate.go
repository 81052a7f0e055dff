// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MetadataCandidate is a transient metadata record produced by one
// extraction attempt (cached page, live fetch, or fallback search). It is
// owned by the orchestrator for the duration of a single reconciliation
// attempt: validated against the row title, merged into the row on
// acceptance, and discarded afterwards. Empty string means "not found".
//
// Multi-valued fields (Authors, Keywords, References) are flattened
// upstream into semicolon-joined strings.
type MetadataCandidate struct {
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Venue      string `json:"venue,omitempty" yaml:"venue,omitempty"`
	Authors    string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Abstract   string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keywords   string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	References string `json:"references,omitempty" yaml:"references,omitempty"`
	Pages      string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Year       string `json:"year,omitempty" yaml:"year,omitempty"`
	Bibtex     string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	Link       string `json:"link,omitempty" yaml:"link,omitempty"`
	Publisher  string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// IsEmpty reports whether the candidate carries no metadata at all.
func (c MetadataCandidate) IsEmpty() bool {
	return c == MetadataCandidate{}
}
