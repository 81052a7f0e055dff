// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source maps publisher hints onto the closed set of academic
// sources the pipeline knows how to extract from. A hint can be a URL, a
// free-text publisher name, or the 2-digit code used as the cache filename
// suffix. Classification happens once per row; all downstream logic
// switches on the Source enum, never on raw strings.
package source

import "strings"

// Source identifies an academic publisher or database platform.
type Source int

const (
	Unknown Source = iota
	IEEE
	ACM
	ScienceDirect
	SpringerLink
	Scopus
	ScopusSignedIn
	WoS
	PubMedCentral
	ArXiv
	DOIUnresolved
)

// names are the display names, indexed by Source.
var names = [...]string{
	Unknown:        "unknown",
	IEEE:           "IEEE",
	ACM:            "ACM",
	ScienceDirect:  "ScienceDirect",
	SpringerLink:   "SpringerLink",
	Scopus:         "Scopus",
	ScopusSignedIn: "ScopusSignedIn",
	WoS:            "WoS",
	PubMedCentral:  "PubMedCentral",
	ArXiv:          "arXiv",
	DOIUnresolved:  "DOI",
}

func (s Source) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// codes is the fixed bidirectional table of 2-digit cache-file suffixes.
// The assignment is a filename convention shared with historical caches
// and must not be reordered.
var codes = map[Source]string{
	IEEE:           "00",
	ACM:            "01",
	ScienceDirect:  "02",
	SpringerLink:   "03",
	Scopus:         "04",
	ScopusSignedIn: "05",
	WoS:            "06",
	PubMedCentral:  "07",
	ArXiv:          "08",
	DOIUnresolved:  "09",
}

var byCode = func() map[string]Source {
	m := make(map[string]Source, len(codes))
	for s, c := range codes {
		m[c] = s
	}
	return m
}()

// Code returns the 2-digit cache-file suffix for the source, or "" for Unknown.
func (s Source) Code() string {
	return codes[s]
}

// FromCode resolves a 2-digit cache code back to its source.
func FromCode(code string) (Source, bool) {
	s, ok := byCode[code]
	return s, ok
}

// All lists every known source in code order.
func All() []Source {
	return []Source{
		IEEE, ACM, ScienceDirect, SpringerLink, Scopus,
		ScopusSignedIn, WoS, PubMedCentral, ArXiv, DOIUnresolved,
	}
}

// domains maps publisher host substrings to sources.
var domains = []struct {
	substr string
	src    Source
}{
	{"sciencedirect.com", ScienceDirect},
	{"link.springer.com", SpringerLink},
	{"dl.acm.org", ACM},
	{"ieeexplore.ieee.org", IEEE},
	{"scopus.com", Scopus},
	{"arxiv.org", ArXiv},
	{"pubmed.ncbi.nlm.nih.gov", PubMedCentral},
	{"doi.org", DOIUnresolved},
}

// FromName resolves a display name back to its source, case-insensitively.
func FromName(name string) (Source, bool) {
	for _, s := range All() {
		if strings.EqualFold(name, s.String()) {
			return s, true
		}
	}
	return Unknown, false
}

// FromURL classifies a link by publisher domain substring.
func FromURL(rawURL string) (Source, bool) {
	lower := strings.ToLower(rawURL)
	for _, d := range domains {
		if strings.Contains(lower, d.substr) {
			return d.src, true
		}
	}
	return Unknown, false
}

// publishers maps known publisher-name substrings (lowercase) to sources.
// Ordered so longer, more specific names are tried first.
var publishers = []struct {
	substr string
	src    Source
}{
	{"association for computing machinery", ACM},
	{"institute of electrical and electronics engineers", IEEE},
	{"academic press", ScienceDirect},
	{"elsevier", ScienceDirect},
	{"springer", SpringerLink},
	{"icst", ACM},
	{"ieee", IEEE},
	{"acm", ACM},
}

// FromPublisher classifies a free-text publisher string, case-insensitively.
func FromPublisher(text string) (Source, bool) {
	lower := strings.ToLower(text)
	for _, p := range publishers {
		if strings.Contains(lower, p.substr) {
			return p.src, true
		}
	}
	return Unknown, false
}

// Classify resolves any hint (2-digit code, URL, or publisher text) to a
// source. It returns ok=false only when nothing matches; callers keep the
// raw hint in that case so no information is lost.
func Classify(hint string) (Source, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Unknown, false
	}
	if s, ok := FromCode(hint); ok {
		return s, true
	}
	if s, ok := FromURL(hint); ok {
		return s, true
	}
	return FromPublisher(hint)
}

// CanonicalPublisher returns the display name of the classified source, or
// the input unchanged when no source matches. Best-effort classify, never
// lose data: an unrecognized publisher string is still worth displaying.
func CanonicalPublisher(text string) string {
	if s, ok := FromPublisher(text); ok {
		return s.String()
	}
	return text
}
