// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines partial metadata records without clobbering
// already-known values. A field that is populated on the base side is never
// erased by a less-complete incoming result.
//
// Two precedence policies exist for raw field maps. NonNil treats a key
// that is present in the incoming map as authoritative even when its value
// is the empty string; it is appropriate only for payloads where key
// presence is deliberate, such as BibTeX tag maps. NonEmpty also ignores
// empty incoming values and is the canonical policy: all typed merges
// (Candidate, Record) use it, because treating an empty string as "present"
// causes spurious overwrites from half-parsed pages.
package merge

import "github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"

// Policy selects the merge precedence for raw field maps.
type Policy int

const (
	// NonEmpty copies an incoming value only when it is non-empty.
	NonEmpty Policy = iota

	// NonNil copies an incoming value whenever its key is present.
	NonNil
)

// Maps merges incoming into base in place. Under NonEmpty, empty incoming
// values are ignored; under NonNil, any present key wins.
func Maps(base, incoming map[string]string, p Policy) {
	for k, v := range incoming {
		if p == NonEmpty && v == "" {
			continue
		}
		base[k] = v
	}
}

// Candidate merges incoming into base in place under the NonEmpty policy:
// every non-empty incoming field replaces the base field, and empty
// incoming fields leave the base untouched.
func Candidate(base *types.MetadataCandidate, incoming types.MetadataCandidate) {
	fill(&base.Title, incoming.Title)
	fill(&base.Venue, incoming.Venue)
	fill(&base.Authors, incoming.Authors)
	fill(&base.Abstract, incoming.Abstract)
	fill(&base.Keywords, incoming.Keywords)
	fill(&base.References, incoming.References)
	fill(&base.Pages, incoming.Pages)
	fill(&base.Year, incoming.Year)
	fill(&base.Bibtex, incoming.Bibtex)
	fill(&base.DOI, incoming.DOI)
	fill(&base.Source, incoming.Source)
	fill(&base.Link, incoming.Link)
	fill(&base.Publisher, incoming.Publisher)
}

// Record integrates an accepted candidate into a dataset row under the
// NonEmpty policy. The row title is deliberately not replaced: it is the
// matching key the candidate was validated against.
func Record(rec *types.ArticleRecord, c types.MetadataCandidate) {
	fill(&rec.Venue, c.Venue)
	fill(&rec.Authors, c.Authors)
	fill(&rec.Abstract, c.Abstract)
	fill(&rec.Keywords, c.Keywords)
	fill(&rec.References, c.References)
	fill(&rec.Pages, c.Pages)
	fill(&rec.Year, c.Year)
	fill(&rec.Bibtex, c.Bibtex)
	fill(&rec.DOI, c.DOI)
	fill(&rec.Source, c.Source)
	fill(&rec.Link, c.Link)
	fill(&rec.Publisher, c.Publisher)
}

func fill(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
