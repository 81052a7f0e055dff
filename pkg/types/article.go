// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the slr-curator pipeline:
// the uniform ArticleRecord schema, transient MetadataCandidate values
// produced by extractors, and the configuration structs consumed by the
// reconciliation stages.
package types

import "strings"

// Decision is the screening outcome recorded for an article at one phase.
type Decision string

const (
	DecisionUnset            Decision = ""
	DecisionIncluded         Decision = "Included"
	DecisionExcluded         Decision = "Excluded"
	DecisionConflictIncluded Decision = "ConflictIncluded"
	DecisionConflictExcluded Decision = "ConflictExcluded"
)

// ParseDecision maps a raw spreadsheet value to a Decision. Unrecognized
// values map to DecisionUnset so a malformed cell never aborts a row.
func ParseDecision(s string) Decision {
	switch strings.TrimSpace(s) {
	case string(DecisionIncluded):
		return DecisionIncluded
	case string(DecisionExcluded):
		return DecisionExcluded
	case string(DecisionConflictIncluded):
		return DecisionConflictIncluded
	case string(DecisionConflictExcluded):
		return DecisionConflictExcluded
	default:
		return DecisionUnset
	}
}

// Mode records how an article entered the candidate set.
type Mode string

const (
	ModeUnset       Mode = ""
	ModeNewScreen   Mode = "new_screen"
	ModeSnowballing Mode = "snowballing"
)

// ArticleRecord is one row of the uniform schema shared by every dataset.
// Title is the primary matching key and is never empty for a retained
// record; every other field is optional.
type ArticleRecord struct {
	// Project identifies the originating research project.
	Project string `json:"project" yaml:"project"`

	// Title is the article title as imported, before normalization.
	Title string `json:"title" yaml:"title"`

	Abstract   string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keywords   string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Authors    string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Venue      string `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	References string `json:"references,omitempty" yaml:"references,omitempty"`
	Bibtex     string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
	Pages      string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Year       string `json:"year,omitempty" yaml:"year,omitempty"`
	Link       string `json:"link,omitempty" yaml:"link,omitempty"`
	Publisher  string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Source is the 2-digit source code of the hosting platform, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	ScreenedDecision Decision `json:"screened_decision,omitempty" yaml:"screened_decision,omitempty"`
	FinalDecision    Decision `json:"final_decision,omitempty" yaml:"final_decision,omitempty"`
	Mode             Mode     `json:"mode,omitempty" yaml:"mode,omitempty"`

	InclusionCriteria string `json:"inclusion_criteria,omitempty" yaml:"inclusion_criteria,omitempty"`
	ExclusionCriteria string `json:"exclusion_criteria,omitempty" yaml:"exclusion_criteria,omitempty"`
	ReviewerCount     int    `json:"reviewer_count,omitempty" yaml:"reviewer_count,omitempty"`

	// MetadataMissing lists field names still unresolved after reconciliation.
	MetadataMissing []string `json:"metadata_missing,omitempty" yaml:"metadata_missing,omitempty"`
}

// MetadataFields are the ArticleRecord fields the reconciliation pipeline
// tries to recover from publisher pages, in reporting order.
var MetadataFields = []string{
	"abstract", "keywords", "authors", "venue", "doi",
	"references", "bibtex", "pages", "year", "link", "publisher",
}

// MissingFields returns the names of tracked metadata fields that are still
// empty on the record.
func (r *ArticleRecord) MissingFields() []string {
	byName := map[string]string{
		"abstract":   r.Abstract,
		"keywords":   r.Keywords,
		"authors":    r.Authors,
		"venue":      r.Venue,
		"doi":        r.DOI,
		"references": r.References,
		"bibtex":     r.Bibtex,
		"pages":      r.Pages,
		"year":       r.Year,
		"link":       r.Link,
		"publisher":  r.Publisher,
	}
	var missing []string
	for _, f := range MetadataFields {
		if strings.TrimSpace(byName[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// NeedsMetadata reports whether any tracked field is still empty.
func (r *ArticleRecord) NeedsMetadata() bool {
	return len(r.MissingFields()) > 0
}
