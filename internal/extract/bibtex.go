// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// bibTag matches one "key = {value}" or `key = "value"` line of a BibTeX
// entry.
var bibTag = regexp.MustCompile(`(?m)^\s*([A-Za-z_-]+)\s*=\s*[{"](.*?)[}"],?\s*$`)

// ParseBibTeX extracts the tag map of a BibTeX payload. The payload itself
// stays opaque: it is cached and stored verbatim on the record, and only
// the tags needed for reconciliation are lifted out. When the payload
// holds several entries, the first occurrence of a tag wins. A tag that
// appears with an empty value is kept in the map, so callers merging tag
// maps under the NonNil policy can distinguish "present but empty" from
// "absent".
func ParseBibTeX(content []byte) map[string]string {
	tags := make(map[string]string)
	for _, m := range bibTag.FindAllStringSubmatch(string(content), -1) {
		key := strings.ToLower(m[1])
		if _, seen := tags[key]; !seen {
			tags[key] = strings.TrimSpace(strings.Trim(m[2], "{}"))
		}
	}
	return tags
}

// CandidateFromBibTeX builds a candidate from a BibTeX payload. The raw
// payload is preserved on the Bibtex field.
func CandidateFromBibTeX(content []byte) *types.MetadataCandidate {
	tags := ParseBibTeX(content)

	venue := tags["journal"]
	if venue == "" {
		venue = tags["booktitle"]
	}

	return &types.MetadataCandidate{
		Title:     tags["title"],
		Venue:     venue,
		Authors:   strings.Join(splitAuthors(tags["author"]), "; "),
		Abstract:  tags["abstract"],
		Keywords:  tags["keywords"],
		Pages:     strings.ReplaceAll(tags["pages"], "--", "-"),
		Year:      tags["year"],
		DOI:       tags["doi"],
		Link:      tags["url"],
		Publisher: tags["publisher"],
		Bibtex:    strings.TrimSpace(string(content)),
	}
}

// splitAuthors converts BibTeX "A and B and C" author lists into a slice.
func splitAuthors(authors string) []string {
	if strings.TrimSpace(authors) == "" {
		return nil
	}
	parts := strings.Split(authors, " and ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
