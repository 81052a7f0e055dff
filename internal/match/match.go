// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether two article titles denote the same article.
//
// Two variants exist with deliberately different contracts. SameArticle is
// the strict acceptance check used everywhere a candidate may be merged
// into a dataset row. AuditSameArticle is looser and exists only to flag
// likely-wrong historical matches for human review; it must never gate a
// merge. They are separate functions rather than one parameterized check so
// a call site cannot accidentally relax the acceptance criteria.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/normalize"
)

// Edit-distance and length-guard thresholds, over normalized titles.
const (
	strictMaxDistance = 3
	looseMaxDistance  = 10
	maxWordDiff       = 4
	maxCharDiff       = 10
	looseMaxWordDiff  = 2
)

// SameArticle reports whether a candidate title and a dataset row title
// refer to the same article. It fails closed: an empty or whitespace-only
// title on either side never matches.
//
// Both titles are normalized first. They match when they look similar
// (one contains the other, or their edit distance is below 3) AND their
// lengths are sane (word counts differ by less than 4, or character counts
// differ by less than 10). The length guard rejects short fragments that
// happen to be substrings of much longer unrelated titles.
func SameArticle(candidateTitle, originalTitle string) bool {
	a := normalize.Title(candidateTitle)
	b := normalize.Title(originalTitle)
	if a == "" || b == "" {
		return false
	}

	similar := strings.Contains(a, b) || strings.Contains(b, a) ||
		levenshtein.ComputeDistance(a, b) < strictMaxDistance

	return similar && lengthsComparable(a, b)
}

// AuditSameArticle is the permissive variant used by quality-control audits
// to flag suspect matches for review. It accepts containment, or an edit
// distance below 10 combined with a word-count difference below 2. Do not
// use it to accept candidates.
func AuditSameArticle(candidateTitle, originalTitle string) bool {
	a := normalize.Title(candidateTitle)
	b := normalize.Title(originalTitle)
	if a == "" || b == "" {
		return false
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return levenshtein.ComputeDistance(a, b) < looseMaxDistance &&
		absDiff(wordCount(a), wordCount(b)) < looseMaxWordDiff
}

// lengthsComparable is the strict length-sanity guard.
func lengthsComparable(a, b string) bool {
	return absDiff(wordCount(a), wordCount(b)) < maxWordDiff ||
		absDiff(len(a), len(b)) < maxCharDiff
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
