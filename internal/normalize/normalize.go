// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes article titles into comparison keys.
//
// Titles reach the pipeline copy-pasted from PDFs, spreadsheet exports and
// scraped HTML, with inconsistent encodings, punctuation variants and
// mis-decoded multi-byte artifacts. Title produces a common comparison
// surface without discarding semantic content. It is pure and idempotent:
// Title(Title(s)) == Title(s) for any input.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mojibake lists UTF-8-read-as-Latin-1 artifacts and HTML entity remnants
// observed in historical dataset exports. They carry no title content and
// are dropped before any other processing so their constituent letters do
// not survive transliteration. Longer sequences come first: Replacer
// matches in argument order and "â€" prefixes most of them.
var mojibake = strings.NewReplacer(
	"â€™", "", "â€˜", "", "â€œ", "", // mangled curly quotes
	"â€“", " ", "â€”", " ", "â€¦", " ", // mangled dashes and ellipsis
	"â€", "", // remainder once the trailing control byte is stripped
	"Ã¢", "",
	"Â", "", // mangled non-breaking space
	"&amp;", " ", "&quot;", "", "&apos;", "", "&#39;", "",
	"&lt;", " ", "&gt;", " ", "&nbsp;", " ",
	"#x2019", "", "#x2013", " ", "#x201c", "", "#x201d", "",
)

// tagFragment matches leftover angle-bracket markup such as "<i>" or "</sub>".
var tagFragment = regexp.MustCompile(`<[^<>]*>`)

// noise is the fixed set of punctuation and symbol characters treated as
// separators: colons, slashes, hyphen and dash variants, commas, periods,
// question marks, asterisks, ampersands, semicolons, straight and curly
// quotes, plus/minus signs, parentheses, and stray angle brackets.
const noise = ":;/\\,.?*&+()<>!" +
	"±" + // ±
	"-‐‑‒–—―" + // hyphen and dash variants
	"'\"`´‘’“”«»" // quote variants

// asciiFold decomposes accented letters and strips their combining marks,
// e.g. "é" → "e", "ü" → "u".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ligatures maps letters that NFD decomposition leaves untouched to their
// conventional ASCII spellings.
var ligatures = strings.NewReplacer(
	"æ", "ae", // æ
	"œ", "oe", // œ
	"ø", "o", // ø
	"ß", "ss", // ß
	"ð", "d", // ð
	"þ", "th", // þ
	"đ", "d", // đ
	"ł", "l", // ł
	"ı", "i", // ı
)

// Title canonicalizes a raw article title into its comparison key:
// lowercased ASCII tokens of length ≥ 2 joined by single spaces. It never
// fails on arbitrary Unicode input; the empty string maps to itself.
func Title(title string) string {
	s := strings.Map(dropIllegal, title)
	s = mojibake.Replace(s)
	s = tagFragment.ReplaceAllString(s, " ")
	s = strings.ToLower(s)

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(noise, r) {
			return ' '
		}
		return r
	}, s)

	s = ligatures.Replace(s)
	if folded, _, err := transform.String(asciiFold, s); err == nil {
		s = folded
	}

	// Whatever survived transliteration but is still non-ASCII has no
	// useful ASCII spelling; treat it as a separator.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return ' '
		}
		return r
	}, s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// dropIllegal removes control characters, the BOM, and zero-width marks.
func dropIllegal(r rune) rune {
	switch r {
	case '\ufeff', '\u200b', '\u200c', '\u200d', '\u2060':
		return -1
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
