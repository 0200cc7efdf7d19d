// Package sections turns a normalised line document into tagged, filtered
// sections and finally a canonical zone map. Header detection here is the
// lexical variant used by the TEXT and URL pipelines; the visual variant for
// OCR lines lives in the ocr package.
package sections

import (
	"strings"
	"unicode"

	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/textnorm"
)

const (
	headerMaxLength       = 80
	shortHeaderMin        = 2
	shortHeaderMax        = 15
	conservativeMaxLength = 30
	nextLineBodyMin       = 20

	// KeywordCoverage is the minimum share of a header candidate a keyword
	// must cover for a containment match to count. Prevents long compound
	// lines from matching on a two-character keyword.
	KeywordCoverage = 0.4
)

// IsHeaderLine reports whether line looks like a section title. next is the
// following document line ("" at the end), used as layout context.
func IsHeaderLine(line, next string, reg *keywords.Registry) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || textnorm.IsBulleted(trimmed) {
		return false
	}

	lowered := strings.ToLower(trimmed)

	// Policy keywords are the strongest signal.
	if reg.IsHeaderKeyword(lowered) {
		return true
	}
	if MatchesKeywordWithCoverage(trimmed, reg) {
		return true
	}

	// Bracketed titles: "[채용절차]", "<Benefits>". Checked before the
	// parenthesis guard; brackets mark titles, parentheses mark prose.
	if isBracketed(trimmed) {
		return true
	}

	runeLen := len([]rune(trimmed))
	if runeLen > headerMaxLength {
		return false
	}

	if strings.HasSuffix(trimmed, ":") {
		return true
	}

	if strings.ContainsAny(trimmed, "()") {
		return false
	}

	// A short line directly above a bullet list is a title.
	if textnorm.IsBulleted(next) && runeLen >= shortHeaderMin && runeLen <= shortHeaderMax {
		return true
	}

	// Conservative standalone-title rule: short line, body-like next line,
	// starting with an uppercase letter or Hangul.
	if next != "" && runeLen <= conservativeMaxLength {
		nextTrimmed := strings.TrimSpace(next)
		if len([]rune(nextTrimmed)) >= nextLineBodyMin &&
			!textnorm.IsBulleted(nextTrimmed) &&
			runeLen >= shortHeaderMin && runeLen <= shortHeaderMax &&
			startsTitled(trimmed) {
			return true
		}
	}

	return false
}

// MatchesKeywordWithCoverage checks the whitespace-stripped candidate against
// every header keyword by mutual containment and requires the keyword to
// cover at least KeywordCoverage of the candidate.
func MatchesKeywordWithCoverage(text string, reg *keywords.Registry) bool {
	normalized := normalizeForMatch(text)
	if normalized == "" {
		return false
	}
	normLen := len([]rune(normalized))
	for _, kw := range reg.HeaderKeywords {
		kwNorm := strings.ReplaceAll(kw, " ", "")
		if kwNorm == "" {
			continue
		}
		if strings.Contains(normalized, kwNorm) || strings.Contains(kwNorm, normalized) {
			if float64(len([]rune(kwNorm)))/float64(normLen) >= KeywordCoverage {
				return true
			}
		}
	}
	return false
}

// normalizeForMatch lower-cases and removes spaces and title brackets.
func normalizeForMatch(text string) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "")
	return strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '<', '>', '【', '】':
			return -1
		}
		return r
	}, s)
}

func isBracketed(text string) bool {
	return (strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")) ||
		(strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">"))
}

func startsTitled(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r) || (r >= '가' && r <= '힣')
	}
	return false
}

// CanonicalHeaderKey lower-cases a header and removes all spaces and title
// brackets, producing the canonical section key.
func CanonicalHeaderKey(header string) string {
	return normalizeForMatch(header)
}
