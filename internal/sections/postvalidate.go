package sections

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
)

// IntroKey marks the header-less intro bucket in the raw section view.
const IntroKey = "__intro__"

const (
	footerMaxLineLength  = 15
	footerMinConsecutive = 2
)

// RawSection is one entry of the ordered {headerKey -> lines} view shared by
// all three pipelines during post-validation.
type RawSection struct {
	Key   string
	Lines []string
}

// ValidateRaw repairs structural header-detection mistakes, in order:
//
//  1. leading sections whose key fails the keyword-coverage gate are absorbed
//     into the intro bucket (their key becomes a content line);
//  2. a header with no content absorbs subsequent header keys as content until
//     a content-bearing header is reached;
//  3. a trailing run of short lines in the last section is stripped as footer
//     noise.
func ValidateRaw(raw []RawSection, reg *keywords.Registry) []RawSection {
	raw = absorbNonKeywordIntro(raw, reg)
	raw = mergeEmptyHeaders(raw)
	raw = stripFooterNoise(raw)
	return raw
}

// Rule 1: non-keyword leading headers fold into intro.
func absorbNonKeywordIntro(raw []RawSection, reg *keywords.Registry) []RawSection {
	if len(raw) == 0 {
		return raw
	}

	var introLines []string
	firstKeywordIdx := len(raw)

	for i, sec := range raw {
		if sec.Key == IntroKey {
			introLines = append(introLines, sec.Lines...)
			continue
		}
		if MatchesKeywordWithCoverage(sec.Key, reg) {
			firstKeywordIdx = i
			break
		}
		// Company names and position titles promoted by visual signal alone
		// land here: the key itself becomes an intro line.
		introLines = append(introLines, sec.Key)
		introLines = append(introLines, sec.Lines...)
		firstKeywordIdx = i + 1
	}

	out := make([]RawSection, 0, len(raw))
	if len(introLines) > 0 {
		out = append(out, RawSection{Key: IntroKey, Lines: introLines})
	}
	out = append(out, raw[firstKeywordIdx:]...)
	return out
}

// Rule 2: empty headers swallow following headers until content appears.
func mergeEmptyHeaders(raw []RawSection) []RawSection {
	out := make([]RawSection, 0, len(raw))

	for i := 0; i < len(raw); {
		sec := raw[i]
		if sec.Key == IntroKey || len(sec.Lines) > 0 {
			out = append(out, sec)
			i++
			continue
		}

		var merged []string
		j := i + 1
		for j < len(raw) {
			next := raw[j]
			merged = append(merged, next.Key)
			merged = append(merged, next.Lines...)
			j++
			if len(next.Lines) > 0 {
				break
			}
		}

		out = append(out, RawSection{Key: sec.Key, Lines: merged})
		i = j
	}

	return out
}

// Rule 3: trailing short-line runs in the last section are platform badges.
func stripFooterNoise(raw []RawSection) []RawSection {
	if len(raw) == 0 {
		return raw
	}
	last := raw[len(raw)-1]
	if len(last.Lines) == 0 {
		return raw
	}

	cutoff := len(last.Lines)
	for i := len(last.Lines) - 1; i >= 0; i-- {
		if len([]rune(strings.TrimSpace(last.Lines[i]))) > footerMaxLineLength {
			break
		}
		cutoff = i
	}

	if removed := len(last.Lines) - cutoff; removed >= footerMinConsecutive {
		last.Lines = last.Lines[:cutoff]
		raw[len(raw)-1] = last
	}
	return raw
}

// ToRaw flattens sections into the ordered raw view: list items follow prose
// lines under each key, intro maps to IntroKey.
func ToRaw(secs []domain.Section) []RawSection {
	out := make([]RawSection, 0, len(secs))
	for _, sec := range secs {
		key := sec.Header
		if sec.SemanticZone == domain.ZoneIntro || key == "" {
			key = IntroKey
		}
		out = append(out, RawSection{Key: key, Lines: sec.AllLines()})
	}
	return out
}

// FromRaw restores domain sections from a validated raw view. List structure
// does not survive validation; every line is prose afterwards.
func FromRaw(raw []RawSection) []domain.Section {
	out := make([]domain.Section, 0, len(raw))
	for _, sec := range raw {
		if len(sec.Lines) == 0 {
			continue
		}
		if sec.Key == IntroKey {
			out = append(out, domain.Section{
				Lines:        sec.Lines,
				SemanticZone: domain.ZoneIntro,
			})
			continue
		}
		out = append(out, domain.Section{
			Header:       sec.Key,
			Lines:        sec.Lines,
			SemanticZone: domain.ZoneOthers,
		})
	}
	return out
}
