package urlsource

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/sections"
)

const (
	headerMaxLength      = 50
	headerMinLength      = 2
	longKeywordMinRunes  = 6
	sentenceMaxShortLen  = 25
	koreanEndingMinRunes = 15
)

// ExtractSections groups cleaned URL lines under keyword-matched headers.
// Lines before the first header collect under the intro key; the result
// feeds section post-validation unchanged.
func ExtractSections(lines []string, reg *keywords.Registry) []sections.RawSection {
	var out []sections.RawSection
	index := map[string]int{}
	currentKey := ""

	appendTo := func(key, text string) {
		if i, ok := index[key]; ok {
			out[i].Lines = append(out[i].Lines, text)
			return
		}
		index[key] = len(out)
		out = append(out, sections.RawSection{Key: key, Lines: []string{text}})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if kw := matchedHeaderKeyword(line, reg); kw != "" {
			currentKey = normalizeHeaderKey(line)
			if _, ok := index[currentKey]; !ok {
				index[currentKey] = len(out)
				out = append(out, sections.RawSection{Key: currentKey})
			}
			continue
		}

		if currentKey == "" {
			appendTo(sections.IntroKey, line)
			continue
		}
		appendTo(currentKey, line)
	}

	return out
}

// matchedHeaderKeyword returns the header keyword the line matches, or "".
// Long keywords skip the sentence check (Toss-style sentence headers); short
// ones keep it to avoid promoting body text.
func matchedHeaderKeyword(line string, reg *keywords.Registry) string {
	runeLen := len([]rune(line))
	if runeLen > headerMaxLength || runeLen < headerMinLength {
		return ""
	}
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "·") || strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "▶") || strings.HasPrefix(line, "▪") ||
		strings.HasPrefix(line, "○") || strings.HasPrefix(line, "●") {
		return ""
	}
	if first := []rune(line)[0]; first >= '0' && first <= '9' {
		return ""
	}

	normalized := normalizeHeaderKey(line)
	for _, kw := range reg.HeaderKeywords {
		kwNorm := strings.ReplaceAll(kw, " ", "")
		if kwNorm != normalized && !strings.Contains(normalized, kwNorm) {
			continue
		}
		if len([]rune(kwNorm)) >= longKeywordMinRunes || !looksLikeSentence(strings.ToLower(line)) {
			return kw
		}
	}
	return ""
}

func looksLikeSentence(lowered string) bool {
	if strings.HasSuffix(lowered, ".") {
		return true
	}
	if len([]rune(lowered)) > sentenceMaxShortLen {
		return true
	}
	for _, ending := range []string{"다", "요", "음", "함"} {
		if strings.HasSuffix(lowered, ending) && len([]rune(lowered)) > koreanEndingMinRunes {
			return true
		}
	}
	markers := []string{
		"합니다", "됩니다", "있습니다", "입니다",
		"하는 ", "하며 ", "및 ",
		"으로 ", "에서 ", "하여 ",
		"것입니다", "바랍니다",
	}
	for _, m := range markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// normalizeHeaderKey lower-cases, removes spaces and strips one layer of
// title brackets.
func normalizeHeaderKey(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, " ", "")
	if (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
