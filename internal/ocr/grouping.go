package ocr

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/sections"
)

// GroupByHeader walks the cleaned OCR lines and groups them under detected
// headers. Lines before the first header collect under the intro key. The
// output feeds directly into section post-validation.
func GroupByHeader(lines []Line, reg *keywords.Registry) []sections.RawSection {
	var out []sections.RawSection
	index := map[string]int{}

	appendTo := func(key, text string) {
		if i, ok := index[key]; ok {
			out[i].Lines = append(out[i].Lines, text)
			return
		}
		index[key] = len(out)
		out = append(out, sections.RawSection{Key: key, Lines: []string{text}})
	}

	currentKey := ""
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if IsHeaderLine(line, reg) {
			currentKey = canonicalKey(text)
			if _, ok := index[currentKey]; !ok {
				index[currentKey] = len(out)
				out = append(out, sections.RawSection{Key: currentKey})
			}
			continue
		}

		if currentKey == "" {
			appendTo(sections.IntroKey, text)
			continue
		}
		appendTo(currentKey, text)
	}

	return out
}

// canonicalKey mirrors the header canonicalisation of the text pipeline:
// lower-case, all spaces removed.
func canonicalKey(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "")
}
