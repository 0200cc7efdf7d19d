package ocr

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Visual header-detection constants.
const (
	headerMaxLength      = 40
	headerMaxTokens      = 6
	longKeywordMaxLength = 60
	longKeywordMaxTokens = 10
	longKeywordMinRunes  = 6
	headerScoreThreshold = 4
	headerMinHeight      = 45.0
	rightMarginRatio     = 0.65
)

var dateLikeRe = regexp.MustCompile(`\d{4}[./-]\d{1,2}[./-]\d{1,2}|\d{1,2}:\d{2}|\d{4}년`)

// ScoreVisualHeaders computes a header score for every line from its visual
// signals: glyph height against the page median, token count and bbox height.
// Lines hugging the right margin or reading like date/metadata score zero.
func ScoreVisualHeaders(lines []Line, pageWidth float64) []Line {
	medHeight := medianHeight(lines)
	medBoxHeight := medianBoxHeight(lines)

	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = line
		out[i].HeaderScore = visualScore(line, medHeight, medBoxHeight, pageWidth)
	}
	return out
}

func visualScore(line Line, medHeight, medBoxHeight, pageWidth float64) int {
	if pageWidth > 0 && line.BBox.X >= pageWidth*rightMarginRatio {
		return 0
	}
	if dateLikeRe.MatchString(line.Text) {
		return 0
	}

	score := 0
	if medHeight > 0 {
		switch {
		case line.Height >= medHeight*1.5:
			score += 3
		case line.Height >= medHeight*1.3:
			score += 2
		}
	}
	if line.TokenCount <= 6 {
		score++
	}
	if medBoxHeight > 0 && line.BBox.H >= medBoxHeight*1.3 {
		score++
	}
	return score
}

// IsHeaderLine is the OCR header decision combining lexical and visual cues.
func IsHeaderLine(line Line, reg *keywords.Registry) bool {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return false
	}

	if strings.HasPrefix(text, "•") || strings.HasPrefix(text, "·") ||
		strings.HasPrefix(text, "-") || strings.HasPrefix(text, "*") {
		return false
	}
	first := []rune(text)[0]
	if first >= '0' && first <= '9' {
		return false
	}

	lowered := strings.ToLower(text)
	runeLen := len([]rune(text))

	if kw, ok := matchedHeaderKeyword(lowered, reg); ok {
		// Long keywords (Toss-style sentence headers) get looser limits;
		// short ones stay strict to avoid body-text false positives.
		if len([]rune(kw)) >= longKeywordMinRunes {
			return runeLen <= longKeywordMaxLength && line.TokenCount <= longKeywordMaxTokens
		}
		return runeLen <= headerMaxLength &&
			line.TokenCount <= headerMaxTokens &&
			!looksLikeSentence(lowered)
	}

	// No keyword: only a strong visual signal promotes the line.
	if line.HeaderScore >= headerScoreThreshold {
		return true
	}
	if line.Height >= headerMinHeight {
		return true
	}
	return strings.HasSuffix(text, ":")
}

func matchedHeaderKeyword(lowered string, reg *keywords.Registry) (string, bool) {
	for _, kw := range reg.HeaderKeywords {
		if strings.Contains(lowered, kw) {
			return kw, true
		}
	}
	return "", false
}

func looksLikeSentence(lowered string) bool {
	if strings.HasSuffix(lowered, ".") || strings.HasSuffix(lowered, "다") {
		return true
	}
	markers := []string{"합니다", "됩니다", "있습니다", "하는 ", "하며", "및 ", "으로 ", "에서 ", "하여 "}
	for _, m := range markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

func medianHeight(lines []Line) float64 {
	vals := make([]float64, 0, len(lines))
	for _, l := range lines {
		if l.Height > 0 {
			vals = append(vals, l.Height)
		}
	}
	return median(vals)
}

func medianBoxHeight(lines []Line) float64 {
	vals := make([]float64, 0, len(lines))
	for _, l := range lines {
		if l.BBox.H > 0 {
			vals = append(vals, l.BBox.H)
		}
	}
	return median(vals)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
