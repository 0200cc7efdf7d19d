package ocr

import (
	"regexp"
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Korean particles and verb endings. A line carrying none of these while
// being almost entirely Hangul usually came out of the engine scrambled.
var koreanParticles = []string{
	"은", "는", "이", "가", "을", "를", "에", "에서", "으로", "로",
	"와", "과", "의", "도", "및",
	"합니다", "입니다", "됩니다", "있습니다", "하는", "하며", "하여",
}

// Structural noise shapes: Hangul/Caps interleavings and fragmented Jamo
// sequences that no real sentence produces.
var garbledShapeRes = []*regexp.Regexp{
	regexp.MustCompile(`[가-힣]+[A-Z]{1,3}[가-힣]+[A-Z]{1,3}`),
	regexp.MustCompile(`[ㄱ-ㅎㅏ-ㅣ]{2,}`),
	regexp.MustCompile(`^[가-힣][A-Z][가-힣][A-Z]`),
}

// IsGarbledKorean reports whether text reads as scrambled Hangul OCR output.
// Lines containing any header or JD meta keyword are always protected.
// Thresholds follow the more permissive variant of the two in the original
// heuristics (see DESIGN.md).
func IsGarbledKorean(text string, reg *keywords.Registry) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	lowered := strings.ToLower(trimmed)
	if reg.ContainsHeaderKeyword(lowered) || reg.ContainsMetaKeyword(lowered) {
		return false
	}

	for _, re := range garbledShapeRes {
		if re.MatchString(trimmed) {
			return true
		}
	}

	runes := []rune(trimmed)
	length := len(runes)
	hangul := 0
	for _, r := range runes {
		if r >= '가' && r <= '힣' {
			hangul++
		}
	}
	if hangul == 0 {
		return false
	}
	ratio := float64(hangul) / float64(length)
	hasParticle := containsParticle(trimmed)

	switch {
	case length <= 12:
		return ratio > 0.9 && !hasParticle
	case length <= 30:
		return ratio > 0.8 && !hasParticle
	default:
		return hangul < 50 && ratio > 0.9 && !hasParticle
	}
}

// containsParticle checks token endings only; checking substrings anywhere
// would match random syllable runs and defeat the heuristic.
func containsParticle(text string) bool {
	for _, tok := range strings.Fields(text) {
		for _, p := range koreanParticles {
			if strings.HasSuffix(tok, p) {
				return true
			}
		}
	}
	return false
}
