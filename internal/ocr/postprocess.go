package ocr

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Postprocessor runs the per-line JD cleanup over quality-gated OCR lines:
// noise removal, garbled-Hangul dropping, and technical-token repair. It
// preserves meaning; structuring and summarisation happen later.
type Postprocessor struct {
	reg      *keywords.Registry
	repairer *TokenRepairer
}

// NewPostprocessor wires a postprocessor over the registry.
func NewPostprocessor(reg *keywords.Registry) *Postprocessor {
	return &Postprocessor{reg: reg, repairer: NewTokenRepairer(reg)}
}

// Process cleans the lines. Order per line: noise filter, header-keyword
// protection, garbled drop, meta protection, Korean-sentence protection,
// token repair. If repair drops every token the original line survives.
func (p *Postprocessor) Process(lines []Line) []Line {
	filtered := p.filterNoise(lines)

	out := make([]Line, 0, len(filtered))
	for _, line := range filtered {
		lowered := strings.ToLower(line.Text)

		// Header keywords pass untouched: they anchor section grouping.
		if p.reg.IsHeaderKeyword(lowered) {
			out = append(out, line)
			continue
		}

		if IsGarbledKorean(line.Text, p.reg) {
			continue
		}

		// JD meta lines (전형절차, 고용형태, ...) pass untouched.
		if p.reg.ContainsMetaKeyword(lowered) {
			out = append(out, line)
			continue
		}

		// Korean prose breaks apart under token rewriting; protect it.
		if isKoreanSentence(line.Text) {
			out = append(out, line)
			continue
		}

		repaired := p.repairTokens(line)
		out = append(out, repaired)
	}
	return out
}

// filterNoise removes UI/boilerplate lines; lines carrying a JD meta keyword
// always pass.
func (p *Postprocessor) filterNoise(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		lowered := strings.ToLower(text)

		if p.reg.ContainsMetaKeyword(lowered) {
			out = append(out, line)
			continue
		}
		if isNoiseText(lowered, p.reg.Noise) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isNoiseText(lowered string, noise keywords.Noise) bool {
	for _, p := range noise.Exact {
		if lowered == p {
			return true
		}
	}
	for _, p := range noise.Prefix {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	for _, s := range noise.Suffix {
		if strings.HasSuffix(lowered, s) {
			return true
		}
	}
	for _, n := range noise.Navigation {
		if strings.Contains(lowered, n) {
			return true
		}
	}
	return false
}

func (p *Postprocessor) repairTokens(line Line) Line {
	tokens := strings.Fields(line.Text)
	repaired := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if fixed, ok := p.repairer.Repair(tok); ok {
			repaired = append(repaired, fixed)
		}
	}

	// Never let repair erase a line entirely.
	if len(repaired) == 0 {
		return line
	}

	line.Text = strings.Join(repaired, " ")
	line.TokenCount = len(repaired)
	return line
}

// isKoreanSentence treats three or more Hangul syllables as natural-language
// prose.
func isKoreanSentence(text string) bool {
	count := 0
	for _, r := range text {
		if r >= '가' && r <= '힣' {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}
