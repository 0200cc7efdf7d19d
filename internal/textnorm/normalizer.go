// Package textnorm implements the core line normaliser: it turns one raw text
// blob into an ordered sequence of trimmed, bullet-normalised, noise-free
// lines. The normaliser is idempotent: feeding its own output back through
// produces the same lines.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Bullet is the standard bullet prefix every list marker is rewritten to.
const Bullet = "• "

// Normalizer runs the core preprocessing steps in fixed order.
type Normalizer struct {
	noise keywords.Noise
}

// New builds a Normalizer using the registry's noise buckets.
func New(reg *keywords.Registry) *Normalizer {
	return &Normalizer{noise: reg.Noise}
}

// Process converts a raw text blob into the line document.
func (n *Normalizer) Process(raw string) []string {
	text := normalizeChars(raw)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n.isNoiseLine(line) {
			continue
		}
		line = normalizeBullet(line)
		if isDamagedLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// circledDigits rewrites circled list markers before NFKC folds them into
// bare digits, which the numbered-bullet pattern could no longer tell apart
// from prose.
var circledDigits = strings.NewReplacer(
	"①", "1. ", "②", "2. ", "③", "3. ", "④", "4. ", "⑤", "5. ",
	"⑥", "6. ", "⑦", "7. ", "⑧", "8. ", "⑨", "9. ", "⑩", "10. ",
)

// normalizeChars applies character-level normalisation: NFKC, LF endings,
// control-char stripping, tab expansion, Hangul/ASCII boundary spacing and
// space-run collapsing.
func normalizeChars(raw string) string {
	text := norm.NFKC.String(circledDigits.Replace(raw))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	for _, r := range text {
		switch {
		case r == 0xFEFF || r == 0x200B || r == 0x200C || r == 0x200D:
			continue // BOM / zero-width
		case r == '\n':
			b.WriteRune(r)
			prev = r
			continue
		case r == '\t':
			r = ' '
		case r < 0x20 || (r >= 0x7f && r <= 0x9f):
			continue // C0 / C1 controls
		}

		// Space at every Hangul<->Latin letter boundary, both directions.
		// Digit boundaries stay glued: "3년 이상" and "경력0년" carry meaning
		// as single tokens.
		if prev != 0 && prev != '\n' && boundaryNeedsSpace(prev, r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	return collapseSpaces(b.String())
}

func boundaryNeedsSpace(prev, cur rune) bool {
	return (isHangul(prev) && isASCIILetter(cur)) || (isASCIILetter(prev) && isHangul(cur))
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7A3) || (r >= 0x1100 && r <= 0x11FF) || (r >= 0x3130 && r <= 0x318F)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func collapseSpaces(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	spaced := false
	for _, r := range text {
		if r == ' ' {
			if spaced {
				continue
			}
			spaced = true
		} else {
			spaced = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isNoiseLine matches the line against the configured UI/system noise
// buckets. Navigation patterns match by containment, accepted only when the
// line is at most 30 characters longer than the pattern.
func (n *Normalizer) isNoiseLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, p := range n.noise.Exact {
		if lowered == p {
			return true
		}
	}
	for _, p := range n.noise.Prefix {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	for _, p := range n.noise.Suffix {
		if strings.HasSuffix(lowered, p) {
			return true
		}
	}
	lineLen := len([]rune(lowered))
	for _, p := range n.noise.Navigation {
		if strings.Contains(lowered, p) && lineLen-len([]rune(p)) <= 30 {
			return true
		}
	}
	return false
}

// isDamagedLine drops obviously broken lines: very short lines with no word
// character, or symbol-dominated lines. The standard bullet prefix does not
// count against its line.
func isDamagedLine(line string) bool {
	line = strings.TrimPrefix(line, Bullet)
	runes := []rune(line)

	wordCount := 0
	nonWord := 0
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			wordCount++
		} else {
			nonWord++
		}
	}

	if len(runes) <= 3 && wordCount == 0 {
		return true
	}
	if len(runes) >= 5 && wordCount+nonWord > 0 {
		if float64(nonWord)/float64(wordCount+nonWord) >= 0.6 {
			return true
		}
	}
	return false
}
