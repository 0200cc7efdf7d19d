package textnorm

import (
	"regexp"
	"strings"
)

// List-marker shapes rewritten to the standard bullet. Indentation is gone by
// the time lines reach here (lines are trimmed), so markers anchor at the
// line start.
var bulletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[•·▪\-–—*]\s+`),          // symbol markers
	regexp.MustCompile(`^\(\d{1,2}\)\s*`),         // (1)
	regexp.MustCompile(`^\d{1,2}[.)]\s+`),         // 1.  1)
	regexp.MustCompile(`^[①②③④⑤⑥⑦⑧⑨⑩]\s*`),        // circled digits
	regexp.MustCompile(`^[가나다라마바사아자차카타파하][.)]\s+`), // 가. 나)
}

// normalizeBullet rewrites any recognised list marker to the standard "• "
// prefix. Lines already carrying the standard prefix pass through unchanged,
// keeping the normaliser idempotent.
func normalizeBullet(line string) string {
	if strings.HasPrefix(line, Bullet) {
		return line
	}
	for _, re := range bulletPatterns {
		if loc := re.FindStringIndex(line); loc != nil {
			rest := strings.TrimSpace(line[loc[1]:])
			if rest == "" {
				return line
			}
			return Bullet + rest
		}
	}
	return line
}

// IsBulleted reports whether the line carries the standard bullet prefix.
func IsBulleted(line string) bool {
	return strings.HasPrefix(line, Bullet)
}

// StripBullet removes the standard bullet prefix if present.
func StripBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, Bullet))
}
