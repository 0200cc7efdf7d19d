package urlsource

import (
	"regexp"
	"strings"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Web-UI words that survive HTML extraction but never belong to a posting.
var urlUIWords = map[string]struct{}{
	"목록": {}, "이전": {}, "다음": {}, "top": {}, "menu": {}, "home": {},
	"로그인": {}, "회원가입": {}, "고객센터": {}, "즐겨찾기": {}, "알림": {},
	"스크랩": {}, "공유": {}, "신고": {}, "인쇄": {},
}

// Residual platform chrome: relative dates, view counters, D-day badges,
// copyright lines.
var urlNoiseRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+일\s*전$`),
	regexp.MustCompile(`^조회\s*\d+`),
	regexp.MustCompile(`^D-\d+$`),
	regexp.MustCompile(`^©.*$`),
	regexp.MustCompile(`^Copyright\b.*$`),
	regexp.MustCompile(`^\d+명\s*지원$`),
}

const (
	menuRunMinLines   = 5
	menuRunMaxLineLen = 10
)

// CleanLines strips scraped-web noise from the extracted body lines: UI
// words, chrome patterns, case-insensitive duplicates, and menu residue
// (long runs of very short lines that survive block scoring).
func CleanLines(lines []string, reg *keywords.Registry) []string {
	var kept []string
	seen := make(map[string]struct{})

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lowered := strings.ToLower(line)

		if _, ui := urlUIWords[lowered]; ui {
			continue
		}
		if matchesNoisePattern(line) {
			continue
		}
		// Repeated header/footer text appears once.
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		kept = append(kept, line)
	}

	return dropMenuRuns(kept, reg)
}

func matchesNoisePattern(line string) bool {
	for _, re := range urlNoiseRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// dropMenuRuns removes runs of menuRunMinLines or more consecutive short
// lines. A line containing a header keyword breaks the run and is kept;
// a compact section title is not a menu.
func dropMenuRuns(lines []string, reg *keywords.Registry) []string {
	isShort := func(line string) bool {
		if len([]rune(line)) > menuRunMaxLineLen {
			return false
		}
		return !reg.ContainsHeaderKeyword(strings.ToLower(line))
	}

	var out []string
	i := 0
	for i < len(lines) {
		if !isShort(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && isShort(lines[j]) {
			j++
		}
		if j-i < menuRunMinLines {
			out = append(out, lines[i:j]...)
		}
		i = j
	}
	return out
}
