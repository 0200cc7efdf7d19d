// Package meta extracts document-global metadata (the recruitment period and
// the mentioned skill set) in a single pass over the line document. It never
// fails: absence degrades to PeriodUnknown and an empty skill list.
package meta

import (
	"regexp"
	"strings"

	"github.com/dongwoo46/HireLog/internal/domain"
)

var (
	timeRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

	dateRe      = `\d{4}[./-]\d{1,2}[./-]\d{1,2}`
	dateRangeRe = regexp.MustCompile(`(` + dateRe + `)\s*~\s*(` + dateRe + `)`)
)

var (
	alwaysTerms = []string{"상시채용", "상시"}
	openTerms   = []string{"수시채용", "수시", "채용시", "조기 마감"}
)

// ExtractPeriod finds the recruitment window. The first explicit date range
// wins (FIXED); otherwise keyword scans decide ALWAYS over OPEN; otherwise
// UNKNOWN. At most one period is produced per document.
func ExtractPeriod(lines []string) domain.RecruitmentPeriod {
	// Date ranges are matched on a copy with clock times removed so that
	// "(17:00)" never corrupts a date token.
	for _, line := range lines {
		working := timeRe.ReplaceAllString(line, "")
		if m := dateRangeRe.FindStringSubmatch(working); m != nil {
			return domain.RecruitmentPeriod{
				Type:      domain.PeriodFixed,
				OpenDate:  m[1],
				CloseDate: m[2],
				RawTexts:  []string{line},
			}
		}
	}

	alwaysLines := collectLines(lines, alwaysTerms)
	openLines := collectLines(lines, openTerms)

	switch {
	case len(alwaysLines) > 0:
		return domain.RecruitmentPeriod{Type: domain.PeriodAlways, RawTexts: alwaysLines}
	case len(openLines) > 0:
		return domain.RecruitmentPeriod{Type: domain.PeriodOpen, RawTexts: openLines}
	}
	return domain.RecruitmentPeriod{Type: domain.PeriodUnknown}
}

// collectLines gathers every line containing one of the terms, in document
// order without duplicates.
func collectLines(lines []string, terms []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, line := range lines {
		for _, t := range terms {
			if strings.Contains(line, t) {
				if _, dup := seen[line]; !dup {
					seen[line] = struct{}{}
					out = append(out, line)
				}
				break
			}
		}
	}
	return out
}
