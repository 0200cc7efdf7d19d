package sections

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/domain"
)

// dropHeaders lists section titles that carry no JD meaning on their own.
// Only exact matches are dropped; compound headers like "전형절차 및 기타사항"
// are kept.
var dropHeaders = map[string]struct{}{
	"유의사항":       {},
	"마감일":        {},
	"참고사항":       {},
	"안내사항":       {},
	"기타사항":       {},
	"notice":     {},
	"disclaimer": {},
}

// FilterIrrelevant removes sections whose header is exactly a blacklisted
// notice/disclaimer title. Header-less sections always pass.
func FilterIrrelevant(secs []domain.Section) []domain.Section {
	out := make([]domain.Section, 0, len(secs))
	for _, sec := range secs {
		if sec.Header != "" {
			key := strings.ReplaceAll(strings.ToLower(sec.Header), " ", "")
			if _, drop := dropHeaders[key]; drop {
				continue
			}
		}
		out = append(out, sec)
	}
	return out
}
