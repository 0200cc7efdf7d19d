package sections

import (
	"strings"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
)

// zonePriority is the fixed evaluation order for header-based zone tagging.
// The first matching group wins; responsibilities outranks everything, and
// application questions must be checked before process.
var zonePriority = []string{
	domain.ZoneResponsibilities,
	domain.ZonePreferred,
	domain.ZoneRequirements,
	domain.ZoneExperience,
	domain.ZoneCompany,
	domain.ZoneBenefits,
	domain.ZoneApplicationQs,
	domain.ZoneProcess,
	domain.ZoneSkills,
	domain.ZoneEmploymentType,
	domain.ZoneLocation,
}

// applicationQuestionFallback covers the zone when the keyword file carries
// no application_questions group.
var applicationQuestionFallback = []string{
	"공통질문",
	"자기소개서",
	"지원서문항",
	"applicationquestion",
	"commonquestion",
}

// TagZones assigns a semantic zone to every section still tagged "others".
// Sections already tagged at the structural stage, intro in particular,
// are never re-tagged.
func TagZones(secs []domain.Section, reg *keywords.Registry) []domain.Section {
	out := make([]domain.Section, len(secs))
	for i, sec := range secs {
		if sec.SemanticZone != domain.ZoneOthers {
			out[i] = sec
			continue
		}
		sec.SemanticZone = DetectZone(sec.Header, reg)
		out[i] = sec
	}
	return out
}

// DetectZone classifies a canonical header into a semantic zone by keyword
// lookup. Empty headers and misses stay "others".
func DetectZone(header string, reg *keywords.Registry) string {
	if header == "" {
		return domain.ZoneOthers
	}
	normalized := strings.ReplaceAll(strings.ToLower(header), " ", "")

	for _, zone := range zonePriority {
		kws := reg.ZoneKeywords(zone)
		if zone == domain.ZoneApplicationQs && len(kws) == 0 {
			kws = applicationQuestionFallback
		}
		if matchesZoneKeywords(normalized, kws) {
			return zone
		}
	}
	return domain.ZoneOthers
}

// matchesZoneKeywords allows containment in either direction, both sides
// compared with whitespace removed.
func matchesZoneKeywords(normalized string, kws []string) bool {
	for _, kw := range kws {
		kwNorm := strings.ReplaceAll(kw, " ", "")
		if kwNorm == "" {
			continue
		}
		if strings.Contains(normalized, kwNorm) || strings.Contains(kwNorm, normalized) {
			return true
		}
	}
	return false
}
