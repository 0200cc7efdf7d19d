package sections

import "github.com/dongwoo46/HireLog/internal/domain"

// BuildCanonical flattens sections into the zone-keyed canonical map. Within
// each section prose lines precede list items; sections contribute in
// document order, so ordering inside a zone is stable. Zones with no content
// never appear as keys.
func BuildCanonical(secs []domain.Section) domain.CanonicalMap {
	result := make(domain.CanonicalMap)
	for _, sec := range secs {
		lines := sec.AllLines()
		if len(lines) == 0 {
			continue
		}
		result[sec.SemanticZone] = append(result[sec.SemanticZone], lines...)
	}
	return result
}
