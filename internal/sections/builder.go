package sections

import (
	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/textnorm"
)

// Build groups a line document into sections using the lexical header
// detector. The document always opens with an implicit intro section
// (header "", zone "intro"); it is emitted only when it gathered content.
// After grouping, contiguous bullet runs inside each section are collapsed
// into lists.
func Build(lines []string, reg *keywords.Registry) []domain.Section {
	var out []domain.Section

	current := domain.Section{SemanticZone: domain.ZoneIntro}

	for i, line := range lines {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if IsHeaderLine(line, next, reg) {
			if !current.IsEmpty() {
				out = append(out, current)
			}
			current = domain.Section{
				Header:       CanonicalHeaderKey(line),
				SemanticZone: domain.ZoneOthers,
			}
			continue
		}

		current.Lines = append(current.Lines, line)
	}

	if !current.IsEmpty() {
		out = append(out, current)
	}

	for i := range out {
		out[i] = groupLists(out[i])
	}
	return out
}

// groupLists scans a section's prose lines and collapses each contiguous run
// of bullet lines into one ordered list, preserving interleaving with prose.
// Bullet text is stored without the marker.
func groupLists(sec domain.Section) domain.Section {
	var (
		prose   []string
		lists   [][]string
		current []string
	)

	for _, line := range sec.Lines {
		if textnorm.IsBulleted(line) {
			current = append(current, textnorm.StripBullet(line))
			continue
		}
		if len(current) > 0 {
			lists = append(lists, current)
			current = nil
		}
		prose = append(prose, line)
	}
	if len(current) > 0 {
		lists = append(lists, current)
	}

	sec.Lines = prose
	sec.Lists = lists
	return sec
}
