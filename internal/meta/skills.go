package meta

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
)

// skillPattern is one compiled skill matcher: a canonical name plus its
// category, matching the canonical spelling or any alias.
type skillPattern struct {
	re        *regexp2.Regexp
	canonical string
	category  string
}

// SkillMatcher scans lines for known technology mentions. Patterns are
// compiled once per registry; build matchers at startup and reuse them.
type SkillMatcher struct {
	patterns []skillPattern
}

// NewSkillMatcher compiles matchers from the skill vocabulary and alias map.
// Plain names match on word boundaries; dotted names (Node.js) use lookaround
// boundaries so the trailing dot may sit next to punctuation.
func NewSkillMatcher(reg *keywords.Registry) *SkillMatcher {
	m := &SkillMatcher{}

	for category, skills := range reg.SkillVocab {
		for _, canonical := range skills {
			m.add(canonical, canonical, category)
			for _, alias := range reg.SkillAlias[canonical] {
				m.add(alias, canonical, category)
			}
		}
	}
	return m
}

func (m *SkillMatcher) add(name, canonical, category string) {
	expr := boundaryPattern(name)
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return
	}
	m.patterns = append(m.patterns, skillPattern{
		re:        re,
		canonical: strings.ToLower(canonical),
		category:  category,
	})
}

// boundaryPattern builds the match expression for one skill spelling.
// `(?<!\w)`/`(?!\w)` boundaries work for dotted and symbolic names where `\b`
// does not, and behave identically to `\b` for plain tokens.
func boundaryPattern(name string) string {
	return `(?<!\w)` + regexp2.Escape(name) + `(?!\w)`
}

// Hit is one matched skill occurrence.
type Hit struct {
	Canonical string
	Category  string
}

// Extract scans every line and returns the de-duplicated, ascending-sorted
// canonical skill names.
func (m *SkillMatcher) Extract(lines []string) domain.SkillSet {
	found := make(map[string]struct{})
	for _, line := range lines {
		for _, p := range m.patterns {
			if _, ok := found[p.canonical]; ok {
				continue
			}
			if matched, err := p.re.MatchString(line); err == nil && matched {
				found[p.canonical] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(found))
	for name := range found {
		skills = append(skills, name)
	}
	sort.Strings(skills)
	return domain.SkillSet{Skills: skills}
}

// Hits returns each matched (category, canonical) pair once, for callers that
// care about grouping.
func (m *SkillMatcher) Hits(lines []string) []Hit {
	seen := make(map[string]struct{})
	var hits []Hit
	for _, line := range lines {
		for _, p := range m.patterns {
			if _, ok := seen[p.canonical]; ok {
				continue
			}
			if matched, err := p.re.MatchString(line); err == nil && matched {
				seen[p.canonical] = struct{}{}
				hits = append(hits, Hit{Canonical: p.canonical, Category: p.category})
			}
		}
	}
	return hits
}
