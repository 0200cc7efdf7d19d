// Package keywords loads the static keyword and vocabulary files the
// pipelines match against. A Registry is built once at startup and treated as
// immutable; hot reload swaps in a whole new Registry.
package keywords

import (
	"sort"
	"strings"
)

// Noise holds the four UI/system noise buckets from noise_keywords.yml.
type Noise struct {
	Exact      []string `yaml:"exact"`
	Prefix     []string `yaml:"prefix"`
	Suffix     []string `yaml:"suffix"`
	Navigation []string `yaml:"navigation"`
}

// Registry is the full read-only keyword set used across the pipelines.
type Registry struct {
	// SectionKeywords maps a semantic zone group to its header keywords,
	// lower-cased and trimmed.
	SectionKeywords map[string][]string

	// HeaderKeywords is the flat header-detection keyword list.
	HeaderKeywords []string

	// MetaKeywords protect recruitment-process / employment-type lines from
	// OCR noise filtering.
	MetaKeywords []string

	// Noise holds line-level UI noise patterns.
	Noise Noise

	// Vocab is the protected technical vocabulary for OCR token repair.
	Vocab []string

	// SkillVocab maps a category to its canonical skill names.
	SkillVocab map[string][]string

	// SkillAlias maps a canonical skill name to its aliases.
	SkillAlias map[string][]string

	headerSet map[string]struct{}
	vocabSet  map[string]struct{}
}

// finish builds the lookup sets after loading.
func (r *Registry) finish() {
	r.headerSet = make(map[string]struct{}, len(r.HeaderKeywords))
	for _, kw := range r.HeaderKeywords {
		r.headerSet[kw] = struct{}{}
	}
	r.vocabSet = make(map[string]struct{}, len(r.Vocab))
	for _, v := range r.Vocab {
		r.vocabSet[strings.ToLower(v)] = struct{}{}
	}
}

// IsHeaderKeyword reports whether the lower-cased text is exactly a header
// keyword.
func (r *Registry) IsHeaderKeyword(lowered string) bool {
	_, ok := r.headerSet[lowered]
	return ok
}

// ContainsHeaderKeyword reports whether any header keyword occurs as a
// substring of the lower-cased text.
func (r *Registry) ContainsHeaderKeyword(lowered string) bool {
	for _, kw := range r.HeaderKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// ContainsMetaKeyword reports whether any JD meta keyword occurs in the
// lower-cased text.
func (r *Registry) ContainsMetaKeyword(lowered string) bool {
	for _, kw := range r.MetaKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// IsVocabWord reports whether the token (case-insensitively) is protected
// technical vocabulary.
func (r *Registry) IsVocabWord(token string) bool {
	_, ok := r.vocabSet[strings.ToLower(token)]
	return ok
}

// ZoneKeywords returns the keywords configured for a zone group, nil when the
// group is absent.
func (r *Registry) ZoneKeywords(zone string) []string {
	return r.SectionKeywords[zone]
}

// CanonicalSkills returns every canonical skill name sorted ascending.
func (r *Registry) CanonicalSkills() []string {
	var out []string
	for _, skills := range r.SkillVocab {
		out = append(out, skills...)
	}
	sort.Strings(out)
	return out
}
