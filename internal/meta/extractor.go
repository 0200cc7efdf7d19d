package meta

import (
	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Extractor bundles the document-global metadata passes. It does not modify
// the lines it reads.
type Extractor struct {
	skills *SkillMatcher
}

// NewExtractor compiles the skill matcher for the given registry.
func NewExtractor(reg *keywords.Registry) *Extractor {
	return &Extractor{skills: NewSkillMatcher(reg)}
}

// Process collects recruitment-period and skill metadata from the line
// document. Always returns a complete DocumentMeta.
func (e *Extractor) Process(lines []string) domain.DocumentMeta {
	return domain.DocumentMeta{
		RecruitmentPeriod: ExtractPeriod(lines),
		SkillSet:          e.skills.Extract(lines),
	}
}
