package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/sections"
	"github.com/dongwoo46/HireLog/internal/textnorm"
)

// TextPipeline processes raw-text requests:
// Core -> Metadata -> SectionBuilder -> PostValidator -> Semantic -> Filter -> Canonical.
type TextPipeline struct {
	kits   *kitCache
	logger *zap.Logger
}

// NewTextPipeline builds the TEXT pipeline over the keyword provider.
func NewTextPipeline(provider *keywords.Provider, logger *zap.Logger) *TextPipeline {
	return &TextPipeline{kits: newKitCache(provider), logger: logger}
}

func (p *TextPipeline) Source() domain.Source { return domain.SourceText }

// Process never fails on content alone: empty input yields an empty canonical
// map with UNKNOWN period and no skills.
func (p *TextPipeline) Process(_ context.Context, req domain.Request) (*Output, error) {
	kit := p.kits.get()

	lines := textnorm.New(kit.reg).Process(req.Text)
	docMeta := kit.extractor.Process(lines)

	secs := sections.Build(lines, kit.reg)
	raw := sections.ToRaw(secs)
	raw = sections.ValidateRaw(raw, kit.reg)
	secs = sections.FromRaw(raw)

	canonical := canonicalTail(secs, kit.reg)

	p.logger.Debug("text pipeline complete",
		zap.String("requestId", req.RequestID),
		zap.Int("lines", len(lines)),
		zap.Int("zones", len(canonical)))

	return &Output{CanonicalMap: canonical, Meta: docMeta}, nil
}
