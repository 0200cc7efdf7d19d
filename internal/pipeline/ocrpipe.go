package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/ocr"
	"github.com/dongwoo46/HireLog/internal/sections"
)

// OCRPipeline processes image requests. Structure is already decided at the
// OCR stage (visual + lexical header grouping); the core and structural text
// stages are never re-run here.
type OCRPipeline struct {
	engine ocr.Engine
	kits   *kitCache
	logger *zap.Logger
}

// NewOCRPipeline wires the IMAGE pipeline over an OCR engine.
func NewOCRPipeline(engine ocr.Engine, provider *keywords.Provider, logger *zap.Logger) *OCRPipeline {
	return &OCRPipeline{engine: engine, kits: newKitCache(provider), logger: logger}
}

func (p *OCRPipeline) Source() domain.Source { return domain.SourceImage }

func (p *OCRPipeline) Process(ctx context.Context, req domain.Request) (*Output, error) {
	kit := p.kits.get()

	proc := ocr.NewProcessor(p.engine, kit.reg, p.logger)
	result, err := proc.Process(ctx, req.Images)
	if err != nil {
		return nil, jderrors.Wrap(jderrors.CodeOcrExtract, StageOCR, "ocr extraction failed", err)
	}
	if result.Status == ocr.StatusFail {
		return nil, jderrors.New(jderrors.CodeOcrExtract, StageOCR, "ocr confidence too low")
	}

	raw := ocr.GroupByHeader(result.Lines, kit.reg)
	raw = sections.ValidateRaw(raw, kit.reg)
	secs := sections.FromRaw(raw)

	docMeta := kit.extractor.Process(ocr.Texts(result.Lines))
	canonical := canonicalTail(secs, kit.reg)

	p.logger.Debug("ocr pipeline complete",
		zap.String("requestId", req.RequestID),
		zap.Float64("confidence", result.Confidence),
		zap.String("status", string(result.Status)),
		zap.Int("zones", len(canonical)))

	return &Output{
		CanonicalMap:  canonical,
		Meta:          docMeta,
		OCRStatus:     result.Status,
		OCRConfidence: result.Confidence,
	}, nil
}
