package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/sections"
	"github.com/dongwoo46/HireLog/internal/urlsource"
)

// StaticFetcher is the plain-HTTP fetch leg.
type StaticFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DynamicFetcher is the headless-browser leg used when the static response is
// unusable.
type DynamicFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// URLPipeline processes web-posting requests: hybrid fetch, block-scored HTML
// extraction, web noise cleaning, keyword section extraction, and the shared
// canonical tail.
type URLPipeline struct {
	static  StaticFetcher
	dynamic DynamicFetcher
	kits    *kitCache
	logger  *zap.Logger
}

// NewURLPipeline wires the URL pipeline.
func NewURLPipeline(static StaticFetcher, dynamic DynamicFetcher, provider *keywords.Provider, logger *zap.Logger) *URLPipeline {
	return &URLPipeline{static: static, dynamic: dynamic, kits: newKitCache(provider), logger: logger}
}

func (p *URLPipeline) Source() domain.Source { return domain.SourceURL }

func (p *URLPipeline) Process(ctx context.Context, req domain.Request) (*Output, error) {
	kit := p.kits.get()

	html, err := p.fetch(ctx, req.URL)
	if err != nil {
		return nil, jderrors.Wrap(jderrors.CodeURLFetch, StageFetch, "url fetch failed", err)
	}

	parsed, err := urlsource.Parse(html)
	if err != nil {
		return nil, jderrors.Wrap(jderrors.CodeURLParse, StageHTMLParse, "html parse failed", err)
	}

	cleaned := urlsource.CleanLines(parsed.Body, kit.reg)
	if len(cleaned) == 0 {
		p.logger.Warn("no body text after cleaning",
			zap.String("requestId", req.RequestID),
			zap.String("url", req.URL))
		return &Output{
			CanonicalMap: domain.CanonicalMap{},
			Meta:         kit.extractor.Process(nil),
		}, nil
	}

	raw := urlsource.ExtractSections(cleaned, kit.reg)
	raw = sections.ValidateRaw(raw, kit.reg)
	secs := sections.FromRaw(raw)

	docMeta := kit.extractor.Process(cleaned)
	canonical := canonicalTail(secs, kit.reg)

	p.logger.Debug("url pipeline complete",
		zap.String("requestId", req.RequestID),
		zap.String("url", req.URL),
		zap.Int("cleanedLines", len(cleaned)),
		zap.Int("zones", len(canonical)))

	return &Output{CanonicalMap: canonical, Meta: docMeta}, nil
}

// fetch runs the hybrid strategy: static GET first, headless fallback when
// the response is short, an SPA shell, keyword-free, or the GET itself fails.
func (p *URLPipeline) fetch(ctx context.Context, url string) (string, error) {
	html, err := p.static.Fetch(ctx, url)
	if err != nil {
		p.logger.Info("static fetch failed, switching to headless",
			zap.String("url", url),
			zap.Error(err))
		return p.dynamic.Fetch(ctx, url)
	}
	if urlsource.NeedsJSRendering(html) {
		p.logger.Info("response needs js rendering, switching to headless",
			zap.String("url", url))
		return p.dynamic.Fetch(ctx, url)
	}
	return html, nil
}
