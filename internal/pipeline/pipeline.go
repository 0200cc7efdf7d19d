// Package pipeline composes the per-source preprocessing pipelines. Each
// pipeline takes a parsed request and produces the canonical zone map plus
// document metadata, or a tagged ProcessingError from the closed code set.
package pipeline

import (
	"context"
	"sync"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/meta"
	"github.com/dongwoo46/HireLog/internal/ocr"
	"github.com/dongwoo46/HireLog/internal/sections"
)

// Stage names published on fail events.
const (
	StageParse      = "PARSE"
	StageCore       = "CORE"
	StageFetch      = "FETCH"
	StageHTMLParse  = "HTML_PARSE"
	StageOCR        = "OCR"
	StageStructural = "STRUCTURAL"
	StageCanonical  = "CANONICAL"
	StagePublish    = "PUBLISH"
)

// Output is the successful result of one pipeline run.
type Output struct {
	CanonicalMap domain.CanonicalMap
	Meta         domain.DocumentMeta

	// OCR-only diagnostics; zero values for TEXT and URL.
	OCRStatus     ocr.Status
	OCRConfidence float64
}

// Pipeline is the per-source processing capability. Implementations must
// return either an Output or a *jderrors.ProcessingError.
type Pipeline interface {
	Process(ctx context.Context, req domain.Request) (*Output, error)
	Source() domain.Source
}

// registryKit bundles the registry-derived helpers a pipeline needs. Rebuilt
// lazily whenever the keyword provider swaps in a new registry.
type registryKit struct {
	reg       *keywords.Registry
	extractor *meta.Extractor
}

type kitCache struct {
	provider *keywords.Provider
	mu       sync.Mutex
	kit      *registryKit
}

func newKitCache(provider *keywords.Provider) *kitCache {
	return &kitCache{provider: provider}
}

func (c *kitCache) get() *registryKit {
	reg := c.provider.Get()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kit == nil || c.kit.reg != reg {
		c.kit = &registryKit{reg: reg, extractor: meta.NewExtractor(reg)}
	}
	return c.kit
}

// canonicalTail runs the shared Semantic -> Filter -> Canonical stages.
func canonicalTail(secs []domain.Section, reg *keywords.Registry) domain.CanonicalMap {
	secs = sections.TagZones(secs, reg)
	secs = sections.FilterIrrelevant(secs)
	return sections.BuildCanonical(secs)
}
