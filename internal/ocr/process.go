package ocr

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Result is the merged OCR output for one request: pages concatenated in
// input order, confidence averaged across pages.
type Result struct {
	Lines      []Line
	RawText    string
	Confidence float64
	Status     Status
	Errors     []PageError
}

// PageError records a per-image failure that did not abort the request.
type PageError struct {
	Path string
	Err  error
}

// Processor drives the per-image OCR stages and merges pages.
type Processor struct {
	engine Engine
	reg    *keywords.Registry
	post   *Postprocessor
	logger *zap.Logger
}

// NewProcessor wires the OCR stage pipeline over an engine.
func NewProcessor(engine Engine, reg *keywords.Registry, logger *zap.Logger) *Processor {
	return &Processor{
		engine: engine,
		reg:    reg,
		post:   NewPostprocessor(reg),
		logger: logger,
	}
}

// Process runs OCR over every image and merges the results. Individual page
// failures are collected, not fatal; a request with no successful page at all
// returns an error.
func (p *Processor) Process(ctx context.Context, imagePaths []string) (*Result, error) {
	paths := NormalizeImagePaths(imagePaths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image paths provided")
	}

	res := &Result{}
	var rawTexts []string
	var confidences []float64

	for _, path := range paths {
		lines, confidence, err := p.processSingle(ctx, path)
		if err != nil {
			p.logger.Warn("ocr page failed",
				zap.String("image", path),
				zap.Error(err))
			res.Errors = append(res.Errors, PageError{Path: path, Err: err})
			continue
		}

		if len(lines) > 0 {
			res.Lines = append(res.Lines, lines...)
			rawTexts = append(rawTexts, strings.Join(Texts(lines), "\n"))
		}
		if confidence > 0 {
			confidences = append(confidences, confidence)
		}
	}

	if len(confidences) > 0 {
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		res.Confidence = sum / float64(len(confidences))
	}
	res.RawText = strings.Join(rawTexts, "\n\n")
	res.Status = ClassifyConfidence(res.Confidence)

	if len(res.Lines) == 0 && len(res.Errors) == len(paths) {
		return nil, fmt.Errorf("all %d pages failed: %v", len(paths), res.Errors[0].Err)
	}
	return res, nil
}

// processSingle runs one image through the stage chain: recognition, line
// assembly, visual header scoring, quality gate, domain postprocessing.
func (p *Processor) processSingle(ctx context.Context, path string) ([]Line, float64, error) {
	page, err := p.engine.Recognize(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	if len(page.Items) == 0 {
		return nil, 0, fmt.Errorf("ocr returned empty result")
	}

	lines := BuildLines(page.Items)
	lines = ScoreVisualHeaders(lines, page.PageWidth)

	passed, dropped := FilterLowQuality(lines, MinLineConfidence, MaxGarbageRatio)
	if len(dropped) > 0 {
		p.logger.Debug("quality gate dropped lines",
			zap.String("image", path),
			zap.Int("dropped", len(dropped)),
			zap.Int("passed", len(passed)))
	}

	return p.post.Process(passed), page.Confidence, nil
}

// NormalizeImagePaths flattens the inbound image list: comma-separated
// entries are split, blanks removed, whitespace trimmed.
func NormalizeImagePaths(input []string) []string {
	var out []string
	for _, item := range input {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
