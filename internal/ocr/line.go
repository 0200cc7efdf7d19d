// Package ocr post-processes the output of an external OCR engine into a
// clean, section-grouped line document. The engine itself (and image
// preprocessing) is an external collaborator reached through the Engine
// interface; everything after its raw items is owned here.
package ocr

import (
	"sort"
	"strings"
)

// rowTolerance buckets y coordinates so visually aligned items sort as one
// row before x ordering kicks in.
const rowTolerance = 5

const (
	maxWrapYGap        = 25
	heightSimilarRatio = 0.8
)

// BBox is an axis-aligned box derived from the engine's polygon.
type BBox struct {
	X, Y, W, H float64
}

// Line is one OCR text line in pipeline form. Immutable after construction;
// stages produce rewritten copies.
type Line struct {
	Text        string
	Confidence  float64 // 0..100
	LowConf     bool
	BBox        BBox
	Height      float64 // estimated glyph height
	TokenCount  int
	HeaderScore int
}

// BuildLines converts raw engine items into pipeline lines: bbox from the
// polygon, top-to-bottom visual sort, and wrapped-line merging for bullet
// continuations.
func BuildLines(items []RawItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			Text:       text,
			Confidence: item.Confidence,
			LowConf:    item.Confidence < 60,
			BBox:       bboxFromPolygon(item.Box),
			Height:     item.Height,
			TokenCount: len(strings.Fields(text)),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		ri := int(lines[i].BBox.Y) / rowTolerance
		rj := int(lines[j].BBox.Y) / rowTolerance
		if ri != rj {
			return ri < rj
		}
		return lines[i].BBox.X < lines[j].BBox.X
	})

	return mergeWrappedLines(lines)
}

func bboxFromPolygon(box [][2]float64) BBox {
	if len(box) == 0 {
		return BBox{}
	}
	minX, minY := box[0][0], box[0][1]
	maxX, maxY := minX, minY
	for _, p := range box[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return BBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// mergeWrappedLines joins a line into its predecessor when it reads as the
// wrapped continuation of the same bullet: close vertically, similar glyph
// style, and not itself a bullet start.
func mergeWrappedLines(lines []Line) []Line {
	if len(lines) == 0 {
		return lines
	}

	out := []Line{lines[0]}
	for _, cur := range lines[1:] {
		prev := &out[len(out)-1]
		if isWrappedContinuation(*prev, cur) {
			prev.Text = prev.Text + " " + cur.Text
			prev.TokenCount = len(strings.Fields(prev.Text))
			if cur.Confidence < prev.Confidence {
				prev.Confidence = cur.Confidence
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// Only wraps inside a bullet item are merged: the predecessor must be a
// bullet line and the continuation must not open a new one.
func isWrappedContinuation(prev, cur Line) bool {
	if !strings.HasPrefix(prev.Text, "•") && !strings.HasPrefix(prev.Text, "-") {
		return false
	}
	if strings.HasPrefix(cur.Text, "•") || strings.HasPrefix(cur.Text, "-") {
		return false
	}
	gap := cur.BBox.Y - (prev.BBox.Y + prev.BBox.H)
	if gap < 0 || gap > maxWrapYGap {
		return false
	}
	if prev.Height <= 0 || cur.Height <= 0 {
		return false
	}
	ratio := cur.Height / prev.Height
	if ratio > 1 {
		ratio = 1 / ratio
	}
	return ratio >= heightSimilarRatio
}

// Texts extracts the text of every line, in order.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
