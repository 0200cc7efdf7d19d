package ocr

import (
	"strings"
	"unicode"
)

// Quality-gate defaults. Lines below these are cut before any rewriting.
const (
	MinLineConfidence = 45.0
	MaxGarbageRatio   = 0.6
)

// DroppedLine records why the quality gate removed a line. Kept for
// threshold tuning and debugging dumps.
type DroppedLine struct {
	Reason string
	Line   Line
}

// FilterLowQuality is the line-level quality gate over OCR output. It blocks
// only lines the engine itself does not trust. No text correction and no
// domain judgement happens here.
func FilterLowQuality(lines []Line, minConfidence, maxGarbageRatio float64) (passed []Line, dropped []DroppedLine) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			dropped = append(dropped, DroppedLine{Reason: "empty_text", Line: line})
			continue
		}

		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			dropped = append(dropped, DroppedLine{Reason: "no_tokens", Line: line})
			continue
		}

		if line.Confidence < minConfidence {
			dropped = append(dropped, DroppedLine{Reason: "low_confidence", Line: line})
			continue
		}

		garbage := 0
		for _, tok := range tokens {
			if looksGarbageToken(tok) {
				garbage++
			}
		}
		if float64(garbage)/float64(len(tokens)) > maxGarbageRatio {
			dropped = append(dropped, DroppedLine{Reason: "high_garbage_ratio", Line: line})
			continue
		}

		passed = append(passed, line)
	}
	return passed, dropped
}

// looksGarbageToken flags tokens that read as OCR misrecognition. The check
// is conservative: technical tokens like k8s, gRPC or Node.js must survive.
func looksGarbageToken(token string) bool {
	runes := []rune(token)
	length := len(runes)

	// Single-character tokens are almost always noise.
	if length <= 1 {
		return true
	}

	alnum := 0
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}

	if float64(alnum)/float64(length) < 0.4 {
		return true
	}
	if length-alnum > length/2 {
		return true
	}
	return false
}
