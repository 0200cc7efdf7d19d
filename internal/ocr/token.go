package ocr

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

// Candidate acceptance thresholds for dictionary repair.
const (
	repairMinScore = 88
	repairMinLead  = 6
	repairMaxEdit  = 2
)

// confusables maps characters the engine habitually misreads onto their
// likely intent. Applied before the edit-distance lookup.
var confusables = map[rune]rune{
	'0': 'o',
	'1': 'l',
	'5': 's',
	'8': 'b',
	'|': 'l',
	'!': 'i',
	'$': 's',
	'@': 'a',
	'€': 'e',
	'©': 'c',
}

// TokenRepairer rewrites broken technical tokens using the protected
// vocabulary as a dictionary.
type TokenRepairer struct {
	vocab []string // original casing
	reg   *keywords.Registry
}

// NewTokenRepairer builds a repairer over the registry's technical vocab.
func NewTokenRepairer(reg *keywords.Registry) *TokenRepairer {
	return &TokenRepairer{vocab: reg.Vocab, reg: reg}
}

// Repair normalises one token. Known vocabulary passes through untouched (in
// dictionary casing); garbage tokens return ok=false; tokens close enough to
// exactly one dictionary word are rewritten to it; everything else passes
// through unchanged.
func (t *TokenRepairer) Repair(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	if t.reg.IsVocabWord(token) {
		return t.dictionaryCasing(token), true
	}

	if looksGarbageToken(token) {
		// A garbage token may still be a mangled vocab word; try repair
		// before dropping it.
		if fixed, ok := t.lookupClosest(token); ok {
			return fixed, true
		}
		return "", false
	}

	if fixed, ok := t.lookupClosest(token); ok {
		return fixed, true
	}
	return token, true
}

// lookupClosest scores the token against the whole dictionary and accepts the
// best candidate only when it clears the score floor and leads the runner-up
// decisively.
func (t *TokenRepairer) lookupClosest(token string) (string, bool) {
	repaired := applyConfusables(strings.ToLower(token))

	best, second := 0, 0
	bestWord := ""
	for _, word := range t.vocab {
		score := matchScore(repaired, strings.ToLower(word))
		if score > best {
			second = best
			best = score
			bestWord = word
		} else if score > second {
			second = score
		}
	}

	if best >= repairMinScore && best-second >= repairMinLead {
		return bestWord, true
	}
	return "", false
}

// matchScore converts edit distance into a 0..100 similarity score
// (sequence-ratio style: 200*matched/(len1+len2), matched approximated as
// maxLen-dist). Distances beyond repairMaxEdit score zero.
func matchScore(token, word string) int {
	if token == word {
		return 100
	}
	dist := levenshtein.ComputeDistance(token, word)
	if dist > repairMaxEdit {
		return 0
	}
	lt, lw := len([]rune(token)), len([]rune(word))
	longer := lw
	if lt > longer {
		longer = lt
	}
	if lt+lw == 0 {
		return 0
	}
	matched := longer - dist
	if matched < 0 {
		matched = 0
	}
	return (200 * matched) / (lt + lw)
}

func applyConfusables(token string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := confusables[r]; ok {
			return repl
		}
		return r
	}, token)
}

func (t *TokenRepairer) dictionaryCasing(token string) string {
	lowered := strings.ToLower(token)
	for _, word := range t.vocab {
		if strings.ToLower(word) == lowered {
			return word
		}
	}
	return token
}
