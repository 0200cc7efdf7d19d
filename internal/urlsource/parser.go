package urlsource

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parsed is the title and line-split body text extracted from a page.
type Parsed struct {
	Title string
	Body  []string
}

// Block tags that can host a JD body.
var blockSelectors = []string{"div", "section", "article", "main", "td"}

// jdKeywords weight candidate blocks during scoring. The strongest signal a
// block is the posting body.
var jdKeywords = []string{
	"자격요건", "우대사항", "담당업무", "주요업무", "지원자격", "복리후생", "전형절차",
	"Requirements", "Responsibilities", "Qualifications", "Preferred", "Description", "Benefits",
}

// Parse extracts the posting body from HTML. Instead of site-specific
// selectors it scores every block element (text volume, long-paragraph
// count, JD keyword hits, link-density and short-line-density penalties)
// and keeps the winner.
func Parse(html string) (*Parsed, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Strip tags that never carry body text.
	doc.Find("script, style, noscript, iframe, svg, path, header, footer, nav").Remove()

	var best *goquery.Selection
	bestScore := 0.0

	for _, tag := range blockSelectors {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			score := scoreBlock(sel)
			if score > bestScore {
				bestScore = score
				best = sel
			}
		})
	}

	var root *goquery.Selection
	if best != nil {
		root = best
	} else {
		root = doc.Find("body").First()
		if root.Length() == 0 {
			root = doc.Selection
		}
	}

	return &Parsed{Title: title, Body: extractCleanLines(root)}, nil
}

func scoreBlock(sel *goquery.Selection) float64 {
	text := squashSpace(sel.Text())
	if len([]rune(text)) < 50 {
		return 0
	}

	score := float64(len([]rune(text))) * 0.1

	// Long sentences separate postings from menus.
	longParagraphs := 0
	for _, part := range strings.Split(text, ".") {
		if len([]rune(strings.TrimSpace(part))) > 50 {
			longParagraphs++
		}
	}
	score += float64(longParagraphs) * 100

	keywordHits := 0
	for _, kw := range jdKeywords {
		if strings.Contains(text, kw) {
			keywordHits++
		}
	}
	score += float64(keywordHits) * 300

	// Link-dominated blocks are navigation.
	linkTextLen := 0
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkTextLen += len([]rune(squashSpace(a.Text())))
	})
	if total := len([]rune(text)); total > 0 {
		linkDensity := float64(linkTextLen) / float64(total)
		if linkDensity > 0.3 {
			score *= 1 - linkDensity*2
		}
	}

	// Mostly-short-line blocks are menus, unless keywords vouch for them
	// (bullet-heavy JDs look similar).
	lines := nonEmptyLines(sel.Text())
	if len(lines) > 0 {
		short := 0
		for _, l := range lines {
			if len([]rune(l)) < 30 {
				short++
			}
		}
		if float64(short)/float64(len(lines)) > 0.8 && keywordHits < 2 {
			score *= 0.5
		}
	}

	return score
}

// extractCleanLines pulls line-level text out of the chosen root, dropping
// explicit UI words and single-character fragments.
func extractCleanLines(root *goquery.Selection) []string {
	uiWords := map[string]struct{}{
		"닫기": {}, "Close": {}, "Share": {}, "공유하기": {}, "지원하기": {},
		"Apply": {}, "Filter": {}, "초기화": {}, "검색": {},
	}

	var out []string
	for _, line := range nonEmptyLines(blockText(root)) {
		if _, ui := uiWords[line]; ui {
			continue
		}
		if len([]rune(line)) < 2 && !strings.ContainsAny(line, "0123456789") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// blockText renders the selection's text with newlines between block-level
// children so lines survive extraction.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	blockTags := map[string]struct{}{
		"div": {}, "p": {}, "section": {}, "article": {}, "li": {}, "ul": {},
		"ol": {}, "br": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {},
		"tr": {}, "td": {}, "table": {}, "main": {},
	}
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				b.WriteString(c.Text())
				return
			}
			if _, block := blockTags[goquery.NodeName(c)]; block {
				b.WriteString("\n")
				walk(c)
				b.WriteString("\n")
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return b.String()
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func squashSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
