// Package urlsource fetches and reduces web job postings: a static HTTP GET
// with a headless-browser fallback for script-rendered pages, a score-based
// HTML body extractor, and the web-specific line cleaning that precedes
// section extraction.
package urlsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxBodyBytes = 5 << 20

// jdIndicatorKeywords: a JD page that actually rendered carries at least one
// of these. Their absence suggests the content is still behind JavaScript.
var jdIndicatorKeywords = []string{
	"자격요건", "우대사항", "담당업무", "주요업무", "지원자격", "복리후생", "채용절차", "전형절차", "기술스택",
	"Requirements", "Responsibilities", "Qualifications", "Preferred", "Description", "Benefits", "About the role",
}

// spaIndicators mark single-page-app shells that serve an empty document.
var spaIndicators = []string{
	`<div id="app"></div>`,
	`<div id="root"></div>`,
	`<div id="__next"></div>`,
	`<body></body>`,
	"You need to enable JavaScript to run this app",
}

// Fetcher performs the static GET leg of the hybrid fetch strategy.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a static fetcher with the given timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch GETs the URL and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// NeedsJSRendering decides whether the static response is worth parsing or
// whether the headless fallback should take over: too short, an SPA shell, or
// no JD indicator keyword anywhere.
func NeedsJSRendering(html string) bool {
	if len(html) < 500 {
		return true
	}
	for _, ind := range spaIndicators {
		if strings.Contains(html, ind) {
			return true
		}
	}
	for _, kw := range jdIndicatorKeywords {
		if strings.Contains(html, kw) {
			return false
		}
	}
	return true
}
