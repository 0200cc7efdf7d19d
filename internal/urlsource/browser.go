package urlsource

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// expandButtonTexts lists the "show more" button labels clicked to reveal
// collapsed JD bodies. Korean job boards first, then English.
var expandButtonTexts = []string{
	"상세 정보 더 보기",
	"상세정보 더보기",
	"상세정보 더 보기",
	"더보기",
	"더 보기",
	"자세히 보기",
	"자세히보기",
	"펼치기",
	"전체보기",
	"전체 보기",
	"내용 더보기",
	"내용 더 보기",
	"Show more",
	"View more",
	"Read more",
	"See more",
	"Expand",
	"Load more",
	"See full description",
	"View full description",
}

// BrowserFetcher renders script-heavy pages in a headless Chromium via rod.
// It scrolls the page, clicks any expand buttons and returns the final DOM.
// Sites without expand buttons cost only the bounded scroll/click sweep,
// never an error.
type BrowserFetcher struct {
	timeout     time.Duration
	idleTimeout time.Duration
	logger      *zap.Logger
}

// NewBrowserFetcher builds the headless fallback fetcher. timeout bounds the
// whole page load; idleTimeout bounds the best-effort network-idle wait.
func NewBrowserFetcher(timeout, idleTimeout time.Duration, logger *zap.Logger) *BrowserFetcher {
	return &BrowserFetcher{timeout: timeout, idleTimeout: idleTimeout, logger: logger}
}

// Fetch renders the URL and returns the resulting HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func() {
		// rod panics on protocol errors; the fallback must degrade to an
		// error value the pipeline can turn into PIPELINE_URL_001.
		if r := recover(); r != nil {
			err = fmt.Errorf("headless fetch %s: %v", url, r)
		}
	}()

	l := launcher.New().Headless(true).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	page = page.Timeout(f.timeout)

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	// Best-effort idle wait; script-heavy boards keep sockets open, so a
	// timeout here is expected and ignored.
	waitIdle := page.Timeout(f.idleTimeout).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	waitIdle()

	f.scrollPage(page)
	clicked := f.clickExpandButtons(page)
	if clicked > 0 {
		f.logger.Debug("expand buttons clicked",
			zap.String("url", url),
			zap.Int("count", clicked))
		time.Sleep(500 * time.Millisecond)
	}

	rendered, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read dom: %w", err)
	}

	f.logger.Info("headless fetch complete",
		zap.String("url", url),
		zap.Int("length", len(rendered)))
	return rendered, nil
}

// scrollPage walks to the middle, the bottom and back up so lazy-loaded
// content attaches. Failures are ignored.
func (f *BrowserFetcher) scrollPage(page *rod.Page) {
	for _, js := range []string{
		`() => window.scrollTo(0, document.body.scrollHeight / 2)`,
		`() => window.scrollTo(0, document.body.scrollHeight)`,
		`() => window.scrollTo(0, 0)`,
	} {
		if _, err := page.Eval(js); err != nil {
			return
		}
		time.Sleep(300 * time.Millisecond)
	}
}

// clickExpandButtons clicks every visible element whose text matches an
// expand-button label. Runs entirely inside the page to stay bounded.
func (f *BrowserFetcher) clickExpandButtons(page *rod.Page) int {
	patterns := make([]interface{}, len(expandButtonTexts))
	for i, t := range expandButtonTexts {
		patterns[i] = t
	}

	res, err := page.Eval(`(patterns) => {
		let clicked = 0;
		const elements = document.querySelectorAll('button, a, span, div, [role="button"]');
		for (const el of elements) {
			const text = (el.textContent || '').trim();
			for (const pattern of patterns) {
				if (text === pattern || text.includes(pattern)) {
					const rect = el.getBoundingClientRect();
					if (rect.width > 0 && rect.height > 0) {
						try { el.click(); clicked++; } catch (e) {}
					}
					break;
				}
			}
		}
		return clicked;
	}`, patterns)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}
