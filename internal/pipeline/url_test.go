package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
)

type stubFetcher struct {
	html  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.html, nil
}

const renderedJD = `<html><head><title>채용</title></head><body><div id="content">
<p>함께 성장할 백엔드 엔지니어를 찾고 있습니다. 대규모 트래픽 환경에서 안정적인 서비스를 만드는 일에 관심이 많은 분이면 좋습니다. 코드 리뷰와 문서화를 중요하게 생각하며 동료와 함께 꾸준히 개선해 나가는 문화를 만들어 가고 있습니다.</p>
<p>팀은 주문, 결제, 정산 도메인의 서버를 맡고 있으며 하루 수천만 건의 요청을 처리합니다. 장애 대응 경험을 바탕으로 모니터링과 알림 체계를 꾸준히 다듬고 있고, 배포 자동화와 테스트 문화를 중요하게 여깁니다. 새로운 기술을 도입할 때에는 팀원 모두가 함께 검토하고 결정하며, 결정한 내용은 문서로 남겨 누구나 다시 찾아볼 수 있도록 합니다.</p>
<h3>주요업무</h3>
<p>백엔드 API 개발</p>
<p>데이터 파이프라인 운영</p>
<h3>자격요건</h3>
<p>Java 경험 3년 이상</p>
<h3>우대사항</h3>
<p>Kafka 운영 경험</p>
</div></body></html>`

func TestURLPipeline_StaticFetchSuccess(t *testing.T) {
	static := &stubFetcher{html: renderedJD}
	dynamic := &stubFetcher{html: renderedJD}

	p := NewURLPipeline(static, dynamic, testProvider(t), zap.NewNop())
	out, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-url-1",
		Source:    domain.SourceURL,
		URL:       "https://jobs.example.com/1",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if dynamic.calls != 0 {
		t.Errorf("headless fallback must not run for rendered pages")
	}

	if got := out.CanonicalMap[domain.ZoneResponsibilities]; len(got) != 2 {
		t.Errorf("responsibilities = %q", got)
	}
	if got := out.CanonicalMap[domain.ZonePreferred]; len(got) != 1 || got[0] != "Kafka 운영 경험" {
		t.Errorf("preferred = %q", got)
	}
}

func TestURLPipeline_SPAFallsBackToHeadless(t *testing.T) {
	spaShell := `<html><body><div id="root"></div>` + strings.Repeat("<p>shell padding here</p>", 40) + `</body></html>`
	static := &stubFetcher{html: spaShell}
	dynamic := &stubFetcher{html: renderedJD}

	p := NewURLPipeline(static, dynamic, testProvider(t), zap.NewNop())
	out, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-url-2",
		Source:    domain.SourceURL,
		URL:       "https://spa.example.com/2",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if dynamic.calls != 1 {
		t.Errorf("headless fallback calls = %d, want 1", dynamic.calls)
	}
	if len(out.CanonicalMap) == 0 {
		t.Errorf("canonical map empty after fallback")
	}
}

func TestURLPipeline_StaticErrorFallsBackToHeadless(t *testing.T) {
	static := &stubFetcher{err: fmt.Errorf("connection refused")}
	dynamic := &stubFetcher{html: renderedJD}

	p := NewURLPipeline(static, dynamic, testProvider(t), zap.NewNop())
	_, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-url-3",
		Source:    domain.SourceURL,
		URL:       "https://down.example.com/3",
	})
	if err != nil {
		t.Fatalf("fallback should have recovered: %v", err)
	}
	if dynamic.calls != 1 {
		t.Errorf("headless fallback calls = %d, want 1", dynamic.calls)
	}
}

func TestURLPipeline_BothLegsFail(t *testing.T) {
	static := &stubFetcher{err: fmt.Errorf("connection refused")}
	dynamic := &stubFetcher{err: fmt.Errorf("browser crashed")}

	p := NewURLPipeline(static, dynamic, testProvider(t), zap.NewNop())
	_, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-url-4",
		Source:    domain.SourceURL,
		URL:       "https://down.example.com/4",
	})
	if err == nil {
		t.Fatalf("expected fetch failure")
	}

	var perr *jderrors.ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("error is not a ProcessingError: %v", err)
	}
	if perr.Code != jderrors.CodeURLFetch {
		t.Errorf("code = %q, want PIPELINE_URL_001", perr.Code)
	}
	if perr.Category() != jderrors.CategoryRecoverable {
		t.Errorf("category = %q, want RECOVERABLE", perr.Category())
	}
}

func TestURLPipeline_DateOnlyPage(t *testing.T) {
	html := `<html><body><div>
<p>접수기간 안내: 2026.01.19 ~ 2026.02.06 마감이며 자격요건은 공고 본문을 참고해 주시기 바랍니다. 서류는 온라인으로만 접수합니다.</p>
</div></body></html>`
	static := &stubFetcher{html: html}
	dynamic := &stubFetcher{html: html}

	p := NewURLPipeline(static, dynamic, testProvider(t), zap.NewNop())
	out, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-url-5",
		Source:    domain.SourceURL,
		URL:       "https://jobs.example.com/5",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Meta.RecruitmentPeriod.Type != domain.PeriodFixed {
		t.Errorf("period = %q, want FIXED", out.Meta.RecruitmentPeriod.Type)
	}
}
