package urlsource

import (
	"strings"
	"testing"
)

func TestParse_PicksJDBlockOverMenus(t *testing.T) {
	html := `<html><head><title>백엔드 개발자 채용</title></head><body>
<nav><a href="/">홈</a><a href="/jobs">채용</a><a href="/about">회사</a></nav>
<div id="sidebar">
  <a href="#">로그인</a> <a href="#">회원가입</a> <a href="#">고객센터</a>
  <a href="#">이용약관</a> <a href="#">개인정보처리방침</a>
</div>
<div id="content">
  <p>저희 팀은 대규모 트래픽을 처리하는 커머스 플랫폼을 운영하고 있으며 함께 성장할 동료를 찾고 있습니다. 안정적인 서비스 운영과 빠른 기능 개발을 함께 추구합니다.</p>
  <h3>주요업무</h3>
  <ul><li>백엔드 API 개발</li><li>데이터 파이프라인 운영</li></ul>
  <h3>자격요건</h3>
  <ul><li>Java 또는 Kotlin 경험</li><li>AWS 운영 경험</li></ul>
  <h3>우대사항</h3>
  <ul><li>Kafka 운영 경험</li></ul>
</div>
</body></html>`

	parsed, err := Parse(html)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.Title != "백엔드 개발자 채용" {
		t.Errorf("title = %q", parsed.Title)
	}

	body := strings.Join(parsed.Body, "\n")
	for _, want := range []string{"주요업무", "백엔드 API 개발", "자격요건", "우대사항", "Kafka 운영 경험"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "이용약관") {
		t.Errorf("sidebar text leaked into body:\n%s", body)
	}
}

func TestParse_ScriptAndStyleStripped(t *testing.T) {
	html := `<html><body>
<script>var tracking = "secret";</script>
<style>.cls { color: red }</style>
<div>자격요건을 확인해 주세요. 백엔드 개발 경험이 있는 분을 찾고 있으며 관련 기술에 관심이 많은 분이면 좋습니다.</div>
</body></html>`

	parsed, err := Parse(html)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := strings.Join(parsed.Body, "\n")
	if strings.Contains(body, "tracking") || strings.Contains(body, "color") {
		t.Errorf("script/style leaked: %q", body)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	parsed, err := Parse("<html><body></body></html>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Body) != 0 {
		t.Errorf("expected empty body, got %q", parsed.Body)
	}
}
