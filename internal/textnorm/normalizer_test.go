package textnorm

import (
	"reflect"
	"testing"

	"github.com/dongwoo46/HireLog/internal/keywords"
)

func testRegistry(t *testing.T) *keywords.Registry {
	t.Helper()
	reg, err := keywords.Load("../../configs")
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

func TestProcess_KoreanJD(t *testing.T) {
	n := New(testRegistry(t))

	input := "주요업무\n• 백엔드 API 개발\n• 데이터 파이프라인 운영\n\n자격요건\n• Java/Kotlin 3년 이상\n• AWS 운영 경험\n"
	got := n.Process(input)

	want := []string{
		"주요업무",
		"• 백엔드 API 개발",
		"• 데이터 파이프라인 운영",
		"자격요건",
		"• Java/Kotlin 3년 이상",
		"• AWS 운영 경험",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	n := New(testRegistry(t))

	input := "회사소개\n- 데이터 플랫폼을 만듭니다\n1. 백엔드API개발\n① 코드리뷰 문화\n"
	first := n.Process(input)

	second := n.Process(joinLines(first))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normaliser not idempotent:\nfirst  %q\nsecond %q", first, second)
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func TestProcess_HangulLatinSpacing(t *testing.T) {
	n := New(testRegistry(t))

	got := n.Process("백엔드API개발 경험")
	if len(got) != 1 || got[0] != "백엔드 API 개발 경험" {
		t.Errorf("expected spaced boundary, got %q", got)
	}

	// Digit boundaries stay glued.
	got = n.Process("경력 3년 이상")
	if len(got) != 1 || got[0] != "경력 3년 이상" {
		t.Errorf("digit boundary must not be split, got %q", got)
	}
}

func TestProcess_LineEndingsAndControls(t *testing.T) {
	n := New(testRegistry(t))

	got := n.Process("첫번째 줄입니다\r\n두번째 줄입니다\r세번째\x00 줄입니다")
	want := []string{"첫번째 줄입니다", "두번째 줄입니다", "세번째 줄입니다"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestProcess_DropsNoiseLines(t *testing.T) {
	n := New(testRegistry(t))

	got := n.Process("지원하기\n주요업무 내용입니다\nprivacy policy and cookies notice")
	want := []string{"주요업무 내용입니다"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestProcess_DropsDamagedLines(t *testing.T) {
	n := New(testRegistry(t))

	for _, broken := range []string{"###", "=-=-=-=-=", "~~~"} {
		if got := n.Process(broken); len(got) != 0 {
			t.Errorf("expected %q to be dropped, got %q", broken, got)
		}
	}

	// Short but meaningful survives.
	if got := n.Process("AWS"); len(got) != 1 {
		t.Errorf("expected AWS to survive, got %q", got)
	}
}

func TestProcess_Empty(t *testing.T) {
	n := New(testRegistry(t))
	if got := n.Process(""); len(got) != 0 {
		t.Errorf("expected no lines for empty input, got %q", got)
	}
}

func TestNormalizeBullet(t *testing.T) {
	cases := map[string]string{
		"• 이미 표준 불릿":  "• 이미 표준 불릿",
		"- 대시 불릿":     "• 대시 불릿",
		"* 별표 불릿":     "• 별표 불릿",
		"1. 숫자 불릿":    "• 숫자 불릿",
		"2) 숫자 괄호":    "• 숫자 괄호",
		"(3) 괄호 숫자":   "• 괄호 숫자",
		"① 원문자":       "• 원문자",
		"가. 한글 마커":    "• 한글 마커",
		"일반 본문 라인입니다": "일반 본문 라인입니다",
		"2026.01.19 ~ 2026.02.06": "2026.01.19 ~ 2026.02.06",
	}
	for in, want := range cases {
		if got := normalizeBullet(in); got != want {
			t.Errorf("normalizeBullet(%q) = %q, want %q", in, got, want)
		}
	}
}
