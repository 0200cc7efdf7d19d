package sections

import (
	"reflect"
	"testing"
)

func TestValidateRaw_IntroAbsorption(t *testing.T) {
	reg := testRegistry(t)

	raw := []RawSection{
		{Key: "커넥트웨이브", Lines: []string{"백엔드 개발자 채용 공고입니다"}},
		{Key: "주요업무", Lines: []string{"백엔드 API 개발"}},
		{Key: "자격요건", Lines: []string{"Java 경험"}},
	}

	got := ValidateRaw(raw, reg)
	if len(got) != 3 {
		t.Fatalf("expected 3 sections, got %d: %+v", len(got), got)
	}
	if got[0].Key != IntroKey {
		t.Errorf("first key = %q, want intro", got[0].Key)
	}
	wantIntro := []string{"커넥트웨이브", "백엔드 개발자 채용 공고입니다"}
	if !reflect.DeepEqual(got[0].Lines, wantIntro) {
		t.Errorf("intro lines = %q, want %q", got[0].Lines, wantIntro)
	}
	if got[1].Key != "주요업무" || got[2].Key != "자격요건" {
		t.Errorf("keyword sections disturbed: %+v", got[1:])
	}
}

func TestValidateRaw_EmptyHeaderMerge(t *testing.T) {
	reg := testRegistry(t)

	raw := []RawSection{
		{Key: "주요업무", Lines: []string{"개발"}},
		{Key: "채용절차", Lines: nil},
		{Key: "전형절차", Lines: nil},
		{Key: "지원방법", Lines: []string{"서류전형 - 코딩테스트 - 면접"}},
	}

	got := ValidateRaw(raw, reg)
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(got), got)
	}
	if got[1].Key != "채용절차" {
		t.Errorf("merged key = %q", got[1].Key)
	}
	want := []string{"전형절차", "지원방법", "서류전형 - 코딩테스트 - 면접"}
	if !reflect.DeepEqual(got[1].Lines, want) {
		t.Errorf("merged lines = %q, want %q", got[1].Lines, want)
	}
}

func TestValidateRaw_FooterStrip(t *testing.T) {
	reg := testRegistry(t)

	raw := []RawSection{
		{Key: "복리후생", Lines: []string{
			"유연한 근무 환경과 다양한 복지를 제공합니다",
			"커피·스낵바",
			"적극채용중",
			"AI 선도기업",
		}},
	}

	got := ValidateRaw(raw, reg)
	want := []string{"유연한 근무 환경과 다양한 복지를 제공합니다"}
	if !reflect.DeepEqual(got[0].Lines, want) {
		t.Errorf("footer not stripped: %q", got[0].Lines)
	}
}

func TestValidateRaw_SingleShortTrailingLineKept(t *testing.T) {
	reg := testRegistry(t)

	raw := []RawSection{
		{Key: "마감일", Lines: []string{"상시채용"}},
	}
	got := ValidateRaw(raw, reg)
	if !reflect.DeepEqual(got[0].Lines, []string{"상시채용"}) {
		t.Errorf("single short line must survive, got %q", got[0].Lines)
	}
}

func TestToRawFromRaw_RoundTrip(t *testing.T) {
	secs := Build([]string{
		"회사 소개 문장입니다 길게 씁니다 환영합니다",
		"주요업무",
		"• 백엔드 개발",
	}, testRegistry(t))

	raw := ToRaw(secs)
	if raw[0].Key != IntroKey {
		t.Fatalf("first raw key = %q", raw[0].Key)
	}

	restored := FromRaw(raw)
	if restored[0].SemanticZone != "intro" {
		t.Errorf("intro zone lost: %+v", restored[0])
	}
	if restored[1].Header != "주요업무" {
		t.Errorf("header lost: %+v", restored[1])
	}
	// List items are flattened into prose lines by the raw view.
	if !reflect.DeepEqual(restored[1].Lines, []string{"백엔드 개발"}) {
		t.Errorf("flattened lines = %q", restored[1].Lines)
	}
}
