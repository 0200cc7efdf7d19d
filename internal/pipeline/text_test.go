package pipeline

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/keywords"
)

func testProvider(t *testing.T) *keywords.Provider {
	t.Helper()
	provider, err := keywords.NewProvider("../../configs", zap.NewNop())
	if err != nil {
		t.Fatalf("load keyword provider: %v", err)
	}
	return provider
}

const koreanJD = `주요업무
• 백엔드 API 개발
• 데이터 파이프라인 운영

자격요건
• Java/Kotlin 3년 이상
• AWS 운영 경험

우대사항
• Kafka 운영 경험

마감일
상시채용
`

func TestTextPipeline_KoreanJD(t *testing.T) {
	p := NewTextPipeline(testProvider(t), zap.NewNop())

	out, err := p.Process(context.Background(), domain.Request{
		RequestID:    "req-1",
		BrandName:    "커넥트웨이브",
		PositionName: "백엔드 엔지니어",
		Source:       domain.SourceText,
		Text:         koreanJD,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	wantZones := map[string][]string{
		domain.ZoneResponsibilities: {"백엔드 API 개발", "데이터 파이프라인 운영"},
		domain.ZoneRequirements:     {"Java/Kotlin 3년 이상", "AWS 운영 경험"},
		domain.ZonePreferred:        {"Kafka 운영 경험"},
	}
	for zone, want := range wantZones {
		if !reflect.DeepEqual(out.CanonicalMap[zone], want) {
			t.Errorf("zone %q = %q, want %q", zone, out.CanonicalMap[zone], want)
		}
	}

	// The deadline section is blacklisted and must not surface as a zone.
	for zone, lines := range out.CanonicalMap {
		for _, l := range lines {
			if l == "상시채용" {
				t.Errorf("deadline content leaked into zone %q", zone)
			}
		}
	}

	if out.Meta.RecruitmentPeriod.Type != domain.PeriodAlways {
		t.Errorf("period = %q, want ALWAYS", out.Meta.RecruitmentPeriod.Type)
	}
	for _, skill := range []string{"aws", "java", "kafka", "kotlin"} {
		if !containsString(out.Meta.SkillSet.Skills, skill) {
			t.Errorf("skills %v missing %q", out.Meta.SkillSet.Skills, skill)
		}
	}
}

func TestTextPipeline_FixedDateRange(t *testing.T) {
	p := NewTextPipeline(testProvider(t), zap.NewNop())

	out, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-2",
		Source:    domain.SourceText,
		Text:      "모집기간\n2026.01.19 ~ 2026.02.06 (17:00)\n",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	period := out.Meta.RecruitmentPeriod
	if period.Type != domain.PeriodFixed {
		t.Fatalf("period = %q, want FIXED", period.Type)
	}
	if period.OpenDate != "2026.01.19" || period.CloseDate != "2026.02.06" {
		t.Errorf("dates = %q ~ %q", period.OpenDate, period.CloseDate)
	}
}

func TestTextPipeline_EmptyText(t *testing.T) {
	p := NewTextPipeline(testProvider(t), zap.NewNop())

	out, err := p.Process(context.Background(), domain.Request{
		RequestID: "req-3",
		Source:    domain.SourceText,
	})
	if err != nil {
		t.Fatalf("empty text must not fail: %v", err)
	}
	if len(out.CanonicalMap) != 0 {
		t.Errorf("canonical map = %v, want empty", out.CanonicalMap)
	}
	if out.Meta.RecruitmentPeriod.Type != domain.PeriodUnknown {
		t.Errorf("period = %q, want UNKNOWN", out.Meta.RecruitmentPeriod.Type)
	}
	if len(out.Meta.SkillSet.Skills) != 0 {
		t.Errorf("skills = %v, want empty", out.Meta.SkillSet.Skills)
	}
}

func TestTextPipeline_Deterministic(t *testing.T) {
	p := NewTextPipeline(testProvider(t), zap.NewNop())
	req := domain.Request{RequestID: "req-4", Source: domain.SourceText, Text: koreanJD}

	a, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.CanonicalMap, b.CanonicalMap) {
		t.Errorf("pipeline not deterministic")
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
