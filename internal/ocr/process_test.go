package ocr

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/sections"
)

// fakeEngine serves canned pages keyed by image path.
type fakeEngine struct {
	pages map[string]*Page
	errs  map[string]error
}

func (f *fakeEngine) Recognize(_ context.Context, imagePath string) (*Page, error) {
	if err, ok := f.errs[imagePath]; ok {
		return nil, err
	}
	page, ok := f.pages[imagePath]
	if !ok {
		return nil, fmt.Errorf("unknown image %s", imagePath)
	}
	return page, nil
}

func item(text string, conf, y, height float64) RawItem {
	return RawItem{
		Text:       text,
		Confidence: conf,
		Height:     height,
		Box:        [][2]float64{{10, y}, {300, y}, {300, y + height}, {10, y + height}},
	}
}

func TestProcessor_MergesPagesAndAveragesConfidence(t *testing.T) {
	engine := &fakeEngine{pages: map[string]*Page{
		"p1.png": {
			Confidence: 90,
			PageWidth:  1000,
			Items: []RawItem{
				item("주요업무", 95, 10, 50),
				item("백엔드 서비스를 개발합니다", 92, 80, 28),
			},
		},
		"p2.png": {
			Confidence: 80,
			PageWidth:  1000,
			Items: []RawItem{
				item("우대사항", 90, 10, 50),
				item("Kafka 운영 경험이 있으면 좋습니다", 85, 80, 28),
			},
		},
	}}

	proc := NewProcessor(engine, testRegistry(t), zap.NewNop())
	res, err := proc.Process(context.Background(), []string{"p1.png", "p2.png"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.Confidence != 85 {
		t.Errorf("confidence = %v, want 85", res.Confidence)
	}
	if res.Status != StatusGood {
		t.Errorf("status = %q, want GOOD", res.Status)
	}

	texts := Texts(res.Lines)
	want := []string{
		"주요업무",
		"백엔드 서비스를 개발합니다",
		"우대사항",
		"Kafka 운영 경험이 있으면 좋습니다",
	}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
}

func TestProcessor_PartialPageFailure(t *testing.T) {
	engine := &fakeEngine{
		pages: map[string]*Page{
			"good.png": {
				Confidence: 88,
				Items:      []RawItem{item("주요업무 안내입니다", 90, 10, 30)},
			},
		},
		errs: map[string]error{"bad.png": fmt.Errorf("decode failed")},
	}

	proc := NewProcessor(engine, testRegistry(t), zap.NewNop())
	res, err := proc.Process(context.Background(), []string{"good.png", "bad.png"})
	if err != nil {
		t.Fatalf("partial failure must not abort: %v", err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Path != "bad.png" {
		t.Errorf("page errors = %+v", res.Errors)
	}
	if len(res.Lines) == 0 {
		t.Errorf("good page lines missing")
	}
}

func TestProcessor_AllPagesFailed(t *testing.T) {
	engine := &fakeEngine{errs: map[string]error{"a.png": fmt.Errorf("boom")}}

	proc := NewProcessor(engine, testRegistry(t), zap.NewNop())
	if _, err := proc.Process(context.Background(), []string{"a.png"}); err == nil {
		t.Fatalf("expected error when every page fails")
	}
}

func TestNormalizeImagePaths(t *testing.T) {
	got := NormalizeImagePaths([]string{"a.png, b.png", " c.png ", ""})
	want := []string{"a.png", "b.png", "c.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestGroupByHeader(t *testing.T) {
	reg := testRegistry(t)

	lines := []Line{
		{Text: "커넥트테크 백엔드 엔지니어 채용 공고입니다", TokenCount: 5},
		{Text: "주요업무", TokenCount: 1, HeaderScore: 5},
		{Text: "백엔드 API 서버를 개발합니다", TokenCount: 4},
		{Text: "우대사항", TokenCount: 1, HeaderScore: 5},
		{Text: "Kafka 운영 경험이 있으면 좋습니다", TokenCount: 5},
	}

	raw := GroupByHeader(lines, reg)
	if len(raw) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(raw), raw)
	}
	if raw[0].Key != sections.IntroKey {
		t.Errorf("first key = %q, want intro", raw[0].Key)
	}
	if raw[1].Key != "주요업무" || raw[2].Key != "우대사항" {
		t.Errorf("header keys = %q, %q", raw[1].Key, raw[2].Key)
	}
	if !reflect.DeepEqual(raw[1].Lines, []string{"백엔드 API 서버를 개발합니다"}) {
		t.Errorf("grouped lines = %q", raw[1].Lines)
	}
}
