package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
)

func TestNewSuccessEvent(t *testing.T) {
	req := domain.Request{
		RequestID:    "req-1",
		BrandName:    "커넥트웨이브",
		PositionName: "백엔드 엔지니어",
		Source:       domain.SourceText,
	}
	canonical := domain.CanonicalMap{
		"responsibilities": {"백엔드 개발"},
	}
	docMeta := domain.DocumentMeta{
		RecruitmentPeriod: domain.RecruitmentPeriod{
			Type:      domain.PeriodFixed,
			OpenDate:  "2026.01.19",
			CloseDate: "2026/02/06",
		},
		SkillSet: domain.SkillSet{Skills: []string{"java", "kafka"}},
	}

	ev := NewSuccessEvent(req, canonical, docMeta, zap.NewNop())

	if ev.EventType != EventTypeCompleted || ev.Version != SchemaVersion {
		t.Errorf("event meta = %q %q", ev.EventType, ev.Version)
	}
	if ev.EventID == "" || ev.OccurredAt == 0 {
		t.Errorf("event identity missing: %+v", ev)
	}
	if ev.OpenedDate != "2026-01-19" || ev.ClosedDate != "2026-02-06" {
		t.Errorf("dates = %q / %q, want ISO-8601", ev.OpenedDate, ev.ClosedDate)
	}
	if ev.RecruitmentPeriodType != "FIXED" {
		t.Errorf("period type = %q", ev.RecruitmentPeriodType)
	}
}

func TestNewSuccessEvent_EmptyCollectionsNotNull(t *testing.T) {
	req := domain.Request{RequestID: "req-2", Source: domain.SourceText}
	ev := NewSuccessEvent(req, nil, domain.DocumentMeta{
		RecruitmentPeriod: domain.RecruitmentPeriod{Type: domain.PeriodUnknown},
	}, zap.NewNop())

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	payload := string(data)
	if !strings.Contains(payload, `"canonicalMap":{}`) {
		t.Errorf("canonicalMap should serialise as {}: %s", payload)
	}
	if !strings.Contains(payload, `"skills":[]`) {
		t.Errorf("skills should serialise as []: %s", payload)
	}
	if strings.Contains(payload, `"openedDate"`) {
		t.Errorf("UNKNOWN period must not publish dates: %s", payload)
	}
}

func TestNewFailEvent_NeverContainsPayload(t *testing.T) {
	perr := jderrors.New(jderrors.CodeURLFetch, "FETCH", "url fetch failed")
	started := time.Now().Add(-1500 * time.Millisecond)
	coords := domain.BrokerCoordinates{Topic: "jd.preprocess.url.request", Partition: 2, Offset: 4711}

	ev := NewFailEvent("req-3", domain.SourceURL, perr, started, coords)

	if ev.ErrorCode != "PIPELINE_URL_001" || ev.ErrorCategory != "RECOVERABLE" {
		t.Errorf("error fields = %q %q", ev.ErrorCode, ev.ErrorCategory)
	}
	if ev.PipelineStage != "FETCH" {
		t.Errorf("stage = %q", ev.PipelineStage)
	}
	if ev.ProcessingDurationMs < 1500 {
		t.Errorf("duration = %d", ev.ProcessingDurationMs)
	}
	if ev.KafkaMetadata.OriginalOffset != 4711 || ev.KafkaMetadata.OriginalPartition != 2 {
		t.Errorf("broker coordinates = %+v", ev.KafkaMetadata)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	for _, forbidden := range []string{"text", "images", "url\"", "brandName", "positionName", "canonicalMap"} {
		if strings.Contains(string(data), `"`+forbidden) {
			t.Errorf("fail event leaks payload field %q: %s", forbidden, data)
		}
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	if got := normalizeDate("언제든지", zap.NewNop()); got != "" {
		t.Errorf("invalid date normalised to %q", got)
	}
	if got := normalizeDate("", zap.NewNop()); got != "" {
		t.Errorf("empty date normalised to %q", got)
	}
}
