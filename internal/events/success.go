package events

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/domain"
)

// Event type and schema version constants shared with the consuming service.
const (
	EventTypeCompleted = "JD_PREPROCESS_COMPLETED"
	EventTypeFailed    = "JD_PREPROCESS_FAILED"
	SchemaVersion      = "v1"
)

// SuccessEvent is the message published to the result topic, camelCase to
// match the upstream contract.
type SuccessEvent struct {
	EventID      string `json:"eventId"`
	RequestID    string `json:"requestId"`
	EventType    string `json:"eventType"`
	Version      string `json:"version"`
	OccurredAt   int64  `json:"occurredAt"`
	BrandName    string `json:"brandName"`
	PositionName string `json:"positionName"`
	Source       string `json:"source"`
	SourceURL    string `json:"sourceUrl,omitempty"`

	CanonicalMap map[string][]string `json:"canonicalMap"`

	RecruitmentPeriodType string `json:"recruitmentPeriodType,omitempty"`
	OpenedDate            string `json:"openedDate,omitempty"`
	ClosedDate            string `json:"closedDate,omitempty"`

	Skills []string `json:"skills"`
}

// NewSuccessEvent assembles the outbound success message. Dates are
// normalised to ISO-8601; unparseable dates are logged and dropped rather
// than published raw.
func NewSuccessEvent(req domain.Request, canonical domain.CanonicalMap, docMeta domain.DocumentMeta, logger *zap.Logger) SuccessEvent {
	ev := SuccessEvent{
		EventID:      uuid.NewString(),
		RequestID:    req.RequestID,
		EventType:    EventTypeCompleted,
		Version:      SchemaVersion,
		OccurredAt:   time.Now().UnixMilli(),
		BrandName:    req.BrandName,
		PositionName: req.PositionName,
		Source:       req.Source.String(),
		SourceURL:    req.URL,
		CanonicalMap: canonical,
		Skills:       docMeta.SkillSet.Skills,
	}

	if ev.CanonicalMap == nil {
		ev.CanonicalMap = map[string][]string{}
	}
	if ev.Skills == nil {
		ev.Skills = []string{}
	}

	period := docMeta.RecruitmentPeriod
	ev.RecruitmentPeriodType = string(period.Type)
	if period.Type == domain.PeriodFixed {
		ev.OpenedDate = normalizeDate(period.OpenDate, logger)
		ev.ClosedDate = normalizeDate(period.CloseDate, logger)
	}

	return ev
}

// normalizeDate accepts YYYY.MM.DD, YYYY-MM-DD and YYYY/MM/DD and returns the
// ISO form, or "" when nothing parses.
func normalizeDate(dateStr string, logger *zap.Logger) string {
	if dateStr == "" {
		return ""
	}
	for _, layout := range []string{"2006.1.2", "2006-1-2", "2006/1/2"} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("2006-01-02")
		}
	}
	logger.Warn("date normalisation failed", zap.String("date", dateStr))
	return ""
}
