package events

import (
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
)

// KafkaMetadata carries the coordinates of the originating broker message so
// upstream can locate it for reprocessing.
type KafkaMetadata struct {
	OriginalTopic     string `json:"originalTopic"`
	OriginalPartition int32  `json:"originalPartition"`
	OriginalOffset    int64  `json:"originalOffset"`
}

// FailEvent is the message published to the fail topic. It never carries the
// original payload.
type FailEvent struct {
	EventID    string `json:"eventId"`
	RequestID  string `json:"requestId"`
	EventType  string `json:"eventType"`
	Version    string `json:"version"`
	OccurredAt int64  `json:"occurredAt"`

	Source        string `json:"source"`
	ErrorCode     string `json:"errorCode"`
	ErrorMessage  string `json:"errorMessage"`
	ErrorCategory string `json:"errorCategory"`
	PipelineStage string `json:"pipelineStage"`

	WorkerHost           string `json:"workerHost"`
	ProcessingDurationMs int64  `json:"processingDurationMs"`

	KafkaMetadata KafkaMetadata `json:"kafkaMetadata"`
}

// NewFailEvent assembles an outbound fail message from a ProcessingError.
// requestID may be empty when parsing itself failed.
func NewFailEvent(requestID string, source domain.Source, perr *jderrors.ProcessingError, startedAt time.Time, coords domain.BrokerCoordinates) FailEvent {
	now := time.Now()
	return FailEvent{
		EventID:    uuid.NewString(),
		RequestID:  requestID,
		EventType:  EventTypeFailed,
		Version:    SchemaVersion,
		OccurredAt: now.UnixMilli(),

		Source:        source.String(),
		ErrorCode:     string(perr.Code),
		ErrorMessage:  perr.Message,
		ErrorCategory: string(perr.Category()),
		PipelineStage: perr.Stage,

		WorkerHost:           Hostname(),
		ProcessingDurationMs: now.Sub(startedAt).Milliseconds(),

		KafkaMetadata: KafkaMetadata{
			OriginalTopic:     coords.Topic,
			OriginalPartition: coords.Partition,
			OriginalOffset:    coords.Offset,
		},
	}
}

// Hostname is the worker host identifier used in events and backup records.
func Hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
