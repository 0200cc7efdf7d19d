// Package backup is the sink of last resort: when publishing a fail event to
// the fail topic itself fails, the record (without the original payload) is
// appended to a local date-stamped JSONL file for manual or batch recovery.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Record is one backed-up failure. Searchable with grep/jq; one line each.
type Record struct {
	RequestID    string `json:"requestId"`
	Source       string `json:"source"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	OccurredAt   string `json:"occurredAt"` // ISO-8601 UTC
	PublishError string `json:"publishError"`
	WorkerHost   string `json:"workerHost"`
}

// Writer appends failure records to one JSONL file per UTC date. Safe for
// concurrent use across workers.
type Writer struct {
	dir    string
	host   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewWriter creates the backup directory if needed. Creation failure is
// logged, not fatal; the first write will surface it again.
func NewWriter(dir, host string, logger *zap.Logger) *Writer {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("cannot create backup directory",
			zap.String("dir", dir),
			zap.Error(err))
	}
	return &Writer{dir: dir, host: host, logger: logger}
}

// Write appends one record to today's file.
func (w *Writer) Write(rec Record) error {
	now := time.Now().UTC()
	rec.OccurredAt = now.Format(time.RFC3339)
	rec.WorkerHost = w.host

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal backup record: %w", err)
	}

	path := filepath.Join(w.dir, now.Format("2006-01-02")+".jsonl")

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append backup record: %w", err)
	}

	w.logger.Warn("fail event backed up locally",
		zap.String("file", filepath.Base(path)),
		zap.String("requestId", rec.RequestID),
		zap.String("errorCode", rec.ErrorCode))
	return nil
}
