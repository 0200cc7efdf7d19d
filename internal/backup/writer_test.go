package backup

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWriter_AppendsJSONL(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "worker-1", zap.NewNop())

	rec := Record{
		RequestID:    "req-1",
		Source:       "TEXT",
		ErrorCode:    "INFRA_KAFKA_001",
		ErrorMessage: "result publish failed",
		PublishError: "broker unreachable",
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open backup file: %v", err)
	}
	defer f.Close()

	var lines []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var got Record
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, got)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}

	got := lines[0]
	if got.RequestID != "req-1" || got.ErrorCode != "INFRA_KAFKA_001" {
		t.Errorf("record = %+v", got)
	}
	if got.WorkerHost != "worker-1" {
		t.Errorf("workerHost = %q", got.WorkerHost)
	}
	if got.PublishError != "broker unreachable" {
		t.Errorf("publishError = %q", got.PublishError)
	}
	if _, err := time.Parse(time.RFC3339, got.OccurredAt); err != nil {
		t.Errorf("occurredAt %q is not RFC3339: %v", got.OccurredAt, err)
	}
}

func TestWriter_ConcurrentAppends(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "worker-1", zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Write(Record{RequestID: "req", Source: "URL", ErrorCode: "UNKNOWN_001"})
		}()
	}
	wg.Wait()

	path := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open backup file: %v", err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var got Record
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("interleaved write produced invalid JSON: %v", err)
		}
		count++
	}
	if count != 20 {
		t.Errorf("records = %d, want 20", count)
	}
}
