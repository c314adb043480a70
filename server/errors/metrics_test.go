package errors

import (
	"errors"
	"testing"
)

func TestErrorMetricsCollector(t *testing.T) {
	collector := NewErrorMetricsCollector()

	collector.RecordError(NewValidationError("bad input", nil), "/api/upload", "req-1")
	collector.RecordError(NewNotFoundError("missing", errors.New("no rows")), "/api/medications/5", "req-2")
	collector.RecordError(NewValidationError("bad input again", nil), "/api/upload", "req-3")

	snapshot := collector.Snapshot()

	if snapshot.TotalErrors != 3 {
		t.Errorf("TotalErrors = %d, want 3", snapshot.TotalErrors)
	}
	if snapshot.ErrorsByType["ValidationError"] != 2 {
		t.Errorf("ValidationError count = %d, want 2", snapshot.ErrorsByType["ValidationError"])
	}
	if snapshot.ErrorsByCode[404] != 1 {
		t.Errorf("404 count = %d, want 1", snapshot.ErrorsByCode[404])
	}
	if snapshot.ErrorsByEndpoint["/api/upload"] != 2 {
		t.Errorf("endpoint count = %d, want 2", snapshot.ErrorsByEndpoint["/api/upload"])
	}
	if len(snapshot.LastErrors) != 3 {
		t.Fatalf("LastErrors len = %d, want 3", len(snapshot.LastErrors))
	}
	// newest first
	if snapshot.LastErrors[0].RequestID != "req-3" {
		t.Errorf("LastErrors[0].RequestID = %q, want req-3", snapshot.LastErrors[0].RequestID)
	}
}

func TestErrorMetricsRingLimit(t *testing.T) {
	collector := NewErrorMetricsCollector()
	for i := 0; i < 150; i++ {
		collector.RecordError(NewInternalError("boom", nil), "/api/x", "")
	}

	snapshot := collector.Snapshot()
	if len(snapshot.LastErrors) != 100 {
		t.Errorf("LastErrors len = %d, want capped at 100", len(snapshot.LastErrors))
	}
	if snapshot.TotalErrors != 150 {
		t.Errorf("TotalErrors = %d, want 150", snapshot.TotalErrors)
	}
}
