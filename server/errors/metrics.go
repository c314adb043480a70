package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector aggregates error counts for the metrics endpoint.
// Safe for concurrent use.
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64
	errorsByCode     map[int]int64
	errorsByEndpoint map[string]int64

	lastErrors    []ErrorRecord
	maxLastErrors int

	startTime time.Time
}

// ErrorRecord is one recorded error occurrence.
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	UserMessage string    `json:"user_message,omitempty"`
}

// ErrorMetricsSnapshot is the read-only view returned to callers.
type ErrorMetricsSnapshot struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByType     map[string]int64 `json:"errors_by_type"`
	ErrorsByCode     map[int]int64    `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	UptimeSeconds    int64            `json:"uptime_seconds"`
}

// NewErrorMetricsCollector creates an empty collector.
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		errorsByType:     make(map[string]int64),
		errorsByCode:     make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		lastErrors:       make([]ErrorRecord, 0),
		maxLastErrors:    100,
		startTime:        time.Now(),
	}
}

// RecordError adds an error occurrence to the metrics.
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	emc.mu.Lock()
	defer emc.mu.Unlock()

	emc.totalErrors++

	errorType := errorTypeForCode(err.Code)
	emc.errorsByType[errorType]++
	emc.errorsByCode[err.Code]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   time.Now(),
		Type:        errorType,
		Code:        err.Code,
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// Snapshot returns a copy of the current metrics.
func (emc *ErrorMetricsCollector) Snapshot() ErrorMetricsSnapshot {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	snapshot := ErrorMetricsSnapshot{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     make(map[string]int64, len(emc.errorsByType)),
		ErrorsByCode:     make(map[int]int64, len(emc.errorsByCode)),
		ErrorsByEndpoint: make(map[string]int64, len(emc.errorsByEndpoint)),
		LastErrors:       make([]ErrorRecord, len(emc.lastErrors)),
		UptimeSeconds:    int64(time.Since(emc.startTime).Seconds()),
	}
	for k, v := range emc.errorsByType {
		snapshot.ErrorsByType[k] = v
	}
	for k, v := range emc.errorsByCode {
		snapshot.ErrorsByCode[k] = v
	}
	for k, v := range emc.errorsByEndpoint {
		snapshot.ErrorsByEndpoint[k] = v
	}
	copy(snapshot.LastErrors, emc.lastErrors)
	return snapshot
}

func errorTypeForCode(code int) string {
	switch code {
	case 400:
		return "ValidationError"
	case 404:
		return "NotFoundError"
	case 409:
		return "ConflictError"
	case 429:
		return "TooManyRequestsError"
	case 500:
		return "InternalError"
	default:
		return "UnknownError"
	}
}
