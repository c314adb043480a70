// Package types holds the request and response shapes shared between the
// HTTP handlers and the services.
package types

// Row outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// RowOutcome describes what happened to one spreadsheet row. It exists only
// for the response payload and is never persisted.
type RowOutcome struct {
	Row     int    `json:"row"`
	Sheet   string `json:"sheet"`
	Name    string `json:"name"`
	Batch   string `json:"batch,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ImportSummary aggregates the per-row outcomes of one upload.
//
// SkippedCount counts blank-name rows only. A duplicate-batch row gets a
// skipped outcome in the list but does not move any counter.
type ImportSummary struct {
	ProcessedCount int
	SuccessCount   int
	ErrorCount     int
	SkippedCount   int
	Outcomes       []RowOutcome
}

// Append records an outcome in the full list.
func (s *ImportSummary) Append(outcome RowOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
}

// FirstResults returns at most limit outcomes for compact display.
func (s *ImportSummary) FirstResults(limit int) []RowOutcome {
	if len(s.Outcomes) <= limit {
		return s.Outcomes
	}
	return s.Outcomes[:limit]
}

// UploadResponse is the JSON envelope returned by the upload endpoints.
type UploadResponse struct {
	Success        bool         `json:"success"`
	TotalProcessed int          `json:"totalProcessed"`
	SuccessCount   int          `json:"successCount"`
	ErrorCount     int          `json:"errorCount"`
	SkippedCount   int          `json:"skippedCount"`
	Results        []RowOutcome `json:"results"`
	AllResults     []RowOutcome `json:"allResults"`
}

// CategoryRuleRequest is the body for creating or updating a category rule.
type CategoryRuleRequest struct {
	Priority int    `json:"priority"`
	Keyword  string `json:"keyword" binding:"required"`
	Category string `json:"category" binding:"required"`
	Active   *bool  `json:"active"`
}

// DeriveRequest is the body for the category derivation endpoint.
type DeriveRequest struct {
	Name        string `json:"name" binding:"required"`
	Combination string `json:"combination"`
	Form        string `json:"form"`
}

// DeriveResponse is the result of a category derivation.
type DeriveResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PagedResponse wraps a list payload with paging metadata.
type PagedResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
