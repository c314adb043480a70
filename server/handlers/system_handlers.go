package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hospitalserver/database"
	"hospitalserver/server/middleware"
	"hospitalserver/server/services"
)

// SystemHandler serves health, import history and the duplicate report.
type SystemHandler struct {
	db         *database.ServiceDB
	duplicates *services.DuplicateService
	version    string
}

// NewSystemHandler creates the system handler.
func NewSystemHandler(db *database.ServiceDB, duplicates *services.DuplicateService, version string) *SystemHandler {
	return &SystemHandler{db: db, duplicates: duplicates, version: version}
}

// HandleHealth reports service liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	status := "ok"
	if err := h.db.Ping(); err != nil {
		SendJSONResponse(c, http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"version": h.version,
			"error":   "database unreachable",
		})
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"status":  status,
		"version": h.version,
	})
}

// HandleListImports lists recent import runs
// @Summary List recent import runs
// @Tags system
// @Produce json
// @Param limit query int false "Max runs to return (default 50)"
// @Success 200 {array} database.ImportRun
// @Router /api/imports [get]
func (h *SystemHandler) HandleListImports(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	runs, err := h.db.ListImportRuns(limit)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to list import runs")
		return
	}

	SendJSONResponse(c, http.StatusOK, runs)
}

// HandleMedicationDuplicates returns the advisory duplicate report
// @Summary Report medication names that look like duplicates
// @Tags system
// @Produce json
// @Param threshold query number false "Similarity threshold between 0 and 1 (default 0.75)"
// @Success 200 {array} normalization.DuplicateGroup
// @Router /api/duplicates/medications [get]
func (h *SystemHandler) HandleMedicationDuplicates(c *gin.Context) {
	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			SendJSONError(c, http.StatusBadRequest, "threshold must be in (0, 1]")
			return
		}
		threshold = parsed
	}

	groups, err := h.duplicates.MedicationReport(threshold)
	if err != nil {
		sendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, groups)
}

// HandleErrorMetrics returns aggregated error counters
// @Summary Error metrics
// @Tags system
// @Produce json
// @Success 200 {object} errors.ErrorMetricsSnapshot
// @Router /api/metrics/errors [get]
func (h *SystemHandler) HandleErrorMetrics(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, middleware.GetErrorMetrics().Snapshot())
}
