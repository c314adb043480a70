package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hospitalserver/database"
	"hospitalserver/normalization"
)

// MedicationHandler serves the medication catalog endpoints.
type MedicationHandler struct {
	db *database.ServiceDB
}

// NewMedicationHandler creates the medication handler.
func NewMedicationHandler(db *database.ServiceDB) *MedicationHandler {
	return &MedicationHandler{db: db}
}

// HandleListMedications lists the catalog with search and paging
// @Summary List medications
// @Tags medications
// @Produce json
// @Param search query string false "Name substring or exact category"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} types.PagedResponse
// @Router /api/medications [get]
func (h *MedicationHandler) HandleListMedications(c *gin.Context) {
	limit, offset := pagingParams(c)
	search := c.Query("search")

	medications, total, err := h.db.ListMedications(search, limit, offset)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to list medications")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"items":  medications,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// HandleGetMedication returns one medication
// @Summary Get a medication by id
// @Tags medications
// @Produce json
// @Param id path int true "Medication id"
// @Success 200 {object} database.Medication
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/medications/{id} [get]
func (h *MedicationHandler) HandleGetMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	medication, err := h.db.GetMedicationByID(id)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to load medication")
		return
	}
	if medication == nil {
		SendJSONError(c, http.StatusNotFound, "medication not found")
		return
	}

	SendJSONResponse(c, http.StatusOK, medication)
}

// HandleMedicationBatches lists the batches of one medication
// @Summary List batches of a medication
// @Tags medications
// @Produce json
// @Param id path int true "Medication id"
// @Success 200 {object} types.PagedResponse
// @Router /api/medications/{id}/batches [get]
func (h *MedicationHandler) HandleMedicationBatches(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	medication, err := h.db.GetMedicationByID(id)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to load medication")
		return
	}
	if medication == nil {
		SendJSONError(c, http.StatusNotFound, "medication not found")
		return
	}

	limit, offset := pagingParams(c)
	batches, total, err := h.db.ListBatches(id, "", limit, offset)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to list batches")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"items":  batches,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// HandleExpiringBatches lists batches that expire soon
// @Summary List batches expiring within N days
// @Tags batches
// @Produce json
// @Param days query int false "Horizon in days (default 90)"
// @Success 200 {object} types.PagedResponse
// @Router /api/batches/expiring [get]
func (h *MedicationHandler) HandleExpiringBatches(c *gin.Context) {
	days := 90
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			SendJSONError(c, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	horizon := time.Now().AddDate(0, 0, days).Format("2006-01-02")
	limit, offset := pagingParams(c)

	batches, total, err := h.db.ListBatches(0, horizon, limit, offset)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to list expiring batches")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"items":   batches,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"horizon": horizon,
	})
}

// MedicationUpdateRequest is the body for editing a medication.
type MedicationUpdateRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	Manufacturer  string  `json:"manufacturer"`
	Combination   string  `json:"combination"`
	Strength      string  `json:"strength"`
	Form          string  `json:"form"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
}

// HandleUpdateMedication edits a medication's descriptive fields
// @Summary Update a medication
// @Tags medications
// @Accept json
// @Produce json
// @Param id path int true "Medication id"
// @Param request body MedicationUpdateRequest true "Fields to update"
// @Success 200 {object} database.Medication
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/medications/{id} [put]
func (h *MedicationHandler) HandleUpdateMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req MedicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	medication, err := h.db.GetMedicationByID(id)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to load medication")
		return
	}
	if medication == nil {
		SendJSONError(c, http.StatusNotFound, "medication not found")
		return
	}

	medication.Name = req.Name
	medication.NormalizedName = normalization.NormalizeName(req.Name)
	if req.Category != "" {
		medication.Category = req.Category
	}
	medication.Manufacturer = req.Manufacturer
	medication.Combination = req.Combination
	medication.Strength = req.Strength
	medication.Form = req.Form
	medication.PurchasePrice = req.PurchasePrice
	medication.SellingPrice = req.SellingPrice

	if err := h.db.UpdateMedication(medication); err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to update medication")
		return
	}

	SendJSONResponse(c, http.StatusOK, medication)
}

// HandleDeleteMedication removes a medication and its batches
// @Summary Delete a medication
// @Tags medications
// @Produce json
// @Param id path int true "Medication id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/medications/{id} [delete]
func (h *MedicationHandler) HandleDeleteMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteMedication(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			SendJSONError(c, http.StatusNotFound, "medication not found")
			return
		}
		SendJSONError(c, http.StatusInternalServerError, "failed to delete medication")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"deleted": true})
}

// HandleDeleteBatch removes one batch record
// @Summary Delete a batch
// @Tags batches
// @Produce json
// @Param id path int true "Batch id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/batches/{id} [delete]
func (h *MedicationHandler) HandleDeleteBatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	batch, err := h.db.GetBatchByID(id)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to load batch")
		return
	}
	if batch == nil {
		SendJSONError(c, http.StatusNotFound, "batch not found")
		return
	}

	if err := h.db.DeleteBatch(id); err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to delete batch")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"deleted": true})
}

// pagingParams reads limit/offset query params with defaults.
func pagingParams(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

// idParam reads the :id path param. On failure it writes the error response
// itself and returns ok=false.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		SendJSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
