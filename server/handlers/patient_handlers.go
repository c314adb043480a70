package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hospitalserver/database"
)

// PatientHandler serves the patient registry endpoints.
type PatientHandler struct {
	db *database.ServiceDB
}

// NewPatientHandler creates the patient handler.
func NewPatientHandler(db *database.ServiceDB) *PatientHandler {
	return &PatientHandler{db: db}
}

// HandleListPatients lists the registry with search and paging
// @Summary List patients
// @Tags patients
// @Produce json
// @Param search query string false "Name substring or exact phone"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} types.PagedResponse
// @Router /api/patients [get]
func (h *PatientHandler) HandleListPatients(c *gin.Context) {
	limit, offset := pagingParams(c)
	search := c.Query("search")

	patients, total, err := h.db.ListPatients(search, limit, offset)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to list patients")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"items":  patients,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// HandleGetPatient returns one patient
// @Summary Get a patient by id
// @Tags patients
// @Produce json
// @Param id path int true "Patient id"
// @Success 200 {object} database.Patient
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/patients/{id} [get]
func (h *PatientHandler) HandleGetPatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	patient, err := h.db.GetPatientByID(id)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "failed to load patient")
		return
	}
	if patient == nil {
		SendJSONError(c, http.StatusNotFound, "patient not found")
		return
	}

	SendJSONResponse(c, http.StatusOK, patient)
}

// HandleDeletePatient removes a patient record
// @Summary Delete a patient
// @Tags patients
// @Produce json
// @Param id path int true "Patient id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/patients/{id} [delete]
func (h *PatientHandler) HandleDeletePatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.DeletePatient(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			SendJSONError(c, http.StatusNotFound, "patient not found")
			return
		}
		SendJSONError(c, http.StatusInternalServerError, "failed to delete patient")
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"deleted": true})
}
