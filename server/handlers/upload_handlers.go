package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hospitalserver/importer"
	apperrors "hospitalserver/server/errors"
	"hospitalserver/server/services"
	"hospitalserver/server/types"
)

// maxUploadSize caps the multipart memory buffer (32 MB covers the largest
// stock sheets seen in practice).
const maxUploadSize = 32 << 20

// resultsDisplayLimit is how many outcomes the compact results list carries.
const resultsDisplayLimit = 100

// UploadHandler serves the bulk spreadsheet upload endpoints.
type UploadHandler struct {
	medications *services.MedicationImportService
	patients    *services.PatientImportService
}

// NewUploadHandler creates the upload handler.
func NewUploadHandler(medications *services.MedicationImportService, patients *services.PatientImportService) *UploadHandler {
	return &UploadHandler{medications: medications, patients: patients}
}

// HandlePharmacyUpload processes a medication stock spreadsheet
// @Summary Upload a medication stock spreadsheet
// @Description Parses an .xlsx/.xls/.csv file and upserts medications and batches row by row
// @Tags pharmacy
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file"
// @Param encoding formData string false "Text encoding for CSV files (utf-8, windows-1251, windows-1252)"
// @Success 200 {object} types.UploadResponse "Per-row outcomes and counters"
// @Failure 400 {object} middleware.ErrorResponse "Missing file or unreadable workbook"
// @Router /api/pharmacy/upload [post]
func (h *UploadHandler) HandlePharmacyUpload(c *gin.Context) {
	sheets, filename, ok := readUploadedSheets(c)
	if !ok {
		return
	}

	summary, err := h.medications.Run(sheets, filename)
	if err != nil {
		appErr := apperrors.WrapError(err, "medication import failed")
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	SendJSONResponse(c, http.StatusOK, buildUploadResponse(summary))
}

// HandlePatientsUpload processes a patient roster spreadsheet
// @Summary Upload a patient roster spreadsheet
// @Description Parses an .xlsx/.xls/.csv file and registers or refreshes patients row by row
// @Tags patients
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file"
// @Param encoding formData string false "Text encoding for CSV files"
// @Success 200 {object} types.UploadResponse "Per-row outcomes and counters"
// @Failure 400 {object} middleware.ErrorResponse "Missing file or unreadable workbook"
// @Router /api/patients/upload [post]
func (h *UploadHandler) HandlePatientsUpload(c *gin.Context) {
	sheets, filename, ok := readUploadedSheets(c)
	if !ok {
		return
	}

	summary, err := h.patients.Run(sheets, filename)
	if err != nil {
		appErr := apperrors.WrapError(err, "patient import failed")
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	SendJSONResponse(c, http.StatusOK, buildUploadResponse(summary))
}

// readUploadedSheets pulls the multipart file out of the request and parses
// it into sheets. On failure it writes the error response itself and
// returns ok=false.
func readUploadedSheets(c *gin.Context) ([]importer.Sheet, string, bool) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		SendJSONError(c, http.StatusBadRequest, "failed to parse multipart form")
		return nil, "", false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "no file provided")
		return nil, "", false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".xlsx", ".xlsm", ".xls", ".csv":
	default:
		SendJSONError(c, http.StatusBadRequest, "unsupported file type, expected .xlsx, .xls or .csv")
		return nil, "", false
	}

	encoding := c.Request.FormValue("encoding")
	sheets, err := importer.ReadUploadFile(file, header.Filename, encoding)
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "unreadable workbook: "+err.Error())
		return nil, "", false
	}

	return sheets, header.Filename, true
}

func buildUploadResponse(summary *types.ImportSummary) types.UploadResponse {
	return types.UploadResponse{
		Success:        true,
		TotalProcessed: summary.ProcessedCount,
		SuccessCount:   summary.SuccessCount,
		ErrorCount:     summary.ErrorCount,
		SkippedCount:   summary.SkippedCount,
		Results:        summary.FirstResults(resultsDisplayLimit),
		AllResults:     summary.Outcomes,
	}
}
