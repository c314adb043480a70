package services

import (
	"log"

	"github.com/google/uuid"

	"hospitalserver/database"
	"hospitalserver/importer"
	"hospitalserver/normalization"
	"hospitalserver/server/types"
)

// PatientImportService runs the bulk patient upload pipeline. It shares the
// shape of the medication pipeline: header mapping, an in-run dedup cache,
// and per-row error recovery.
type PatientImportService struct {
	db *database.ServiceDB
}

// NewPatientImportService creates the patient import service.
func NewPatientImportService(db *database.ServiceDB) *PatientImportService {
	return &PatientImportService{db: db}
}

// Run processes every sheet sequentially. Patients are deduplicated by
// normalized name plus date of birth.
func (s *PatientImportService) Run(sheets []importer.Sheet, filename string) (*types.ImportSummary, error) {
	summary := &types.ImportSummary{}

	run := &database.ImportRun{
		RunUUID:  uuid.New().String(),
		Source:   "patients",
		Filename: filename,
	}
	if err := s.db.CreateImportRun(run); err != nil {
		return nil, err
	}

	cache := NewEntityCache()
	log.Printf("[PatientImport] run %s: %d sheets", run.RunUUID, len(sheets))

	for _, sheet := range sheets {
		s.processSheet(sheet, cache, summary)
	}

	run.ProcessedCount = summary.ProcessedCount
	run.SuccessCount = summary.SuccessCount
	run.ErrorCount = summary.ErrorCount
	run.SkippedCount = summary.SkippedCount
	if err := s.db.FinishImportRun(run); err != nil {
		log.Printf("[PatientImport] run %s: failed to record final counters: %v", run.RunUUID, err)
	}

	return summary, nil
}

func (s *PatientImportService) processSheet(sheet importer.Sheet, cache *EntityCache, summary *types.ImportSummary) {
	if len(sheet.Rows) == 0 {
		return
	}

	cols := importer.MapPatientColumns(sheet.Rows[0])
	if !cols.HasName() {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row:     1,
			Sheet:   sheet.Name,
			Status:  types.StatusError,
			Message: "no patient name column found, sheet skipped",
		})
		return
	}

	for i, row := range sheet.Rows[1:] {
		rowIndex := i + 2
		if importer.IsEmptyRow(row) {
			continue
		}
		summary.ProcessedCount++

		name := importer.CellAt(row, cols.Name)
		if name == "" {
			summary.SkippedCount++
			continue
		}

		s.processRow(sheet.Name, rowIndex, row, cols, cache, summary)
	}
}

func (s *PatientImportService) processRow(sheetName string, rowIndex int, row []string, cols importer.PatientColumns, cache *EntityCache, summary *types.ImportSummary) {
	name := importer.CellAt(row, cols.Name)
	normalized := normalization.NormalizeName(name)

	// Date of birth goes through the same normalizer as expiry dates but
	// without the sentinel: an unparseable value is simply dropped.
	dob := importer.NormalizeCellDate(importer.CellAt(row, cols.DateOfBirth))
	dedupKey := normalized + "|" + dob

	patient := &database.Patient{
		Name:           name,
		NormalizedName: normalized,
		Gender:         importer.CellAt(row, cols.Gender),
		DateOfBirth:    dob,
		Phone:          importer.CellAt(row, cols.Phone),
		Address:        importer.CellAt(row, cols.Address),
		BloodGroup:     importer.CellAt(row, cols.BloodGroup),
	}

	if id, ok := cache.Get(dedupKey); ok {
		patient.ID = id
		if err := s.db.UpdatePatientContact(patient); err != nil {
			summary.ErrorCount++
			summary.Append(types.RowOutcome{
				Row: rowIndex, Sheet: sheetName, Name: name,
				Status: types.StatusError, Message: err.Error(),
			})
			return
		}
		summary.SuccessCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name,
			Status: types.StatusSuccess, Message: "existing patient, contact details refreshed",
		})
		return
	}

	existing, err := s.db.FindPatientByNormalizedName(normalized)
	if err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}
	if existing != nil && (existing.DateOfBirth == dob || dob == "") {
		cache.Put(dedupKey, existing.ID)
		patient.ID = existing.ID
		if err := s.db.UpdatePatientContact(patient); err != nil {
			summary.ErrorCount++
			summary.Append(types.RowOutcome{
				Row: rowIndex, Sheet: sheetName, Name: name,
				Status: types.StatusError, Message: err.Error(),
			})
			return
		}
		summary.SuccessCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name,
			Status: types.StatusSuccess, Message: "existing patient, contact details refreshed",
		})
		return
	}

	patient.Code = generateEntityCode(name)
	if err := s.db.CreatePatient(patient); err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}

	cache.Put(dedupKey, patient.ID)
	summary.SuccessCount++
	summary.Append(types.RowOutcome{
		Row: rowIndex, Sheet: sheetName, Name: name,
		Status: types.StatusSuccess, Message: "patient registered",
	})
}
