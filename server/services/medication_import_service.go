package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hospitalserver/classification"
	"hospitalserver/database"
	"hospitalserver/importer"
	"hospitalserver/normalization"
	"hospitalserver/server/types"
)

// MedicationImportService runs the bulk medication upload pipeline:
// header mapping, entity resolution with an in-run cache, batch insertion
// with duplicate skipping, and stock aggregation.
type MedicationImportService struct {
	db         *database.ServiceDB
	classifier *classification.CategoryClassifier
}

// NewMedicationImportService creates the medication import service.
func NewMedicationImportService(db *database.ServiceDB, classifier *classification.CategoryClassifier) *MedicationImportService {
	return &MedicationImportService{db: db, classifier: classifier}
}

// Run processes every sheet sequentially in a single goroutine. Row failures
// are recorded as error outcomes and never abort the run.
func (s *MedicationImportService) Run(sheets []importer.Sheet, filename string) (*types.ImportSummary, error) {
	summary := &types.ImportSummary{}

	run := &database.ImportRun{
		RunUUID:  uuid.New().String(),
		Source:   "medications",
		Filename: filename,
	}
	if err := s.db.CreateImportRun(run); err != nil {
		return nil, err
	}

	cache, err := s.preloadCache()
	if err != nil {
		return nil, err
	}
	log.Printf("[MedicationImport] run %s: %d sheets, %d known medications", run.RunUUID, len(sheets), cache.Len())

	for _, sheet := range sheets {
		s.processSheet(sheet, cache, summary)
	}

	run.ProcessedCount = summary.ProcessedCount
	run.SuccessCount = summary.SuccessCount
	run.ErrorCount = summary.ErrorCount
	run.SkippedCount = summary.SkippedCount
	if err := s.db.FinishImportRun(run); err != nil {
		log.Printf("[MedicationImport] run %s: failed to record final counters: %v", run.RunUUID, err)
	}

	log.Printf("[MedicationImport] run %s: processed=%d success=%d errors=%d skipped=%d",
		run.RunUUID, summary.ProcessedCount, summary.SuccessCount, summary.ErrorCount, summary.SkippedCount)
	return summary, nil
}

// preloadCache seeds the run cache with every known medication so that
// repeated names inside one file resolve without per-row lookups.
func (s *MedicationImportService) preloadCache() (*EntityCache, error) {
	known, err := s.db.ListMedicationNames()
	if err != nil {
		return nil, err
	}

	cache := NewEntityCache()
	for _, m := range known {
		cache.Put(m.NormalizedName, m.ID)
	}
	return cache, nil
}

func (s *MedicationImportService) processSheet(sheet importer.Sheet, cache *EntityCache, summary *types.ImportSummary) {
	if len(sheet.Rows) == 0 {
		return
	}

	cols := importer.MapMedicationColumns(sheet.Rows[0])
	if !cols.HasName() {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row:     1,
			Sheet:   sheet.Name,
			Status:  types.StatusError,
			Message: "no medicine name column found, sheet skipped",
		})
		return
	}

	for i, row := range sheet.Rows[1:] {
		rowIndex := i + 2 // 1-based, after the header row
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

func (s *MedicationImportService) processRow(sheetName string, rowIndex int, row []string, cols importer.MedicationColumns, cache *EntityCache, summary *types.ImportSummary) {
	name := importer.CellAt(row, cols.Name)
	batchNumber := importer.CellAt(row, cols.BatchNumber)

	medicationID, err := s.resolveMedication(row, cols, cache)
	if err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}

	purchasePrice := parsePrice(importer.CellAt(row, cols.PurchasePrice))
	sellingPrice := parsePrice(importer.CellAt(row, cols.SellingPrice))

	if batchNumber == "" {
		// Pricing-only row: nothing to receive, just refresh the prices.
		if purchasePrice > 0 || sellingPrice > 0 {
			if err := s.db.UpdateMedicationPricing(medicationID, purchasePrice, sellingPrice); err != nil {
				summary.ErrorCount++
				summary.Append(types.RowOutcome{
					Row: rowIndex, Sheet: sheetName, Name: name,
					Status: types.StatusError, Message: err.Error(),
				})
				return
			}
		}
		summary.SuccessCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name,
			Status: types.StatusSuccess, Message: "updated, no batch data",
		})
		return
	}

	exists, err := s.db.BatchExists(medicationID, batchNumber)
	if err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}
	if exists {
		// Reported in the outcome list but moves no counter.
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
			Status: types.StatusSkipped, Message: "Batch already exists",
		})
		return
	}

	quantity := parseQuantity(importer.CellAt(row, cols.Quantity))
	rawExpiry := importer.CellAt(row, cols.Expiry)
	expiry := importer.NormalizeExpiryDate(rawExpiry)
	if rawExpiry != "" && expiry == importer.SentinelExpiryDate {
		log.Printf("[MedicationImport] row %d (%s): unparseable expiry %q, using sentinel", rowIndex, sheetName, rawExpiry)
	}

	batch := &database.MedicationBatch{
		MedicationID:     medicationID,
		BatchNumber:      batchNumber,
		ReceivedQuantity: quantity,
		CurrentQuantity:  quantity,
		ExpiryDate:       expiry,
		PurchasePrice:    purchasePrice,
		SellingPrice:     sellingPrice,
	}
	if err := s.db.CreateBatch(batch); err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}

	if err := s.db.AddMedicationStock(medicationID, quantity); err != nil {
		summary.ErrorCount++
		summary.Append(types.RowOutcome{
			Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
			Status: types.StatusError, Message: err.Error(),
		})
		return
	}
	if purchasePrice > 0 || sellingPrice > 0 {
		if err := s.db.UpdateMedicationPricing(medicationID, purchasePrice, sellingPrice); err != nil {
			log.Printf("[MedicationImport] row %d (%s): failed to refresh pricing: %v", rowIndex, sheetName, err)
		}
	}

	summary.SuccessCount++
	summary.Append(types.RowOutcome{
		Row: rowIndex, Sheet: sheetName, Name: name, Batch: batchNumber,
		Status: types.StatusSuccess, Message: fmt.Sprintf("added batch %s, qty %d", batchNumber, quantity),
	})
}

// resolveMedication returns the medication id for a row, creating the
// medication when it is not yet known. Every successful resolution lands in
// the run cache.
func (s *MedicationImportService) resolveMedication(row []string, cols importer.MedicationColumns, cache *EntityCache) (int64, error) {
	name := importer.CellAt(row, cols.Name)
	normalized := normalization.NormalizeName(name)

	if id, ok := cache.Get(normalized); ok {
		return id, nil
	}

	combination := importer.CellAt(row, cols.Combination)
	form := importer.CellAt(row, cols.Form)

	category := importer.CellAt(row, cols.Category)
	if category == "" {
		category = s.classifier.Derive(name, combination, form)
	}

	m := &database.Medication{
		Code:           generateEntityCode(name),
		Name:           name,
		NormalizedName: normalized,
		Category:       category,
		Manufacturer:   importer.CellAt(row, cols.Manufacturer),
		Combination:    combination,
		Strength:       importer.CellAt(row, cols.Strength),
		Form:           form,
	}
	if err := s.db.CreateMedication(m); err != nil {
		// Another run may have created the same medication between our
		// cache preload and this insert. Adopt the existing row.
		existing, lookupErr := s.db.FindMedicationByNormalizedName(normalized)
		if lookupErr == nil && existing != nil {
			cache.Put(normalized, existing.ID)
			return existing.ID, nil
		}
		return 0, err
	}

	cache.Put(normalized, m.ID)
	return m.ID, nil
}

func parsePrice(value string) float64 {
	if value == "" {
		return 0
	}
	value = strings.ReplaceAll(value, ",", "")
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

func parseQuantity(value string) int {
	if value == "" {
		return 0
	}
	value = strings.ReplaceAll(value, ",", "")
	// quantity cells sometimes come back as "50.0" from spreadsheet readers
	qty, err := strconv.ParseFloat(value, 64)
	if err != nil || qty < 0 {
		return 0
	}
	return int(qty)
}
