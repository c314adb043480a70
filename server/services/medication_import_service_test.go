package services

import (
	"testing"

	"hospitalserver/classification"
	"hospitalserver/database"
	"hospitalserver/importer"
	"hospitalserver/server/types"
)

func setupTestServiceDB(t *testing.T) *database.ServiceDB {
	t.Helper()

	db, err := database.NewServiceDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupMedicationImport(t *testing.T) (*MedicationImportService, *database.ServiceDB) {
	t.Helper()

	db := setupTestServiceDB(t)
	classifier := classification.NewCategoryClassifier(classification.DefaultRules())
	return NewMedicationImportService(db, classifier), db
}

func medicationSheet(rows ...[]string) []importer.Sheet {
	all := [][]string{{"Medicine Name", "Batch No", "Quantity", "Expiry Date", "Purchase Price", "MRP"}}
	all = append(all, rows...)
	return []importer.Sheet{{Name: "Stock", Rows: all}}
}

func TestImportDuplicateBatchAcrossCaseVariants(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet(
		[]string{"Amoxicillin", "B100", "50", "15-08-2025", "2.50", "4.00"},
		[]string{"amoxicillin", "B100", "30", "", "", ""},
	)

	summary, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.ProcessedCount != 2 {
		t.Errorf("ProcessedCount = %d, want 2", summary.ProcessedCount)
	}
	if summary.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", summary.SuccessCount)
	}
	if summary.SkippedCount != 0 {
		t.Errorf("SkippedCount = %d, want 0", summary.SkippedCount)
	}
	if summary.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", summary.ErrorCount)
	}

	var skipped *types.RowOutcome
	for i := range summary.Outcomes {
		if summary.Outcomes[i].Status == types.StatusSkipped {
			skipped = &summary.Outcomes[i]
		}
	}
	if skipped == nil {
		t.Fatal("expected a skipped outcome for the duplicate batch row")
	}
	if skipped.Message != "Batch already exists" {
		t.Errorf("skipped message = %q", skipped.Message)
	}
	if skipped.Row != 3 {
		t.Errorf("skipped row index = %d, want 3", skipped.Row)
	}

	// case variants of the name resolve to a single medication
	names, err := db.ListMedicationNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(names))
	}

	batches, total, err := db.ListBatches(names[0].ID, "", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("expected 1 batch, got %d", total)
	}
	if batches[0].CurrentQuantity != 50 || batches[0].ReceivedQuantity != 50 {
		t.Errorf("batch quantities = %d/%d, want 50/50", batches[0].ReceivedQuantity, batches[0].CurrentQuantity)
	}
	if batches[0].ExpiryDate != "2025-08-15" {
		t.Errorf("batch expiry = %q, want 2025-08-15", batches[0].ExpiryDate)
	}

	totalStock, available, err := db.GetMedicationStock(names[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if totalStock != 50 || available != 50 {
		t.Errorf("stock = %d/%d, want 50/50", totalStock, available)
	}
}

func TestImportIdempotentAcrossRuns(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet([]string{"Cetirizine 10mg Tablet", "C200", "40", "2026-01-31", "", ""})

	if _, err := service.Run(sheets, "stock.xlsx"); err != nil {
		t.Fatal(err)
	}
	second, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if second.SuccessCount != 0 {
		t.Errorf("second run SuccessCount = %d, want 0", second.SuccessCount)
	}
	if len(second.Outcomes) != 1 || second.Outcomes[0].Status != types.StatusSkipped {
		t.Fatalf("expected one skipped outcome on second run, got %+v", second.Outcomes)
	}

	names, err := db.ListMedicationNames()
	if err != nil {
		t.Fatal(err)
	}
	totalStock, _, err := db.GetMedicationStock(names[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if totalStock != 40 {
		t.Errorf("stock after duplicate run = %d, want 40", totalStock)
	}
}

func TestImportRejectsSheetWithoutNameColumn(t *testing.T) {
	service, _ := setupMedicationImport(t)

	sheets := []importer.Sheet{{
		Name: "Bad",
		Rows: [][]string{
			{"Quantity", "Price"},
			{"10", "5.00"},
		},
	}}

	summary, err := service.Run(sheets, "bad.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if summary.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", summary.ErrorCount)
	}
	if summary.ProcessedCount != 0 {
		t.Errorf("ProcessedCount = %d, want 0: no rows should be processed", summary.ProcessedCount)
	}
	if len(summary.Outcomes) != 1 || summary.Outcomes[0].Status != types.StatusError {
		t.Fatalf("expected single error outcome, got %+v", summary.Outcomes)
	}
}

func TestImportSkipsBlankNameRowsSilently(t *testing.T) {
	service, _ := setupMedicationImport(t)

	sheets := medicationSheet(
		[]string{"", "B1", "10", "", "", ""},
		[]string{"Dolo 650", "B2", "10", "2025-12-31", "", ""},
	)

	summary, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if summary.SkippedCount != 1 {
		t.Errorf("SkippedCount = %d, want 1", summary.SkippedCount)
	}
	if summary.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", summary.SuccessCount)
	}
	// blank rows produce no outcome noise
	if len(summary.Outcomes) != 1 {
		t.Errorf("expected 1 outcome, got %d", len(summary.Outcomes))
	}
}

func TestImportPricingOnlyRow(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet([]string{"Pantoprazole 40mg", "", "", "", "3.10", "5.25"})

	summary, err := service.Run(sheets, "prices.csv")
	if err != nil {
		t.Fatal(err)
	}

	if summary.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", summary.SuccessCount)
	}
	if summary.Outcomes[0].Message != "updated, no batch data" {
		t.Errorf("message = %q", summary.Outcomes[0].Message)
	}

	m, err := db.FindMedicationByNormalizedName("pantoprazole 40mg")
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("medication should have been created")
	}
	if m.PurchasePrice != 3.10 || m.SellingPrice != 5.25 {
		t.Errorf("pricing = %v/%v, want 3.10/5.25", m.PurchasePrice, m.SellingPrice)
	}
	if m.TotalStock != 0 {
		t.Errorf("pricing-only row must not move stock, got %d", m.TotalStock)
	}
}

func TestImportUnparseableExpiryUsesSentinel(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet([]string{"Insulin Glargine Injection", "I1", "5", "not a date", "", ""})

	summary, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if summary.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", summary.SuccessCount)
	}

	names, err := db.ListMedicationNames()
	if err != nil {
		t.Fatal(err)
	}
	batches, _, err := db.ListBatches(names[0].ID, "", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if batches[0].ExpiryDate != importer.SentinelExpiryDate {
		t.Errorf("expiry = %q, want sentinel %q", batches[0].ExpiryDate, importer.SentinelExpiryDate)
	}
}

func TestImportDistinctNamesSharingCodePrefix(t *testing.T) {
	service, db := setupMedicationImport(t)

	// Both names reduce to the same 8-char code prefix ("PARACETA") and the
	// rows process within the same millisecond.
	sheets := medicationSheet(
		[]string{"Paracetamol 500mg Tablet", "P1", "10", "2026-06-30", "", ""},
		[]string{"Paracetamol 650mg Tablet", "P2", "10", "2026-06-30", "", ""},
	)

	summary, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if summary.SuccessCount != 2 {
		t.Fatalf("SuccessCount = %d, want 2: %+v", summary.SuccessCount, summary.Outcomes)
	}
	if summary.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", summary.ErrorCount)
	}

	first, err := db.FindMedicationByNormalizedName("paracetamol 500mg tablet")
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.FindMedicationByNormalizedName("paracetamol 650mg tablet")
	if err != nil {
		t.Fatal(err)
	}
	if first == nil || second == nil {
		t.Fatal("both medications should have been created")
	}
	if first.Code == second.Code {
		t.Errorf("generated codes must differ, both are %q", first.Code)
	}
}

func TestImportAggregatesStockAcrossLots(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet(
		[]string{"Azithromycin 250mg", "L1", "10", "2026-01-31", "", ""},
		[]string{"Azithromycin 250mg", "L2", "20", "2026-02-28", "", ""},
		[]string{"Azithromycin 250mg", "L3", "30", "2026-03-31", "", ""},
	)

	summary, err := service.Run(sheets, "stock.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if summary.SuccessCount != 3 {
		t.Fatalf("SuccessCount = %d, want 3: %+v", summary.SuccessCount, summary.Outcomes)
	}

	names, err := db.ListMedicationNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(names))
	}

	_, total, err := db.ListBatches(names[0].ID, "", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("expected 3 batches, got %d", total)
	}

	totalStock, available, err := db.GetMedicationStock(names[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if totalStock != 60 || available != 60 {
		t.Errorf("stock = %d/%d, want 60/60 (sum of lot quantities)", totalStock, available)
	}
}

func TestImportPartialPricingKeepsStoredPrice(t *testing.T) {
	service, db := setupMedicationImport(t)

	if _, err := service.Run(medicationSheet(
		[]string{"Omeprazole 20mg", "", "", "", "3.10", "5.25"},
	), "prices.csv"); err != nil {
		t.Fatal(err)
	}

	// a later row carries only the selling price
	if _, err := service.Run(medicationSheet(
		[]string{"Omeprazole 20mg", "", "", "", "", "6.00"},
	), "prices.csv"); err != nil {
		t.Fatal(err)
	}

	m, err := db.FindMedicationByNormalizedName("omeprazole 20mg")
	if err != nil {
		t.Fatal(err)
	}
	if m.PurchasePrice != 3.10 {
		t.Errorf("purchase price = %v, want 3.10 preserved", m.PurchasePrice)
	}
	if m.SellingPrice != 6.00 {
		t.Errorf("selling price = %v, want 6.00", m.SellingPrice)
	}
}

func TestImportDerivesCategoryFromRules(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet([]string{"Ceftriaxone 1g Injection", "J1", "10", "2026-06-30", "", ""})

	if _, err := service.Run(sheets, "stock.xlsx"); err != nil {
		t.Fatal(err)
	}

	m, err := db.FindMedicationByNormalizedName("ceftriaxone 1g injection")
	if err != nil {
		t.Fatal(err)
	}
	if m.Category != "Injectable" {
		t.Errorf("category = %q, want Injectable", m.Category)
	}
}

func TestImportRecordsRun(t *testing.T) {
	service, db := setupMedicationImport(t)

	sheets := medicationSheet([]string{"Metformin 500mg", "M1", "20", "2026-03-31", "", ""})
	if _, err := service.Run(sheets, "metformin.xlsx"); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListImportRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Source != "medications" || runs[0].Filename != "metformin.xlsx" {
		t.Errorf("unexpected run record: %+v", runs[0])
	}
	if runs[0].SuccessCount != 1 || runs[0].ProcessedCount != 1 {
		t.Errorf("run counters not stored: %+v", runs[0])
	}
}
