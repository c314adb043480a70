package database

import (
	"database/sql"
	"strings"
	"testing"
)

func setupTestDB(t *testing.T) *ServiceDB {
	t.Helper()

	db, err := NewServiceDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitSchemaCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{"medications", "medication_batches", "patients", "category_rules", "import_runs"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestCreateAndFindMedication(t *testing.T) {
	db := setupTestDB(t)

	m := &Medication{
		Code:           "AMOXICIL-1001",
		Name:           "Amoxicillin 500mg",
		NormalizedName: "amoxicillin 500mg",
		Category:       "Capsule",
		Manufacturer:   "Cipla",
		PurchasePrice:  2.5,
		SellingPrice:   4.0,
	}
	if err := db.CreateMedication(m); err != nil {
		t.Fatalf("CreateMedication: %v", err)
	}
	if m.ID == 0 {
		t.Fatal("expected medication ID to be set")
	}

	found, err := db.FindMedicationByNormalizedName("amoxicillin 500mg")
	if err != nil {
		t.Fatalf("FindMedicationByNormalizedName: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find medication")
	}
	if found.ID != m.ID || found.Name != "Amoxicillin 500mg" || found.Category != "Capsule" {
		t.Errorf("unexpected medication: %+v", found)
	}

	missing, err := db.FindMedicationByNormalizedName("no such drug")
	if err != nil {
		t.Fatalf("FindMedicationByNormalizedName (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing medication, got %+v", missing)
	}
}

func TestFindMedicationReturnsOldest(t *testing.T) {
	db := setupTestDB(t)

	first := &Medication{Code: "PARA-1", Name: "Paracetamol", NormalizedName: "paracetamol", Category: "Tablet"}
	second := &Medication{Code: "PARA-2", Name: "paracetamol", NormalizedName: "paracetamol", Category: "Tablet"}
	if err := db.CreateMedication(first); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateMedication(second); err != nil {
		t.Fatal(err)
	}

	found, err := db.FindMedicationByNormalizedName("paracetamol")
	if err != nil {
		t.Fatal(err)
	}
	if found.ID != first.ID {
		t.Errorf("expected oldest medication %d, got %d", first.ID, found.ID)
	}
}

func TestMedicationStock(t *testing.T) {
	db := setupTestDB(t)

	m := &Medication{Code: "IBU-1", Name: "Ibuprofen", NormalizedName: "ibuprofen", Category: "Tablet"}
	if err := db.CreateMedication(m); err != nil {
		t.Fatal(err)
	}

	if err := db.AddMedicationStock(m.ID, 100); err != nil {
		t.Fatalf("AddMedicationStock: %v", err)
	}
	if err := db.AddMedicationStock(m.ID, 50); err != nil {
		t.Fatalf("AddMedicationStock: %v", err)
	}

	total, available, err := db.GetMedicationStock(m.ID)
	if err != nil {
		t.Fatalf("GetMedicationStock: %v", err)
	}
	if total != 150 || available != 150 {
		t.Errorf("expected stock 150/150, got %d/%d", total, available)
	}
}

func TestUpdateMedicationPricingKeepsMissingValues(t *testing.T) {
	db := setupTestDB(t)

	m := &Medication{
		Code:           "OME-1",
		Name:           "Omeprazole 20mg",
		NormalizedName: "omeprazole 20mg",
		Category:       "Capsule",
		PurchasePrice:  3.10,
		SellingPrice:   5.25,
	}
	if err := db.CreateMedication(m); err != nil {
		t.Fatal(err)
	}

	// zero means the source row did not provide that price
	if err := db.UpdateMedicationPricing(m.ID, 0, 6.00); err != nil {
		t.Fatalf("UpdateMedicationPricing: %v", err)
	}

	found, err := db.GetMedicationByID(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.PurchasePrice != 3.10 {
		t.Errorf("purchase price = %v, want 3.10 preserved", found.PurchasePrice)
	}
	if found.SellingPrice != 6.00 {
		t.Errorf("selling price = %v, want 6.00", found.SellingPrice)
	}

	if err := db.UpdateMedicationPricing(m.ID, 3.50, 0); err != nil {
		t.Fatalf("UpdateMedicationPricing: %v", err)
	}
	found, err = db.GetMedicationByID(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.PurchasePrice != 3.50 || found.SellingPrice != 6.00 {
		t.Errorf("pricing = %v/%v, want 3.50/6.00", found.PurchasePrice, found.SellingPrice)
	}
}

func TestBatchUniqueness(t *testing.T) {
	db := setupTestDB(t)

	m := &Medication{Code: "AZI-1", Name: "Azithromycin", NormalizedName: "azithromycin", Category: "Tablet"}
	if err := db.CreateMedication(m); err != nil {
		t.Fatal(err)
	}

	b := &MedicationBatch{
		MedicationID:     m.ID,
		BatchNumber:      "B100",
		ReceivedQuantity: 20,
		CurrentQuantity:  20,
		ExpiryDate:       "2027-06-30",
	}
	if err := db.CreateBatch(b); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	exists, err := db.BatchExists(m.ID, "B100")
	if err != nil {
		t.Fatalf("BatchExists: %v", err)
	}
	if !exists {
		t.Error("expected batch B100 to exist")
	}

	exists, err = db.BatchExists(m.ID, "B200")
	if err != nil {
		t.Fatalf("BatchExists: %v", err)
	}
	if exists {
		t.Error("did not expect batch B200 to exist")
	}

	dup := &MedicationBatch{MedicationID: m.ID, BatchNumber: "B100", ExpiryDate: "2027-06-30"}
	if err := db.CreateBatch(dup); err == nil {
		t.Error("expected unique constraint violation for duplicate batch")
	} else if !strings.Contains(err.Error(), "UNIQUE") {
		t.Errorf("expected UNIQUE constraint error, got %v", err)
	}
}

func TestListBatchesFilters(t *testing.T) {
	db := setupTestDB(t)

	m := &Medication{Code: "CET-1", Name: "Cetirizine", NormalizedName: "cetirizine", Category: "Tablet"}
	if err := db.CreateMedication(m); err != nil {
		t.Fatal(err)
	}

	batches := []MedicationBatch{
		{MedicationID: m.ID, BatchNumber: "A1", ExpiryDate: "2025-01-31"},
		{MedicationID: m.ID, BatchNumber: "A2", ExpiryDate: "2027-01-31"},
	}
	for i := range batches {
		if err := db.CreateBatch(&batches[i]); err != nil {
			t.Fatal(err)
		}
	}

	expiring, total, err := db.ListBatches(m.ID, "2026-01-01", 50, 0)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if total != 1 || len(expiring) != 1 || expiring[0].BatchNumber != "A1" {
		t.Errorf("expected only A1 expiring before 2026, got %+v", expiring)
	}

	all, total, err := db.ListBatches(m.ID, "", 50, 0)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected 2 batches, got %d", len(all))
	}
	if all[0].MedicationName != "Cetirizine" {
		t.Errorf("expected joined medication name, got %q", all[0].MedicationName)
	}
}

func TestPatientCreateFindUpdate(t *testing.T) {
	db := setupTestDB(t)

	p := &Patient{Code: "JOHNDOE-1", Name: "John Doe", NormalizedName: "john doe", Phone: "555-0101"}
	if err := db.CreatePatient(p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	found, err := db.FindPatientByNormalizedName("john doe")
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.ID != p.ID {
		t.Fatalf("expected to find patient, got %+v", found)
	}

	// contact update fills blanks but never overwrites
	update := &Patient{ID: p.ID, Phone: "555-9999", Address: "12 Main St", BloodGroup: "O+"}
	if err := db.UpdatePatientContact(update); err != nil {
		t.Fatalf("UpdatePatientContact: %v", err)
	}

	found, err = db.GetPatientByID(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.Phone != "555-0101" {
		t.Errorf("existing phone should not be overwritten, got %q", found.Phone)
	}
	if found.Address != "12 Main St" || found.BloodGroup != "O+" {
		t.Errorf("blank fields should be filled, got %+v", found)
	}
}

func TestCategoryRulesSeededAndCRUD(t *testing.T) {
	db := setupTestDB(t)

	rules, err := db.ListCategoryRules(true)
	if err != nil {
		t.Fatalf("ListCategoryRules: %v", err)
	}
	if len(rules) == 0 {
		t.Fatal("expected seeded category rules")
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].Priority < rules[i-1].Priority {
			t.Fatalf("rules not ordered by priority: %+v", rules)
		}
	}

	r := &CategoryRule{Priority: 5, Keyword: "lozenge", Category: "Tablet", Active: true}
	if err := db.CreateCategoryRule(r); err != nil {
		t.Fatalf("CreateCategoryRule: %v", err)
	}

	r.Active = false
	if err := db.UpdateCategoryRule(r); err != nil {
		t.Fatalf("UpdateCategoryRule: %v", err)
	}

	active, err := db.ListCategoryRules(true)
	if err != nil {
		t.Fatal(err)
	}
	for _, rule := range active {
		if rule.ID == r.ID {
			t.Error("inactive rule should not be listed with activeOnly")
		}
	}

	if err := db.DeleteCategoryRule(r.ID); err != nil {
		t.Fatalf("DeleteCategoryRule: %v", err)
	}
	if err := db.DeleteCategoryRule(r.ID); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for second delete, got %v", err)
	}
}

func TestImportRunLifecycle(t *testing.T) {
	db := setupTestDB(t)

	run := &ImportRun{RunUUID: "run-123", Source: "medications", Filename: "stock.xlsx"}
	if err := db.CreateImportRun(run); err != nil {
		t.Fatalf("CreateImportRun: %v", err)
	}

	run.ProcessedCount = 10
	run.SuccessCount = 7
	run.ErrorCount = 2
	run.SkippedCount = 1
	if err := db.FinishImportRun(run); err != nil {
		t.Fatalf("FinishImportRun: %v", err)
	}

	runs, err := db.ListImportRuns(10)
	if err != nil {
		t.Fatalf("ListImportRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.SuccessCount != 7 || got.ErrorCount != 2 || got.SkippedCount != 1 {
		t.Errorf("unexpected counters: %+v", got)
	}
	if got.FinishedAt == "" {
		t.Error("expected finished_at to be set")
	}
}

func TestListMedicationsPagingAndSearch(t *testing.T) {
	db := setupTestDB(t)

	names := []string{"Amoxicillin", "Azithromycin", "Paracetamol"}
	for i, name := range names {
		m := &Medication{
			Code:           name + "-" + string(rune('A'+i)),
			Name:           name,
			NormalizedName: strings.ToLower(name),
			Category:       "Tablet",
		}
		if err := db.CreateMedication(m); err != nil {
			t.Fatal(err)
		}
	}

	page, total, err := db.ListMedications("", 2, 0)
	if err != nil {
		t.Fatalf("ListMedications: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Errorf("expected total 3 with page of 2, got total %d page %d", total, len(page))
	}

	hits, total, err := db.ListMedications("amox", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(hits) != 1 || hits[0].Name != "Amoxicillin" {
		t.Errorf("expected Amoxicillin match, got %+v", hits)
	}
}
