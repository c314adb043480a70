package services

import (
	"net/http"
	"testing"

	"hospitalserver/classification"
	"hospitalserver/database"
	apperrors "hospitalserver/server/errors"
)

func setupRuleService(t *testing.T) (*RuleService, *database.ServiceDB) {
	t.Helper()

	db := setupTestServiceDB(t)
	classifier := classification.NewCategoryClassifier(nil)
	service := NewRuleService(db, classifier)
	if err := service.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return service, db
}

func TestRuleServiceReloadUsesStoredRules(t *testing.T) {
	service, _ := setupRuleService(t)

	if got := service.Derive("Amoxicillin Injection", "", ""); got != "Injectable" {
		t.Errorf("Derive = %q, want Injectable from seeded rules", got)
	}
	if got := service.Derive("Something Unknown", "", ""); got != classification.CategoryGeneralMedicine {
		t.Errorf("Derive = %q, want default", got)
	}
}

func TestRuleServiceCreateAffectsDerivation(t *testing.T) {
	service, _ := setupRuleService(t)

	rule := &database.CategoryRule{Priority: 1, Keyword: "lozenge", Category: "Tablet", Active: true}
	if err := service.Create(rule); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rule.ID == 0 {
		t.Fatal("expected rule ID to be set")
	}

	if got := service.Derive("Strepsils Lozenge", "", ""); got != "Tablet" {
		t.Errorf("Derive = %q, want Tablet via new rule", got)
	}
}

func TestRuleServiceCreateValidation(t *testing.T) {
	service, _ := setupRuleService(t)

	err := service.Create(&database.CategoryRule{Priority: 1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", appErr.StatusCode())
	}
}

func TestRuleServiceDeleteMissing(t *testing.T) {
	service, _ := setupRuleService(t)

	err := service.Delete(99999)
	if err == nil {
		t.Fatal("expected not found error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want 404", appErr.StatusCode())
	}
}

func TestDuplicateServiceReport(t *testing.T) {
	db := setupTestServiceDB(t)

	meds := []database.Medication{
		{Code: "P1", Name: "Paracetamol 500 Tablets", NormalizedName: "paracetamol 500 tablets", Category: "Tablet"},
		{Code: "P2", Name: "Paracetamol 500 Tablet", NormalizedName: "paracetamol 500 tablet", Category: "Tablet"},
		{Code: "X1", Name: "Insulin Glargine", NormalizedName: "insulin glargine", Category: "Injectable"},
	}
	for i := range meds {
		if err := db.CreateMedication(&meds[i]); err != nil {
			t.Fatal(err)
		}
	}

	service := NewDuplicateService(db)
	groups, err := service.MedicationReport(0)
	if err != nil {
		t.Fatalf("MedicationReport: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d: %+v", len(groups), groups)
	}
	if len(groups[0].Names) != 2 {
		t.Errorf("expected both paracetamol variants grouped: %+v", groups[0])
	}
}
