package services

import (
	"hospitalserver/database"
	"hospitalserver/normalization"
	apperrors "hospitalserver/server/errors"
)

// DuplicateService produces an advisory report of catalog names that look
// like duplicates of each other. It never mutates data.
type DuplicateService struct {
	db *database.ServiceDB
}

// NewDuplicateService creates the duplicate report service.
func NewDuplicateService(db *database.ServiceDB) *DuplicateService {
	return &DuplicateService{db: db}
}

// MedicationReport groups medication names by stemmed-token similarity.
// threshold <= 0 falls back to the finder default.
func (s *DuplicateService) MedicationReport(threshold float64) ([]normalization.DuplicateGroup, error) {
	medications, err := s.db.ListMedicationNames()
	if err != nil {
		return nil, apperrors.NewInternalError("database operation failed", err)
	}

	names := make([]string, 0, len(medications))
	for _, m := range medications {
		names = append(names, m.Name)
	}

	finder := normalization.NewDuplicateFinder(threshold)
	return finder.FindSuspects(names), nil
}
