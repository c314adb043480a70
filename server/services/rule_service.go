package services

import (
	"database/sql"
	"errors"

	"hospitalserver/classification"
	"hospitalserver/database"
	apperrors "hospitalserver/server/errors"
)

// RuleService manages the stored category rules and keeps the in-memory
// classifier in sync with them.
type RuleService struct {
	db         *database.ServiceDB
	classifier *classification.CategoryClassifier
}

// NewRuleService creates the rule service.
func NewRuleService(db *database.ServiceDB, classifier *classification.CategoryClassifier) *RuleService {
	return &RuleService{db: db, classifier: classifier}
}

// Reload replaces the classifier's rule set with the active stored rules.
func (s *RuleService) Reload() error {
	stored, err := s.db.ListCategoryRules(true)
	if err != nil {
		return apperrors.NewInternalError("database operation failed", err)
	}

	rules := make([]classification.Rule, 0, len(stored))
	for _, r := range stored {
		rules = append(rules, classification.Rule{
			ID:       r.ID,
			Priority: r.Priority,
			Keyword:  r.Keyword,
			Category: r.Category,
			Active:   r.Active,
		})
	}
	s.classifier.SetRules(rules)
	return nil
}

// List returns all stored rules ordered by priority.
func (s *RuleService) List() ([]database.CategoryRule, error) {
	rules, err := s.db.ListCategoryRules(false)
	if err != nil {
		return nil, apperrors.NewInternalError("database operation failed", err)
	}
	return rules, nil
}

// Create stores a new rule and reloads the classifier.
func (s *RuleService) Create(rule *database.CategoryRule) error {
	if rule.Keyword == "" || rule.Category == "" {
		return apperrors.NewValidationError("keyword and category are required", nil)
	}
	if err := s.db.CreateCategoryRule(rule); err != nil {
		return apperrors.NewInternalError("database operation failed", err)
	}
	return s.Reload()
}

// Delete removes a rule and reloads the classifier.
func (s *RuleService) Delete(id int64) error {
	if err := s.db.DeleteCategoryRule(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFoundError("category rule not found", err)
		}
		return apperrors.NewInternalError("database operation failed", err)
	}
	return s.Reload()
}

// Derive runs the classifier on the given fields.
func (s *RuleService) Derive(name, combination, form string) string {
	return s.classifier.Derive(name, combination, form)
}
