package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hospitalserver/database"
	apperrors "hospitalserver/server/errors"
	"hospitalserver/server/middleware"
	"hospitalserver/server/services"
	"hospitalserver/server/types"
)

// ClassificationHandler serves the category rule endpoints.
type ClassificationHandler struct {
	rules *services.RuleService
}

// NewClassificationHandler creates the classification handler.
func NewClassificationHandler(rules *services.RuleService) *ClassificationHandler {
	return &ClassificationHandler{rules: rules}
}

// HandleListRules lists all stored category rules
// @Summary List category rules
// @Tags classification
// @Produce json
// @Success 200 {array} database.CategoryRule
// @Router /api/classification/rules [get]
func (h *ClassificationHandler) HandleListRules(c *gin.Context) {
	rules, err := h.rules.List()
	if err != nil {
		sendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, rules)
}

// HandleCreateRule stores a new category rule
// @Summary Create a category rule
// @Tags classification
// @Accept json
// @Produce json
// @Param request body types.CategoryRuleRequest true "Rule fields"
// @Success 201 {object} database.CategoryRule
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/classification/rules [post]
func (h *ClassificationHandler) HandleCreateRule(c *gin.Context) {
	var req types.CategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := &database.CategoryRule{
		Priority: req.Priority,
		Keyword:  req.Keyword,
		Category: req.Category,
		Active:   active,
	}
	if err := h.rules.Create(rule); err != nil {
		sendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusCreated, rule)
}

// HandleDeleteRule removes a category rule
// @Summary Delete a category rule
// @Tags classification
// @Produce json
// @Param id path int true "Rule id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/classification/rules/{id} [delete]
func (h *ClassificationHandler) HandleDeleteRule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.rules.Delete(id); err != nil {
		sendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"deleted": true})
}

// HandleDerive runs the classifier on free-text fields
// @Summary Derive a category for a medication name
// @Tags classification
// @Accept json
// @Produce json
// @Param request body types.DeriveRequest true "Fields to classify"
// @Success 200 {object} types.DeriveResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/classification/derive [post]
func (h *ClassificationHandler) HandleDerive(c *gin.Context) {
	var req types.DeriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	SendJSONResponse(c, http.StatusOK, types.DeriveResponse{
		Name:     req.Name,
		Category: h.rules.Derive(req.Name, req.Combination, req.Form),
	})
}

// sendAppError maps an AppError to its status code, anything else to 500.
func sendAppError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		middleware.GetErrorMetrics().RecordError(appErr, c.Request.URL.Path, middleware.GetRequestIDFromGin(c))
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	SendJSONError(c, http.StatusInternalServerError, "internal server error")
}
