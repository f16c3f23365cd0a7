package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// RecurringHandler handles recurring expense template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// AddRecurringRequest represents the request payload for creating a template.
type AddRecurringRequest struct {
	Name        string  `json:"name" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Note        string  `json:"note"`
	Frequency   string  `json:"frequency" binding:"required,frequency"`
	NextDueDate string  `json:"next_due_date" binding:"required,iso_date"`
}

// ListRecurringQuery controls whether inactive templates are included.
type ListRecurringQuery struct {
	ActiveOnly *bool `form:"active_only"`
}

// ProcessDueRequest optionally overrides the processing date. An empty
// body processes as of today.
type ProcessDueRequest struct {
	Date string `json:"date" binding:"omitempty,iso_date"`
}

// AddRecurring creates a recurring expense template.
func (h *RecurringHandler) AddRecurring(c *gin.Context) {
	var req AddRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.AddRecurring(
		req.Name, req.Amount, req.Category, req.Subcategory, req.Note,
		models.Frequency(req.Frequency), req.NextDueDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, fmt.Sprintf("Added recurring expense: %s", recurring.Name), recurring.ID)
}

// ListRecurring returns templates ordered by next due date. Inactive
// templates are excluded unless active_only=false is passed.
func (h *RecurringHandler) ListRecurring(c *gin.Context) {
	var query ListRecurringQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activeOnly := true
	if query.ActiveOnly != nil {
		activeOnly = *query.ActiveOnly
	}

	templates, err := h.recurringService.ListRecurring(activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// ProcessDue materializes expenses for all due templates.
func (h *RecurringHandler) ProcessDue(c *gin.Context) {
	var req ProcessDueRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.recurringService.ProcessDue(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"processed": result.Processed,
		"count":     result.Count,
	})
}
