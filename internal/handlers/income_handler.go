package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// IncomeHandler handles income tracking requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// AddIncomeRequest represents the request payload for recording income.
type AddIncomeRequest struct {
	Date     string  `json:"date" binding:"required,iso_date"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Source   string  `json:"source" binding:"required"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

// ListIncomeQuery holds the income list filters.
type ListIncomeQuery struct {
	StartDate string `form:"start_date" binding:"required,iso_date"`
	EndDate   string `form:"end_date" binding:"required,iso_date"`
	Source    string `form:"source"`
}

// AddIncome records an earnings entry.
func (h *IncomeHandler) AddIncome(c *gin.Context) {
	var req AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.AddIncome(req.Date, req.Amount, req.Source, req.Category, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("Added income of $%.2f from %s", income.Amount, income.Source)
	respondOK(c, http.StatusCreated, message, income.ID)
}

// ListIncome returns income entries within a date range.
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	var query ListIncomeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entries, err := h.incomeService.ListIncome(query.StartDate, query.EndDate, query.Source)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
