package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// BudgetHandler handles budget management requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the request payload for setting a budget.
// MonthlyLimit is a pointer so an explicit zero limit is accepted.
type SetBudgetRequest struct {
	MonthlyLimit *float64 `json:"monthly_limit" binding:"required"`
	StartDate    string   `json:"start_date" binding:"omitempty,iso_date"`
}

// SetBudget stores the monthly limit for the category in the path,
// overwriting any previous budget for it.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	category := c.Param("category")

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.SetBudget(category, *req.MonthlyLimit, req.StartDate); err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("Set budget for %s: $%.2f/month", category, *req.MonthlyLimit)
	respondOK(c, http.StatusOK, message, 0)
}

// BudgetStatus reports spending against every configured budget for a month.
func (h *BudgetHandler) BudgetStatus(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.budgetService.BudgetStatus(query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
