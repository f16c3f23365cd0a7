package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense CRUD, search, and export requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// AddExpenseRequest represents the request payload for creating an expense.
type AddExpenseRequest struct {
	Date          string  `json:"date" binding:"required,iso_date"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"required"`
	Subcategory   string  `json:"subcategory"`
	Note          string  `json:"note"`
	PaymentMethod string  `json:"payment_method"`
	Location      string  `json:"location"`
	Tags          string  `json:"tags"`
}

// UpdateExpenseRequest is a sparse patch: absent fields are left
// unchanged, present fields overwrite, including explicit empty strings.
type UpdateExpenseRequest struct {
	Date          *string  `json:"date" binding:"omitempty,iso_date"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category      *string  `json:"category" binding:"omitempty,min=1"`
	Subcategory   *string  `json:"subcategory"`
	Note          *string  `json:"note"`
	PaymentMethod *string  `json:"payment_method"`
	Location      *string  `json:"location"`
	Tags          *string  `json:"tags"`
}

// ListExpensesQuery holds the list filters. The date range is required.
type ListExpensesQuery struct {
	StartDate     string `form:"start_date" binding:"required,iso_date"`
	EndDate       string `form:"end_date" binding:"required,iso_date"`
	Category      string `form:"category"`
	PaymentMethod string `form:"payment_method"`
	Location      string `form:"location"`
	Tag           string `form:"tag"`
}

// SearchExpensesQuery holds the free-text search parameters.
type SearchExpensesQuery struct {
	Query     string `form:"q" binding:"required"`
	StartDate string `form:"start_date" binding:"omitempty,iso_date"`
	EndDate   string `form:"end_date" binding:"omitempty,iso_date"`
}

// ExportExpensesQuery holds the CSV export parameters.
type ExportExpensesQuery struct {
	StartDate string `form:"start_date" binding:"required,iso_date"`
	EndDate   string `form:"end_date" binding:"required,iso_date"`
	Filename  string `form:"filename"`
}

// AddExpense handles creation of a new expense.
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(
		req.Date, req.Amount, req.Category, req.Subcategory,
		req.Note, req.PaymentMethod, req.Location, req.Tags,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("Added expense of $%.2f for %s", expense.Amount, expense.Category)
	respondOK(c, http.StatusCreated, message, expense.ID)
}

// UpdateExpense applies a sparse patch to an existing expense.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.ExpensePatch{
		Date:          req.Date,
		Amount:        req.Amount,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		Location:      req.Location,
		Tags:          req.Tags,
	}

	expense, err := h.expenseService.UpdateExpense(id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, http.StatusOK, fmt.Sprintf("Updated expense ID %d", expense.ID), 0)
}

// DeleteExpense removes an expense by ID.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, http.StatusOK, fmt.Sprintf("Deleted expense ID %d", id), 0)
}

// GetExpenseByID returns a single expense record.
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// ListExpenses returns expenses within a date range with optional filters.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, err := h.expenseService.ListExpenses(services.ExpenseFilter{
		StartDate:     query.StartDate,
		EndDate:       query.EndDate,
		Category:      query.Category,
		PaymentMethod: query.PaymentMethod,
		Location:      query.Location,
		Tag:           query.Tag,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// SearchExpenses matches a substring against the free-text fields.
func (h *ExpenseHandler) SearchExpenses(c *gin.Context) {
	var query SearchExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, err := h.expenseService.SearchExpenses(query.Query, query.StartDate, query.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// ExportExpenses renders expenses in a date range as CSV.
func (h *ExpenseHandler) ExportExpenses(c *gin.Context) {
	var query ExportExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	export, err := h.expenseService.ExportCSV(query.StartDate, query.EndDate, query.Filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"filename":     export.Filename,
		"content":      export.Content,
		"record_count": export.RecordCount,
	})
}
