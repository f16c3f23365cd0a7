package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// AnalyticsHandler handles reporting requests. Every operation is a pure
// read over the store.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SummaryQuery holds the grouped-summary parameters.
type SummaryQuery struct {
	StartDate string `form:"start_date" binding:"required,iso_date"`
	EndDate   string `form:"end_date" binding:"required,iso_date"`
	Category  string `form:"category"`
	GroupBy   string `form:"group_by" binding:"omitempty,group_key"`
}

// TrendsQuery holds the lookback window in months.
type TrendsQuery struct {
	Months int `form:"months" binding:"omitempty,min=1"`
}

// StatisticsQuery holds the statistics date range.
type StatisticsQuery struct {
	StartDate string `form:"start_date" binding:"required,iso_date"`
	EndDate   string `form:"end_date" binding:"required,iso_date"`
}

// MonthQuery holds an optional YYYY-MM month, defaulting to the current one.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,year_month"`
}

// Summarize returns grouped expense totals for a date range.
func (h *AnalyticsHandler) Summarize(c *gin.Context) {
	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rows, err := h.analyticsService.Summarize(query.StartDate, query.EndDate, query.Category, query.GroupBy)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// SpendingTrends returns per-category monthly totals over a lookback window.
func (h *AnalyticsHandler) SpendingTrends(c *gin.Context) {
	var query TrendsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	trends, err := h.analyticsService.SpendingTrends(query.Months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// Statistics returns aggregate spending statistics for a date range.
func (h *AnalyticsHandler) Statistics(c *gin.Context) {
	var query StatisticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stats, err := h.analyticsService.Statistics(query.StartDate, query.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// NetWorth returns income minus expenses and the savings rate for a month.
func (h *AnalyticsHandler) NetWorth(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.analyticsService.NetWorth(query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
