package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendwise/internal/configstore"
	apperrors "spendwise/internal/errors"
)

// ConfigHandler serves the two read-only configuration resources: the
// category taxonomy and the raw budgets document.
type ConfigHandler struct {
	categories *configstore.CategoryStore
	budgets    *configstore.BudgetStore
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(categories *configstore.CategoryStore, budgets *configstore.BudgetStore) *ConfigHandler {
	return &ConfigHandler{categories: categories, budgets: budgets}
}

// GetCategories serves the taxonomy file, falling back to the built-in
// defaults when the file is absent.
func (h *ConfigHandler) GetCategories(c *gin.Context) {
	data, err := h.categories.Raw()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// GetBudgets serves the budgets file, or an empty object when absent.
func (h *ConfigHandler) GetBudgets(c *gin.Context) {
	data, err := h.budgets.Raw()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
