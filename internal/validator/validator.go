// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("year_month", validateYearMonth)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("group_key", validateGroupKey)
	}
}

// validateISODate accepts calendar dates in YYYY-MM-DD form. Dates are
// stored and compared as strings, so the format is load-bearing.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "yearly":
		return true
	}
	return false
}

func validateGroupKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "category", "subcategory", "payment_method", "location", "month", "day_of_week":
		return true
	}
	return false
}
