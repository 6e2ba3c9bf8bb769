// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("budget_year", validateBudgetYear)
		_ = v.RegisterValidation("money", validateMoney)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "villager":
		return true
	}
	return false
}

// Budget years are four-digit calendar years.
func validateBudgetYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1900 && year <= 9999
}

// Money fields arrive as decimal strings and must be non-negative with at
// most two fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Exponent() >= -2
}
