package models

import "github.com/shopspring/decimal"

// Expense is a spend recorded against a budget category.
type Expense struct {
	Base
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	VendorName  string          `gorm:"size:150" json:"vendor_name,omitempty"`
	ExpenseDate Date            `gorm:"type:date;not null" json:"expense_date"`

	// Relationships
	Category *BudgetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
