package models

import "github.com/shopspring/decimal"

// BudgetCategory is a named slice of a budget's allocation. The sum of
// category allocations is expected not to exceed the parent budget's
// total_allocated, but that invariant is advisory and not enforced here.
type BudgetCategory struct {
	Base
	BudgetID        uint            `gorm:"not null" json:"budget_id"`
	CategoryName    string          `gorm:"size:150;not null" json:"category_name"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"allocated_amount"`

	// Relationships
	Budget   *Budget   `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
	Expenses []Expense `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}
