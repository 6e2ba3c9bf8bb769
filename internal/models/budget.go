package models

import "github.com/shopspring/decimal"

// Budget is a village's annual allocation. One budget exists per village and
// year. Amounts are DECIMAL(12,2) in the database and decimal strings on the
// wire; binary floating point never touches them.
type Budget struct {
	Base
	VillageID      uint            `gorm:"not null;uniqueIndex:idx_village_year" json:"village_id"`
	Year           int             `gorm:"not null;uniqueIndex:idx_village_year" json:"year"`
	TotalAllocated decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_allocated"`

	// Relationships
	Village    *Village         `gorm:"foreignKey:VillageID" json:"village,omitempty"`
	Categories []BudgetCategory `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}
