package models

// Village is the tenant unit whose budgets and expenses are tracked.
type Village struct {
	Base
	Name     string `gorm:"size:150;not null" json:"name"`
	District string `gorm:"size:150" json:"district,omitempty"`
	State    string `gorm:"size:150" json:"state,omitempty"`

	// Relationships
	Budgets []Budget `gorm:"foreignKey:VillageID;constraint:OnDelete:CASCADE" json:"budgets,omitempty"`
	Users   []User   `gorm:"foreignKey:VillageID" json:"users,omitempty"`
}
