package models

// Role controls which management views and mutations a user may reach.
// Admins manage villages and budgets across the whole platform; villagers
// see only their own village's data.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVillager Role = "villager"
)

// User represents a registered account.
type User struct {
	Base
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Name      string `gorm:"size:150;not null" json:"name"`
	Role      Role   `gorm:"size:20;not null;default:villager" json:"role"`
	VillageID *uint  `json:"village_id,omitempty"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Village *Village `gorm:"foreignKey:VillageID" json:"village,omitempty"`
}
