package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gramkosh/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestVillage creates a village with a unique name.
func CreateTestVillage(t *testing.T, db *gorm.DB) *models.Village {
	t.Helper()

	village := &models.Village{
		Name:     fmt.Sprintf("Test Village %d", nextID()),
		District: "Test District",
		State:    "Test State",
	}
	if err := db.Create(village).Error; err != nil {
		t.Fatalf("failed to create test village: %v", err)
	}
	return village
}

// CreateTestAdmin creates an admin user with a hashed password and unique email.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return createTestUser(t, db, email, models.RoleAdmin, nil)
}

// CreateTestVillager creates a villager belonging to the given village.
func CreateTestVillager(t *testing.T, db *gorm.DB, villageID uint) *models.User {
	t.Helper()
	email := fmt.Sprintf("villager%d@test.com", nextID())
	return createTestUser(t, db, email, models.RoleVillager, &villageID)
}

// CreateTestUserWithEmail creates a villager with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, villageID uint) *models.User {
	t.Helper()
	return createTestUser(t, db, email, models.RoleVillager, &villageID)
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role, villageID *uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		Name:      fmt.Sprintf("Test User %d", nextID()),
		Role:      role,
		VillageID: villageID,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for the given village and year.
func CreateTestBudget(t *testing.T, db *gorm.DB, villageID uint, year int, totalAllocated string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		VillageID:      villageID,
		Year:           year,
		TotalAllocated: decimal.RequireFromString(totalAllocated),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory creates a budget category with the given allocation.
func CreateTestCategory(t *testing.T, db *gorm.DB, budgetID uint, name, allocatedAmount string) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		BudgetID:        budgetID,
		CategoryName:    name,
		AllocatedAmount: decimal.RequireFromString(allocatedAmount),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense under the given category.
func CreateTestExpense(t *testing.T, db *gorm.DB, categoryID uint, amount string, date models.Date) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		VendorName:  "Test Vendor",
		ExpenseDate: date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// Today returns the current date as a models.Date.
func Today() models.Date {
	now := time.Now()
	return models.NewDate(now.Year(), now.Month(), now.Day())
}
