package testutil_test

import (
	"testing"

	"gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"villages", "users", "budgets", "budget_categories", "expenses"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	village := testutil.CreateTestVillage(t, db)
	if village.ID == 0 {
		t.Fatal("village should have a non-zero ID")
	}

	admin := testutil.CreateTestAdmin(t, db)
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", admin.Role)
	}
	if admin.VillageID != nil {
		t.Error("admin should not be tied to a village")
	}

	villager := testutil.CreateTestVillager(t, db, village.ID)
	if villager.VillageID == nil || *villager.VillageID != village.ID {
		t.Error("villager should belong to the created village")
	}

	budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "500000.00")
	if budget.Year != 2024 {
		t.Errorf("expected year 2024, got %d", budget.Year)
	}

	category := testutil.CreateTestCategory(t, db, budget.ID, "Roads", "100000.00")
	if category.CategoryName != "Roads" {
		t.Errorf("expected category Roads, got %s", category.CategoryName)
	}

	expense := testutil.CreateTestExpense(t, db, category.ID, "2500.00", models.NewDate(2024, 3, 15))
	if expense.Amount.String() != "2500" {
		t.Errorf("expected amount 2500, got %s", expense.Amount.String())
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
