package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
	"gramkosh/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		village := testutil.CreateTestVillage(t, db)
		budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "500000.00")
		category := testutil.CreateTestCategory(t, db, budget.ID, "Roads", "100000.00")

		expense, err := svc.CreateExpense(category.ID, "Gravel delivery", decimal.RequireFromString("2500.00"), "ACME Supplies", models.NewDate(2024, 3, 15))
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.VendorName != "ACME Supplies" {
			t.Errorf("expected vendor ACME Supplies, got %s", expense.VendorName)
		}
	})

	t.Run("category_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateExpense(9999, "", decimal.NewFromInt(100), "", models.NewDate(2024, 1, 1))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetExpensesByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)

	village := testutil.CreateTestVillage(t, db)
	budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "500000.00")
	category := testutil.CreateTestCategory(t, db, budget.ID, "Roads", "100000.00")
	other := testutil.CreateTestCategory(t, db, budget.ID, "Water", "50000.00")

	testutil.CreateTestExpense(t, db, category.ID, "100.00", models.NewDate(2024, 5, 1))
	testutil.CreateTestExpense(t, db, category.ID, "200.00", models.NewDate(2024, 3, 1))
	testutil.CreateTestExpense(t, db, other.ID, "999.00", models.NewDate(2024, 4, 1))

	result, err := svc.GetExpensesByCategory(category.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Fatalf("expected 2 expenses, got %d", result.TotalItems)
	}
	if !result.Data[0].Amount.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("expected expenses ordered by date, got first amount %s", result.Data[0].Amount)
	}

	_, err = svc.GetExpensesByCategory(9999, pagination.PageRequest{})
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestUpdateExpense(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		village := testutil.CreateTestVillage(t, db)
		budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "500000.00")
		category := testutil.CreateTestCategory(t, db, budget.ID, "Roads", "100000.00")
		expense := testutil.CreateTestExpense(t, db, category.ID, "100.00", models.NewDate(2024, 1, 1))

		amount := decimal.RequireFromString("150.00")
		updated, err := svc.UpdateExpense(expense.ID, nil, &amount, nil, nil)
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(amount) {
			t.Errorf("expected amount 150.00, got %s", updated.Amount)
		}
		// Untouched fields stay as they were.
		reloaded, err := svc.GetExpenseByID(expense.ID)
		testutil.AssertNoError(t, err)
		if reloaded.VendorName != expense.VendorName {
			t.Errorf("expected vendor unchanged, got %s", reloaded.VendorName)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		desc := "x"
		_, err := svc.UpdateExpense(9999, &desc, nil, nil, nil)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)

	village := testutil.CreateTestVillage(t, db)
	budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "500000.00")
	category := testutil.CreateTestCategory(t, db, budget.ID, "Roads", "100000.00")
	expense := testutil.CreateTestExpense(t, db, category.ID, "100.00", models.NewDate(2024, 1, 1))

	testutil.AssertNoError(t, svc.DeleteExpense(expense.ID))

	_, err := svc.GetExpenseByID(expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	testutil.AssertAppError(t, svc.DeleteExpense(9999), "EXPENSE_NOT_FOUND")
}
