package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"gramkosh/internal/pagination"
	"gramkosh/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		village := testutil.CreateTestVillage(t, db)
		budget, err := svc.CreateBudget(village.ID, 2024, decimal.RequireFromString("500000.00"))
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		testutil.AssertAmount(t, budget.TotalAllocated, "500000.00")
	})

	t.Run("village_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.CreateBudget(9999, 2024, decimal.NewFromInt(1000))
		testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
	})

	t.Run("duplicate_village_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		village := testutil.CreateTestVillage(t, db)
		_, err := svc.CreateBudget(village.ID, 2024, decimal.NewFromInt(1000))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(village.ID, 2024, decimal.NewFromInt(2000))
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("same_year_different_villages", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		first := testutil.CreateTestVillage(t, db)
		second := testutil.CreateTestVillage(t, db)

		_, err := svc.CreateBudget(first.ID, 2024, decimal.NewFromInt(1000))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(second.ID, 2024, decimal.NewFromInt(1000))
		testutil.AssertNoError(t, err)
	})
}

func TestGetAllBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	village := testutil.CreateTestVillage(t, db)
	testutil.CreateTestBudget(t, db, village.ID, 2023, "150000.00")
	testutil.CreateTestBudget(t, db, village.ID, 2024, "200000.00")

	result, err := svc.GetAllBudgets(pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Fatalf("expected 2 budgets, got %d", result.TotalItems)
	}
	if result.Data[0].Village == nil {
		t.Error("expected village to be preloaded")
	}
}

func TestGetBudgetsByVillage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	village := testutil.CreateTestVillage(t, db)
	other := testutil.CreateTestVillage(t, db)
	testutil.CreateTestBudget(t, db, village.ID, 2024, "100000.00")
	testutil.CreateTestBudget(t, db, village.ID, 2023, "50000.00")
	testutil.CreateTestBudget(t, db, other.ID, 2024, "999999.00")

	budgets, err := svc.GetBudgetsByVillage(village.ID)
	testutil.AssertNoError(t, err)

	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].Year != 2023 {
		t.Errorf("expected budgets ordered by year, got first year %d", budgets[0].Year)
	}

	_, err = svc.GetBudgetsByVillage(9999)
	testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
}

func TestUpdateBudget(t *testing.T) {
	t.Run("update_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		village := testutil.CreateTestVillage(t, db)
		budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "100000.00")

		amount := decimal.RequireFromString("250000.00")
		updated, err := svc.UpdateBudget(budget.ID, nil, &amount)
		testutil.AssertNoError(t, err)

		if !updated.TotalAllocated.Equal(amount) {
			t.Errorf("expected allocation 250000.00, got %s", updated.TotalAllocated)
		}
	})

	t.Run("year_collision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		village := testutil.CreateTestVillage(t, db)
		testutil.CreateTestBudget(t, db, village.ID, 2023, "100000.00")
		budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "100000.00")

		year := 2023
		_, err := svc.UpdateBudget(budget.ID, &year, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		year := 2025
		_, err := svc.UpdateBudget(9999, &year, nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	village := testutil.CreateTestVillage(t, db)
	budget := testutil.CreateTestBudget(t, db, village.ID, 2024, "100000.00")
	testutil.CreateTestCategory(t, db, budget.ID, "Roads", "40000.00")

	testutil.AssertNoError(t, svc.DeleteBudget(budget.ID))

	_, err := svc.GetBudgetByID(budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	testutil.AssertAppError(t, svc.DeleteBudget(9999), "BUDGET_NOT_FOUND")
}
