package services

import (
	"testing"

	"gramkosh/internal/pagination"
	"gramkosh/internal/testutil"
)

func TestCreateVillage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewVillageService(db)

		village, err := svc.CreateVillage("Rampur", "Sitapur", "Uttar Pradesh")
		testutil.AssertNoError(t, err)

		if village.ID == 0 {
			t.Fatal("expected non-zero village ID")
		}
		if village.Name != "Rampur" {
			t.Errorf("expected name Rampur, got %s", village.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewVillageService(db)

		_, err := svc.CreateVillage("", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetVillages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewVillageService(db)

	first := testutil.CreateTestVillage(t, db)
	testutil.CreateTestVillage(t, db)
	testutil.CreateTestVillage(t, db)

	result, err := svc.GetVillages(pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Errorf("expected 3 villages, got %d", result.TotalItems)
	}
	if len(result.Data) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Data))
	}
	if result.Data[0].ID != first.ID {
		t.Errorf("expected villages ordered by id, got first id %d", result.Data[0].ID)
	}
}

func TestGetVillageByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewVillageService(db)

	created := testutil.CreateTestVillage(t, db)

	village, err := svc.GetVillageByID(created.ID)
	testutil.AssertNoError(t, err)
	if village.Name != created.Name {
		t.Errorf("expected name %s, got %s", created.Name, village.Name)
	}

	_, err = svc.GetVillageByID(9999)
	testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
}

func TestDeleteVillage(t *testing.T) {
	t.Run("deletes_village_and_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewVillageService(db)

		village := testutil.CreateTestVillage(t, db)
		testutil.CreateTestBudget(t, db, village.ID, 2024, "100000.00")

		testutil.AssertNoError(t, svc.DeleteVillage(village.ID))

		_, err := svc.GetVillageByID(village.ID)
		testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
	})

	t.Run("blocked_when_users_exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewVillageService(db)

		village := testutil.CreateTestVillage(t, db)
		testutil.CreateTestVillager(t, db, village.ID)

		err := svc.DeleteVillage(village.ID)
		testutil.AssertAppError(t, err, "VILLAGE_IN_USE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewVillageService(db)

		err := svc.DeleteVillage(9999)
		testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
	})
}
