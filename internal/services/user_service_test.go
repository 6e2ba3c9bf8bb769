package services

import (
	"testing"

	"gramkosh/internal/models"
	"gramkosh/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("villager_with_village", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)
		user, err := svc.CreateUser("Alice", "alice@example.com", "password123", models.RoleVillager, &village.ID)
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Role != models.RoleVillager {
			t.Errorf("expected villager role, got %s", user.Role)
		}
		if user.VillageID == nil || *user.VillageID != village.ID {
			t.Error("expected user to be assigned to the village")
		}
		if !user.IsActive {
			t.Error("expected user to be active")
		}
	})

	t.Run("villager_without_village", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("Bob", "bob@example.com", "password123", models.RoleVillager, nil)
		testutil.AssertAppError(t, err, "NO_VILLAGE")
	})

	t.Run("villager_with_unknown_village", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		missing := uint(9999)
		_, err := svc.CreateUser("Bob", "bob@example.com", "password123", models.RoleVillager, &missing)
		testutil.AssertAppError(t, err, "VILLAGE_NOT_FOUND")
	})

	t.Run("admin_ignores_village", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)
		user, err := svc.CreateUser("Root", "root@example.com", "password123", models.RoleAdmin, &village.ID)
		testutil.AssertNoError(t, err)

		if user.VillageID != nil {
			t.Error("admin should not carry a village reference")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)
		_, err := svc.CreateUser("A", "dup@example.com", "password123", models.RoleVillager, &village.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("B", "dup@example.com", "password456", models.RoleVillager, &village.ID)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("A", "", "password123", models.RoleAdmin, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("A", "Alice@EXAMPLE.COM", "password123", models.RoleAdmin, nil)
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("db_failure_reported_as_internal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)

		// A broken connection must not masquerade as a lookup miss.
		testutil.TeardownTestDB(t, db)

		_, err := svc.CreateUser("Eve", "eve@example.com", "password123", models.RoleVillager, &village.ID)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		_, err = svc.CreateUser("Eve", "eve@example.com", "password123", models.RoleAdmin, nil)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)
		created := testutil.CreateTestUserWithEmail(t, db, "found@example.com", village.ID)

		user, err := svc.GetUserByEmail("found@example.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user ID %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nonexistent@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("inactive_user_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		village := testutil.CreateTestVillage(t, db)
		user := testutil.CreateTestUserWithEmail(t, db, "inactive@example.com", village.ID)
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		_, err := svc.GetUserByEmail("inactive@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("A", "verify@example.com", "password123", models.RoleAdmin, nil)
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "password123") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong-password") {
		t.Error("expected wrong password to fail")
	}
}
