package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	adminToken := app.registerAdmin(t, "admin@test.com")
	villageID := app.createVillage(t, adminToken, "Rampur")

	// Register a villager tied to the village.
	villagerToken := app.registerVillager(t, "villager@test.com", villageID)
	if villagerToken == "" {
		t.Fatal("expected non-empty token from registration")
	}

	// Login with the same credentials.
	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"villager@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	loginToken := result["access_token"].(string)
	if result["token_type"] != "bearer" {
		t.Errorf("expected token_type bearer, got %v", result["token_type"])
	}

	// Profile reflects the registered account.
	rec = app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "villager@test.com" {
		t.Errorf("expected email villager@test.com, got %v", user["email"])
	}
	if user["role"] != "villager" {
		t.Errorf("expected villager role, got %v", user["role"])
	}
	if uint(user["village_id"].(float64)) != villageID {
		t.Errorf("expected village_id %d, got %v", villageID, user["village_id"])
	}
}

func TestAuthFlow_GuardedRoutesRequireLogin(t *testing.T) {
	app := setupApp(t)

	adminToken := app.registerAdmin(t, "admin@test.com")
	villageID := app.createVillage(t, adminToken, "Rampur")
	app.createBudget(t, adminToken, villageID, 2024, "500000.00")

	// Without a token, dashboard and budget routes reject the request.
	for _, path := range []string{"/api/v1/dashboard/summary", "/api/v1/budgets", "/api/v1/expenses"} {
		rec := app.request("GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without token, got %d", path, rec.Code)
		}
	}

	// The village listing stays public for the registration form.
	rec := app.request("GET", "/api/v1/villages", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for public village list, got %d", rec.Code)
	}

	// After logging in, the same dashboard request succeeds.
	villagerToken := app.registerVillager(t, "villager@test.com", villageID)
	rec = app.request("GET", "/api/v1/dashboard/summary", "", villagerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after login, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_AdminOnlyMutations(t *testing.T) {
	app := setupApp(t)

	adminToken := app.registerAdmin(t, "admin@test.com")
	villageID := app.createVillage(t, adminToken, "Rampur")
	villagerToken := app.registerVillager(t, "villager@test.com", villageID)

	// Villagers cannot create budgets.
	rec := app.request("POST", "/api/v1/budgets",
		`{"village_id":1,"year":2024,"total_allocated":"1000.00"}`, villagerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for villager mutation, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", errObj["code"])
	}

	// Admins can.
	rec = app.request("POST", "/api/v1/budgets",
		`{"village_id":1,"year":2024,"total_allocated":"1000.00"}`, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin mutation, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.registerAdmin(t, "dup@test.com")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"name":"Again","email":"dup@test.com","password":"password123","role":"admin"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", errObj["code"])
	}
}

func TestAuthFlow_RegisterVillagerWithoutVillage(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/register",
		`{"name":"Lost","email":"lost@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for villager without village, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "NO_VILLAGE" {
		t.Errorf("expected NO_VILLAGE, got %v", errObj["code"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerAdmin(t, "admin@test.com")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"admin@test.com","password":"wrong-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
	}
}
