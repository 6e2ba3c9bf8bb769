package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gramkosh/internal/handlers"
	"gramkosh/internal/logger"
	"gramkosh/internal/middleware"
	"gramkosh/internal/models"
	"gramkosh/internal/services"
	"gramkosh/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Village{},
		&models.User{},
		&models.Budget{},
		&models.BudgetCategory{},
		&models.Expense{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	villageService := services.NewVillageService(db)
	budgetService := services.NewBudgetService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	villageHandler := handlers.NewVillageHandler(villageService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/villages", villageHandler.ListVillages)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/villages/me", villageHandler.GetMyVillage)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/village/:id", budgetHandler.GetBudgetsByVillage)
	budgets.GET("/:id", budgetHandler.GetBudget)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/budget/:id", categoryHandler.GetCategoriesByBudget)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.GET("/:id/remaining", categoryHandler.GetRemainingBudget)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/category/:id", expenseHandler.GetExpensesByCategory)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/series/:name", dashboardHandler.GetSeries)
	dashboard.GET("/charts/:name", dashboardHandler.GetChart)

	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/villages", villageHandler.CreateVillage)
	admin.DELETE("/villages/:id", villageHandler.DeleteVillage)
	admin.POST("/budgets", budgetHandler.CreateBudget)
	admin.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	admin.DELETE("/budgets/:id", budgetHandler.DeleteBudget)
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.POST("/expenses", expenseHandler.CreateExpense)
	admin.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	admin.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerAdmin registers an admin account and returns the access token.
func (app *testApp) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Admin","email":%q,"password":"password123","role":"admin"}`, email)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}

// registerVillager registers a villager in the given village and returns the access token.
func (app *testApp) registerVillager(t *testing.T, email string, villageID uint) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Villager","email":%q,"password":"password123","village_id":%d}`, email, villageID)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("villager register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}

// createVillage creates a village through the API and returns its id.
func (app *testApp) createVillage(t *testing.T, adminToken, name string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"district":"Test District","state":"Test State"}`, name)
	rec := app.request("POST", "/api/v1/villages", body, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create village failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	village := result["village"].(map[string]interface{})
	return uint(village["id"].(float64))
}

// createBudget creates a budget through the API and returns its id.
func (app *testApp) createBudget(t *testing.T, adminToken string, villageID uint, year int, amount string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"village_id":%d,"year":%d,"total_allocated":%q}`, villageID, year, amount)
	rec := app.request("POST", "/api/v1/budgets", body, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budget := result["budget"].(map[string]interface{})
	return uint(budget["id"].(float64))
}

// createCategory creates a budget category through the API and returns its id.
func (app *testApp) createCategory(t *testing.T, adminToken string, budgetID uint, name, amount string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"budget_id":%d,"category_name":%q,"allocated_amount":%q}`, budgetID, name, amount)
	rec := app.request("POST", "/api/v1/categories", body, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return uint(category["id"].(float64))
}

// createExpense records an expense through the API and returns its id.
func (app *testApp) createExpense(t *testing.T, adminToken string, categoryID uint, amount, date string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%d,"amount":%q,"expense_date":%q,"vendor_name":"Test Vendor","description":"Test spend"}`, categoryID, amount, date)
	rec := app.request("POST", "/api/v1/expenses", body, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expense := result["expense"].(map[string]interface{})
	return uint(expense["id"].(float64))
}
