package main

import (
	"fmt"
	"gramkosh/internal/config"
	"gramkosh/internal/database"
	"gramkosh/internal/handlers"
	"gramkosh/internal/logger"
	"gramkosh/internal/middleware"
	"gramkosh/internal/services"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gramkosh/internal/docs" // Import swagger docs
)

// @title           Gramkosh API
// @version         1.0
// @description     Gramkosh is a village budget transparency platform: villages publish annual budgets, categorize allocations, and record every expense for villagers to inspect.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	villageService := services.NewVillageService(db)
	budgetService := services.NewBudgetService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	villageHandler := handlers.NewVillageHandler(villageService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Village listing is public so the registration form can offer a picker
	v1.GET("/villages", villageHandler.ListVillages)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Village routes
	protected.GET("/villages/me", villageHandler.GetMyVillage)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/village/:id", budgetHandler.GetBudgetsByVillage)
	budgets.GET("/:id", budgetHandler.GetBudget)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/budget/:id", categoryHandler.GetCategoriesByBudget)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.GET("/:id/remaining", categoryHandler.GetRemainingBudget)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/category/:id", expenseHandler.GetExpensesByCategory)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/series/:name", dashboardHandler.GetSeries)
	dashboard.GET("/charts/:name", dashboardHandler.GetChart)

	// Admin-only mutations
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

	log.Infof("Starting Gramkosh backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
