package services

import (
	"github.com/shopspring/decimal"

	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
	"gramkosh/internal/report"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string, role models.Role, villageID *uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// VillageServicer defines the contract for village-related business logic.
type VillageServicer interface {
	CreateVillage(name, district, state string) (*models.Village, error)
	GetVillages(page pagination.PageRequest) (*pagination.PageResponse[models.Village], error)
	GetVillageByID(villageID uint) (*models.Village, error)
	DeleteVillage(villageID uint) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(villageID uint, year int, totalAllocated decimal.Decimal) (*models.Budget, error)
	GetAllBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetsByVillage(villageID uint) ([]models.Budget, error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
	UpdateBudget(budgetID uint, year *int, totalAllocated *decimal.Decimal) (*models.Budget, error)
	DeleteBudget(budgetID uint) error
}

// CategoryRemaining reports how much of a category's allocation is left after
// its recorded expenses.
type CategoryRemaining struct {
	CategoryID      uint            `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// CategoryServicer defines the contract for budget-category business logic.
type CategoryServicer interface {
	CreateCategory(budgetID uint, categoryName string, allocatedAmount decimal.Decimal) (*models.BudgetCategory, error)
	GetAllCategories(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetCategory], error)
	GetCategoriesByBudget(budgetID uint) ([]models.BudgetCategory, error)
	GetCategoryByID(categoryID uint) (*models.BudgetCategory, error)
	GetRemainingBudget(categoryID uint) (*CategoryRemaining, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(categoryID uint, description string, amount decimal.Decimal, vendorName string, expenseDate models.Date) (*models.Expense, error)
	GetAllExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpensesByCategory(categoryID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(expenseID uint) (*models.Expense, error)
	UpdateExpense(expenseID uint, description *string, amount *decimal.Decimal, vendorName *string, expenseDate *models.Date) (*models.Expense, error)
	DeleteExpense(expenseID uint) error
}

// DashboardSummary holds the flat top-level figures for the dashboard.
type DashboardSummary struct {
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	Villages       int64           `json:"villages"`
	Budgets        int64           `json:"budgets"`
	Categories     int64           `json:"categories"`
	Expenses       int64           `json:"expenses"`
}

// DashboardServicer derives aggregate views over the loaded collections.
type DashboardServicer interface {
	GetSummary() (*DashboardSummary, error)
	GetSeries(name string) (report.Series, error)
}
