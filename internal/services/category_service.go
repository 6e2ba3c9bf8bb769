package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
)

// categoryService handles budget-category business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category under an existing budget. Whether the
// category allocations stay within the parent budget's total is not checked
// here; the dashboard surfaces the overshoot instead.
func (s *categoryService) CreateCategory(budgetID uint, categoryName string, allocatedAmount decimal.Decimal) (*models.BudgetCategory, error) {
	if categoryName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrBudgetNotFound
	}

	category := &models.BudgetCategory{
		BudgetID:        budgetID,
		CategoryName:    categoryName,
		AllocatedAmount: allocatedAmount,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetAllCategories returns a paginated list of all budget categories.
func (s *categoryService) GetAllCategories(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetCategory], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.BudgetCategory{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.BudgetCategory
	if err := s.db.Scopes(page.Scope()).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoriesByBudget returns all categories for one budget.
func (s *categoryService) GetCategoriesByBudget(budgetID uint) ([]models.BudgetCategory, error) {
	var count int64
	if err := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrBudgetNotFound
	}

	var categories []models.BudgetCategory
	if err := s.db.Where("budget_id = ?", budgetID).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID returns a category by ID.
func (s *categoryService) GetCategoryByID(categoryID uint) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetRemainingBudget reports the category's allocation, total recorded
// spend, and what is left.
func (s *categoryService) GetRemainingBudget(categoryID uint) (*CategoryRemaining, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	var spent decimal.NullDecimal
	err = s.db.Model(&models.Expense{}).
		Select("SUM(amount)").
		Where("category_id = ?", categoryID).
		Scan(&spent).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalSpent := decimal.Zero
	if spent.Valid {
		totalSpent = spent.Decimal
	}

	return &CategoryRemaining{
		CategoryID:      category.ID,
		CategoryName:    category.CategoryName,
		AllocatedAmount: category.AllocatedAmount,
		TotalSpent:      totalSpent,
		Remaining:       category.AllocatedAmount.Sub(totalSpent),
	}, nil
}
