package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a spend against an existing category.
func (s *expenseService) CreateExpense(categoryID uint, description string, amount decimal.Decimal, vendorName string, expenseDate models.Date) (*models.Expense, error) {
	var count int64
	if err := s.db.Model(&models.BudgetCategory{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	expense := &models.Expense{
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		VendorName:  vendorName,
		ExpenseDate: expenseDate,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetAllExpenses returns a paginated list of all expenses.
func (s *expenseService) GetAllExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Expense{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Scopes(page.Scope()).Order("id").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpensesByCategory returns a paginated list of one category's expenses.
func (s *expenseService) GetExpensesByCategory(categoryID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	var count int64
	if err := s.db.Model(&models.BudgetCategory{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	var totalItems int64
	if err := s.db.Model(&models.Expense{}).Where("category_id = ?", categoryID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("category_id = ?", categoryID).
		Scopes(page.Scope()).Order("expense_date").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense by ID.
func (s *expenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates an expense's fields. Nil fields are left unchanged.
func (s *expenseService) UpdateExpense(expenseID uint, description *string, amount *decimal.Decimal, vendorName *string, expenseDate *models.Date) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != nil {
		updates["description"] = *description
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if vendorName != nil {
		updates["vendor_name"] = *vendorName
	}
	if expenseDate != nil {
		updates["expense_date"] = *expenseDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return expense, nil
}

// DeleteExpense removes an expense.
func (s *expenseService) DeleteExpense(expenseID uint) error {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
