package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new annual budget for a village. Only one budget may
// exist per village and year.
func (s *budgetService) CreateBudget(villageID uint, year int, totalAllocated decimal.Decimal) (*models.Budget, error) {
	var count int64
	if err := s.db.Model(&models.Village{}).Where("id = ?", villageID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrVillageNotFound
	}

	if err := s.db.Model(&models.Budget{}).
		Where("village_id = ? AND year = ?", villageID, year).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		VillageID:      villageID,
		Year:           year,
		TotalAllocated: totalAllocated,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetAllBudgets returns a paginated list of all budgets across villages.
func (s *budgetService) GetAllBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Preload("Village").Scopes(page.Scope()).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetsByVillage returns all budgets for one village.
func (s *budgetService) GetBudgetsByVillage(villageID uint) ([]models.Budget, error) {
	var count int64
	if err := s.db.Model(&models.Village{}).Where("id = ?", villageID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrVillageNotFound
	}

	var budgets []models.Budget
	if err := s.db.Where("village_id = ?", villageID).Order("year").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates a budget's year or total allocation. A year change
// must not collide with another budget of the same village.
func (s *budgetService) UpdateBudget(budgetID uint, year *int, totalAllocated *decimal.Decimal) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if year != nil && *year != budget.Year {
		var count int64
		if err := s.db.Model(&models.Budget{}).
			Where("village_id = ? AND year = ? AND id <> ?", budget.VillageID, *year, budgetID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}
		updates["year"] = *year
	}
	if totalAllocated != nil {
		updates["total_allocated"] = *totalAllocated
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget removes a budget along with its categories.
func (s *budgetService) DeleteBudget(budgetID uint) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Select("Categories").Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
