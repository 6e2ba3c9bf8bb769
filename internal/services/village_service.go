package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
)

// villageService handles village-related business logic.
type villageService struct {
	db *gorm.DB
}

// NewVillageService creates a new VillageServicer.
func NewVillageService(db *gorm.DB) VillageServicer {
	return &villageService{db: db}
}

// CreateVillage registers a new village.
func (s *villageService) CreateVillage(name, district, state string) (*models.Village, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "village name is required")
	}

	village := &models.Village{
		Name:     name,
		District: district,
		State:    state,
	}

	if err := s.db.Create(village).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return village, nil
}

// GetVillages returns a paginated list of all villages. This listing is
// public so the registration form can offer a village picker.
func (s *villageService) GetVillages(page pagination.PageRequest) (*pagination.PageResponse[models.Village], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Village{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var villages []models.Village
	if err := s.db.Scopes(page.Scope()).Order("id").Find(&villages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(villages, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetVillageByID returns a village by ID.
func (s *villageService) GetVillageByID(villageID uint) (*models.Village, error) {
	var village models.Village
	if err := s.db.First(&village, villageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVillageNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &village, nil
}

// DeleteVillage removes a village. Villages with registered users are
// protected; budgets and their categories cascade with the village.
func (s *villageService) DeleteVillage(villageID uint) error {
	village, err := s.GetVillageByID(villageID)
	if err != nil {
		return err
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Where("village_id = ?", villageID).Count(&userCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if userCount > 0 {
		return apperrors.ErrVillageInUse
	}

	if err := s.db.Select("Budgets").Delete(village).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
