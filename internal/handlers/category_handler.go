package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/pagination"
	"gramkosh/internal/services"
)

// CategoryHandler handles budget-category requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	BudgetID        uint   `json:"budget_id" binding:"required"`
	CategoryName    string `json:"category_name" binding:"required,min=1,max=150"`
	AllocatedAmount string `json:"allocated_amount" binding:"required,money"`
}

// CreateCategory handles the creation of a new budget category. Admin only.
// @Summary     Create a category
// @Description Create a new category under a budget
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.BudgetCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocated, err := decimal.NewFromString(req.AllocatedAmount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid allocated_amount"))
		return
	}

	category, err := h.categoryService.CreateCategory(req.BudgetID, req.CategoryName, allocated)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing all budget categories.
// @Summary     List categories
// @Description Get a paginated list of all budget categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BudgetCategory] "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.categoryService.GetAllCategories(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoriesByBudget handles listing one budget's categories.
// @Summary     List categories by budget
// @Description Get all categories for a specific budget
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} []models.BudgetCategory "Categories"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /categories/budget/{id} [get]
func (h *CategoryHandler) GetCategoriesByBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategoriesByBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategory handles retrieving a specific category.
// @Summary     Get category by ID
// @Description Get a specific budget category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} models.BudgetCategory "Category details"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// GetRemainingBudget handles retrieving what is left of a category's allocation.
// @Summary     Get remaining budget
// @Description Get a category's allocation, spend, and remaining balance
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} services.CategoryRemaining "Remaining budget"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id}/remaining [get]
func (h *CategoryHandler) GetRemainingBudget(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	remaining, err := h.categoryService.GetRemainingBudget(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, remaining)
}
