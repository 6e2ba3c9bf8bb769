package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/pagination"
	"gramkosh/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Amounts travel as decimal strings and are parsed only at this boundary.
type CreateBudgetRequest struct {
	VillageID      uint   `json:"village_id" binding:"required"`
	Year           int    `json:"year" binding:"required,budget_year"`
	TotalAllocated string `json:"total_allocated" binding:"required,money"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Year           *int    `json:"year" binding:"omitempty,budget_year"`
	TotalAllocated *string `json:"total_allocated" binding:"omitempty,money"`
}

// CreateBudget handles the creation of a new budget. Admin only.
// @Summary     Create a budget
// @Description Create a new annual budget for a village
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate year"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Village not found"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	total, err := decimal.NewFromString(req.TotalAllocated)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid total_allocated"))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.VillageID, req.Year, total)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets. Admins see every village's budgets;
// villagers see only their own village's.
// @Summary     List budgets
// @Description Get budgets, scoped to the caller's village unless admin
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	role, err := getRole(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if role == models.RoleAdmin {
		var page pagination.PageRequest
		if err := c.ShouldBindQuery(&page); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		result, err := h.budgetService.GetAllBudgets(page)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	villageID, ok := getVillageID(c)
	if !ok {
		respondWithError(c, apperrors.ErrNoVillage)
		return
	}

	budgets, err := h.budgetService.GetBudgetsByVillage(villageID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budgets})
}

// GetBudgetsByVillage handles listing one village's budgets.
// @Summary     List budgets by village
// @Description Get all budgets for a specific village
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Village ID"
// @Success     200 {object} []models.Budget "Budgets"
// @Failure     404 {object} ErrorResponse "Village not found"
// @Router      /budgets/village/{id} [get]
func (h *BudgetHandler) GetBudgetsByVillage(c *gin.Context) {
	villageID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetBudgetsByVillage(villageID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budgets})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget. Admin only.
// @Summary     Update budget
// @Description Update a budget's year or total allocation
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate year"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var total *decimal.Decimal
	if req.TotalAllocated != nil {
		parsed, err := decimal.NewFromString(*req.TotalAllocated)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid total_allocated"))
			return
		}
		total = &parsed
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, req.Year, total)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget. Admin only.
// @Summary     Delete budget
// @Description Delete a budget and its categories
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
