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

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	CategoryID  uint        `json:"category_id" binding:"required"`
	Description string      `json:"description" binding:"max=1000"`
	Amount      string      `json:"amount" binding:"required,money"`
	VendorName  string      `json:"vendor_name" binding:"max=150"`
	ExpenseDate models.Date `json:"expense_date" binding:"required"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	Description *string      `json:"description" binding:"omitempty,max=1000"`
	Amount      *string      `json:"amount" binding:"omitempty,money"`
	VendorName  *string      `json:"vendor_name" binding:"omitempty,max=150"`
	ExpenseDate *models.Date `json:"expense_date"`
}

// CreateExpense handles recording a new expense. Admin only.
// @Summary     Record an expense
// @Description Record a spend against a budget category
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount"))
		return
	}

	expense, err := h.expenseService.CreateExpense(req.CategoryID, req.Description, amount, req.VendorName, req.ExpenseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing all expenses.
// @Summary     List expenses
// @Description Get a paginated list of all expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetAllExpenses(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpensesByCategory handles listing one category's expenses.
// @Summary     List expenses by category
// @Description Get a paginated list of a category's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Category ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expenses"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /expenses/category/{id} [get]
func (h *ExpenseHandler) GetExpensesByCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetExpensesByCategory(categoryID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateExpense handles updating an existing expense. Admin only.
// @Summary     Update expense
// @Description Update an expense's fields
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		parsed, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount"))
			return
		}
		amount = &parsed
	}

	expense, err := h.expenseService.UpdateExpense(expenseID, req.Description, amount, req.VendorName, req.ExpenseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense. Admin only.
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
