package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/pagination"
	"gramkosh/internal/services"
)

// VillageHandler handles village-related requests.
type VillageHandler struct {
	villageService services.VillageServicer
}

// NewVillageHandler creates a new VillageHandler.
func NewVillageHandler(villageService services.VillageServicer) *VillageHandler {
	return &VillageHandler{villageService: villageService}
}

// CreateVillageRequest represents the request payload for creating a village.
type CreateVillageRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=150"`
	District string `json:"district" binding:"max=150"`
	State    string `json:"state" binding:"max=150"`
}

// ListVillages handles the public village listing used by the registration
// form's village picker.
// @Summary     List villages
// @Description Get a paginated list of all villages (public)
// @Tags        villages
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Village] "Paginated villages"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /villages [get]
func (h *VillageHandler) ListVillages(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.villageService.GetVillages(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyVillage returns the authenticated user's village.
// @Summary     Get my village
// @Description Get the authenticated user's village details
// @Tags        villages
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Village "Village details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Village not found"
// @Router      /villages/me [get]
func (h *VillageHandler) GetMyVillage(c *gin.Context) {
	villageID, ok := getVillageID(c)
	if !ok {
		respondWithError(c, apperrors.ErrNoVillage)
		return
	}

	village, err := h.villageService.GetVillageByID(villageID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"village": village})
}

// CreateVillage handles the creation of a new village. Admin only.
// @Summary     Create a village
// @Description Register a new village
// @Tags        villages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateVillageRequest true "Village details"
// @Success     201 {object} models.Village "Village created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /villages [post]
func (h *VillageHandler) CreateVillage(c *gin.Context) {
	var req CreateVillageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	village, err := h.villageService.CreateVillage(req.Name, req.District, req.State)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"village": village})
}

// DeleteVillage handles removing a village. Admin only.
// @Summary     Delete village
// @Description Delete a village and its budgets
// @Tags        villages
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Village ID"
// @Success     200 {object} MessageResponse "Village deleted"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Village not found"
// @Failure     409 {object} ErrorResponse "Village has registered users"
// @Router      /villages/{id} [delete]
func (h *VillageHandler) DeleteVillage(c *gin.Context) {
	villageID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.villageService.DeleteVillage(villageID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Village deleted successfully"})
}

// MessageResponse represents a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
