package handlers

import (
	"net/http"

	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BusHandler struct {
	busService *services.BusService
	validator  *validator.Validate
}

func NewBusHandler(busService *services.BusService) *BusHandler {
	return &BusHandler{
		busService: busService,
		validator:  validator.New(),
	}
}

// GetBuses retrieves all buses
func (h *BusHandler) GetBuses(c *gin.Context) {
	buses, err := h.busService.GetAllBuses()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Buses retrieved successfully", buses)
}

// GetBus retrieves a specific bus by ID
func (h *BusHandler) GetBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	bus, err := h.busService.GetBusByID(busID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus retrieved successfully", bus)
}

// CreateBus creates a new bus
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req services.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bus, err := h.busService.CreateBus(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bus created successfully", bus)
}

// UpdateBus applies a partial update to a bus
func (h *BusHandler) UpdateBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	var req services.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bus, err := h.busService.UpdateBusByID(busID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus updated successfully", bus)
}

// DeleteBus soft-deletes a bus
func (h *BusHandler) DeleteBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	if err := h.busService.DeleteBusByID(busID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus deleted successfully", nil)
}
