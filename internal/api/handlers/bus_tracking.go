package handlers

import (
	"net/http"

	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BusTrackingHandler struct {
	trackingService *services.BusTrackingService
	validator       *validator.Validate
}

func NewBusTrackingHandler(trackingService *services.BusTrackingService) *BusTrackingHandler {
	return &BusTrackingHandler{
		trackingService: trackingService,
		validator:       validator.New(),
	}
}

// ReportStatus records an occupancy/delay snapshot for a bus
func (h *BusTrackingHandler) ReportStatus(c *gin.Context) {
	var req services.ReportBusStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	report, err := h.trackingService.ReportStatus(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bus status reported successfully", report)
}

// GetLatestStatus returns the most recent status report for a bus
func (h *BusTrackingHandler) GetLatestStatus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	report, err := h.trackingService.GetLatestStatus(busID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus status retrieved successfully", report)
}

// ReportLocation records a GPS ping for a bus
func (h *BusTrackingHandler) ReportLocation(c *gin.Context) {
	var req services.ReportBusLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	location, err := h.trackingService.ReportLocation(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bus location reported successfully", location)
}

// GetLatestLocation returns the most recent GPS ping for a bus
func (h *BusTrackingHandler) GetLatestLocation(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	location, err := h.trackingService.GetLatestLocation(busID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus location retrieved successfully", location)
}
