package handlers

import (
	"net/http"

	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RouteHandler struct {
	routeService *services.RouteService
	validator    *validator.Validate
}

func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
		validator:    validator.New(),
	}
}

// GetRoutes retrieves all routes with terminal references resolved
func (h *RouteHandler) GetRoutes(c *gin.Context) {
	routes, err := h.routeService.GetAllRoutes()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Routes retrieved successfully", routes)
}

// GetRoute retrieves a specific route by ID
func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Route ID is required", nil)
		return
	}

	route, err := h.routeService.GetRouteByID(routeID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Route retrieved successfully", route)
}

// CreateRoute creates a new route
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req services.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	route, err := h.routeService.CreateRoute(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Route created successfully", route)
}
