package handlers

import (
	"net/http"

	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	validator         *validator.Validate
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
	}
}

func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	if busID := c.Query("busId"); busID != "" {
		assignments, err := h.assignmentService.GetAssignmentsByBus(busID)
		if err != nil {
			utils.ServiceErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved successfully", assignments)
		return
	}

	assignments, err := h.assignmentService.GetAllAssignments()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved successfully", assignments)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Assignment ID is required", nil)
		return
	}

	assignment, err := h.assignmentService.GetAssignmentByID(assignmentID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment retrieved successfully", assignment)
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Assignment created successfully", assignment)
}

// UpdateAssignmentStatus moves an assignment through its lifecycle
func (h *AssignmentHandler) UpdateAssignmentStatus(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Assignment ID is required", nil)
		return
	}

	var req services.UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	assignment, err := h.assignmentService.UpdateAssignmentStatus(assignmentID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment status updated successfully", assignment)
}
