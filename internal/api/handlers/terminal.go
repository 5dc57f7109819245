package handlers

import (
	"net/http"

	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TerminalHandler struct {
	terminalService *services.TerminalService
	validator       *validator.Validate
}

func NewTerminalHandler(terminalService *services.TerminalService) *TerminalHandler {
	return &TerminalHandler{
		terminalService: terminalService,
		validator:       validator.New(),
	}
}

// GetTerminals retrieves all terminals
func (h *TerminalHandler) GetTerminals(c *gin.Context) {
	terminals, err := h.terminalService.GetAllTerminals()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terminals retrieved successfully", terminals)
}

// GetTerminal retrieves a specific terminal by ID
func (h *TerminalHandler) GetTerminal(c *gin.Context) {
	terminalID := c.Param("id")
	if terminalID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Terminal ID is required", nil)
		return
	}

	terminal, err := h.terminalService.GetTerminalByID(terminalID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terminal retrieved successfully", terminal)
}

// CreateTerminal creates a new terminal
func (h *TerminalHandler) CreateTerminal(c *gin.Context) {
	var req services.CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	terminal, err := h.terminalService.CreateTerminal(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Terminal created successfully", terminal)
}

// UpdateTerminal applies a partial update to a terminal
func (h *TerminalHandler) UpdateTerminal(c *gin.Context) {
	terminalID := c.Param("id")
	if terminalID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Terminal ID is required", nil)
		return
	}

	var req services.UpdateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	terminal, err := h.terminalService.UpdateTerminalByID(terminalID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terminal updated successfully", terminal)
}
