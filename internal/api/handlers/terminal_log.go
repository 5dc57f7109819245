package handlers

import (
	"net/http"

	"pasahero-backend/internal/models"
	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TerminalLogHandler struct {
	logService *services.TerminalLogService
	validator  *validator.Validate
}

func NewTerminalLogHandler(logService *services.TerminalLogService) *TerminalLogHandler {
	return &TerminalLogHandler{
		logService: logService,
		validator:  validator.New(),
	}
}

func (h *TerminalLogHandler) GetLogs(c *gin.Context) {
	if terminalID := c.Query("terminalId"); terminalID != "" {
		logs, err := h.logService.GetLogsByTerminal(terminalID)
		if err != nil {
			utils.ServiceErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Terminal logs retrieved successfully", logs)
		return
	}

	if status := c.Query("status"); status != "" {
		logs, err := h.logService.GetLogsByStatus(status)
		if err != nil {
			utils.ServiceErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Terminal logs retrieved successfully", logs)
		return
	}

	logs, err := h.logService.GetAllLogs()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terminal logs retrieved successfully", logs)
}

func (h *TerminalLogHandler) GetLog(c *gin.Context) {
	logID := c.Param("id")
	if logID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Log ID is required", nil)
		return
	}

	logEntry, err := h.logService.GetLogByID(logID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terminal log retrieved successfully", logEntry)
}

func (h *TerminalLogHandler) CreateLog(c *gin.Context) {
	var req services.CreateTerminalLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	logEntry, err := h.logService.CreateLog(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Terminal log created successfully", logEntry)
}

type resolveLogBody struct {
	ConfirmedBy string `json:"confirmedBy" validate:"required"`
	Remarks     string `json:"remarks,omitempty"`
}

// ConfirmLog resolves a pending log as confirmed
func (h *TerminalLogHandler) ConfirmLog(c *gin.Context) {
	h.resolve(c, models.TerminalLogStatusConfirmed, "Terminal log confirmed successfully")
}

// RejectLog resolves a pending log as rejected
func (h *TerminalLogHandler) RejectLog(c *gin.Context) {
	h.resolve(c, models.TerminalLogStatusRejected, "Terminal log rejected successfully")
}

func (h *TerminalLogHandler) resolve(c *gin.Context, status, successMessage string) {
	logID := c.Param("id")
	if logID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Log ID is required", nil)
		return
	}

	var body resolveLogBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&body); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	logEntry, err := h.logService.ResolveLog(logID, &services.ResolveTerminalLogRequest{
		Status:      status,
		ConfirmedBy: body.ConfirmedBy,
		Remarks:     body.Remarks,
	})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, successMessage, logEntry)
}
