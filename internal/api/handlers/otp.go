package handlers

import (
	"errors"
	"net/http"
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/pkg/email"
	"pasahero-backend/pkg/ratelimit"
	"pasahero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OTPHandler struct {
	emailService *email.Service
	limiter      *ratelimit.Limiter
}

// NewOTPHandler builds the OTP delivery surface. The limiter is optional;
// without one every send is allowed through.
func NewOTPHandler(emailService *email.Service, limiter *ratelimit.Limiter) *OTPHandler {
	return &OTPHandler{
		emailService: emailService,
		limiter:      limiter,
	}
}

// sendOTPRequest is deliberately untagged for validation: the email service
// owns the full validation pipeline and its ordering.
type sendOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
}

type otpErrorResponse struct {
	Success         bool     `json:"success"`
	Error           string   `json:"error"`
	Message         string   `json:"message"`
	Detail          string   `json:"detail,omitempty"`
	Troubleshooting []string `json:"troubleshooting,omitempty"`
	RetryAfter      int      `json:"retryAfter,omitempty"`
}

// SendOTP delivers a verification code to the given address
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if h.limiter != nil && req.Email != "" {
		allowed, retryAfter, err := h.limiter.Allow(req.Email)
		if err == nil && !allowed {
			c.JSON(http.StatusTooManyRequests, otpErrorResponse{
				Error:      "rate_limited",
				Message:    "Too many OTP requests for this address. Please try again later.",
				RetryAfter: int(retryAfter / time.Second),
			})
			return
		}
	}

	message, err := h.emailService.SendOTP(req.Email, req.OTPCode)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// Status reports whether OTP delivery is configured, without probing the
// network
func (h *OTPHandler) Status(c *gin.Context) {
	host, port := h.emailService.TransportAddr()

	data := gin.H{
		"configured": h.emailService.Configured(),
		"smtpHost":   host,
		"smtpPort":   port,
	}
	if err := h.emailService.ValidateConfig(); err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			data["configurationError"] = e.Detail
		} else {
			data["configurationError"] = err.Error()
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP service status", data)
}

// TestConfig validates configuration and probes SMTP connectivity without
// sending a message
func (h *OTPHandler) TestConfig(c *gin.Context) {
	if err := h.emailService.ValidateConfig(); err != nil {
		h.sendError(c, err)
		return
	}

	if err := h.emailService.VerifyConnection(); err != nil {
		h.sendError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email configuration verified successfully", nil)
}

func (h *OTPHandler) sendError(c *gin.Context, err error) {
	resp := otpErrorResponse{
		Error:   string(errs.KindOf(err)),
		Message: err.Error(),
	}

	var e *errs.Error
	if errors.As(err, &e) {
		resp.Detail = e.Detail
		resp.Troubleshooting = e.Troubleshooting
	}

	c.JSON(errs.HTTPStatus(err), resp)
}
