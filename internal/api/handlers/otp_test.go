package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pasahero-backend/internal/config"
	"pasahero-backend/pkg/email"
	"pasahero-backend/pkg/ratelimit"
	pkgredis "pasahero-backend/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOTPRouter(t *testing.T, limiter *ratelimit.Limiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewOTPHandler(email.NewService(config.EmailConfig{}), limiter)
	router := gin.New()
	router.POST("/api/otp/send", handler.SendOTP)
	router.GET("/api/otp/status", handler.Status)
	return router
}

func postOTP(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/otp/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendOTPValidationEnvelope(t *testing.T) {
	router := newOTPRouter(t, nil)

	t.Run("missing input", func(t *testing.T) {
		w := postOTP(router, `{"email":"","otpCode":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "validation", resp["error"])
		assert.Contains(t, resp["message"], "required")
	})

	t.Run("bad otp format", func(t *testing.T) {
		w := postOTP(router, `{"email":"user@test.com","otpCode":"123"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["message"], "4-8 digits")
	})

	t.Run("unconfigured transport reports configuration error", func(t *testing.T) {
		w := postOTP(router, `{"email":"user@test.com","otpCode":"482193"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "configuration", resp["error"])
		assert.NotEmpty(t, resp["troubleshooting"])
	})
}

func TestSendOTPRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := ratelimit.NewLimiter(pkgredis.NewClientFromAddr(mr.Addr()), "otp", 2, time.Minute)
	router := newOTPRouter(t, limiter)

	body := `{"email":"user@test.com","otpCode":"482193"}`
	postOTP(router, body)
	postOTP(router, body)
	w := postOTP(router, body)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limited", resp["error"])
}

func TestOTPStatusReportsUnconfigured(t *testing.T) {
	router := newOTPRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/otp/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Configured bool `json:"configured"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Configured)
}
