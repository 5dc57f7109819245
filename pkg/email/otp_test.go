package email

import (
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"pasahero-backend/internal/config"
	"pasahero-backend/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.EmailConfig {
	return config.EmailConfig{
		User:        "sender@pasahero.app",
		AppPassword: "abcdefghijklmnop",
	}
}

func TestSendOTP_InputValidation(t *testing.T) {
	svc := NewService(validConfig())

	tests := []struct {
		name    string
		email   string
		otp     string
		message string
	}{
		{"missing email", "", "1234", "Email and OTP code are required"},
		{"missing otp", "user@test.com", "", "Email and OTP code are required"},
		{"whitespace email", "   ", "1234", "Email address cannot be empty"},
		{"invalid email format", "not-an-email", "1234", "Invalid email format"},
		{"email with spaces", "user name@test.com", "1234", "Invalid email format"},
		{"email too long", strings.Repeat("a", 320) + "@test.com", "1234", "too long"},
		{"otp too short", "user@test.com", "123", "OTP must be 4-8 digits"},
		{"otp too long", "user@test.com", "123456789", "OTP must be 4-8 digits"},
		{"otp not numeric", "user@test.com", "12ab56", "OTP must be 4-8 digits"},
		{"otp whitespace only", "user@test.com", "   ", "OTP code cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendOTP(tt.email, tt.otp)
			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSendOTP_MinimalValidInputsReachConfigStage(t *testing.T) {
	// Unconfigured service: inputs that pass format validation must fail at
	// the configuration stage, before any network activity.
	svc := NewService(config.EmailConfig{})

	_, err := svc.SendOTP("a@b.co", "12345")
	require.Error(t, err)
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
}

func TestSendOTP_ConfigCheckedBeforeNetwork(t *testing.T) {
	// Unroutable relay host: if validation attempted a connection this would
	// block for the dial timeout. A missing credential must fail first.
	svc := NewService(config.EmailConfig{
		User:     "sender@pasahero.app",
		SMTPHost: "203.0.113.1",
		SMTPPort: 587,
	})

	start := time.Now()
	_, err := svc.SendOTP("user@test.com", "482193")
	require.Error(t, err)
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EmailConfig
		problem string
	}{
		{"missing user", config.EmailConfig{AppPassword: "abcdefgh"}, "EMAIL_USER is not set"},
		{"invalid user", config.EmailConfig{User: "nope", AppPassword: "abcdefgh"}, "invalid format"},
		{"missing password", config.EmailConfig{User: "a@b.co"}, "EMAIL_APP_PASSWORD is not set"},
		{"short password", config.EmailConfig{User: "a@b.co", AppPassword: "short"}, "too short"},
		{"password with spaces", config.EmailConfig{User: "a@b.co", AppPassword: "abcd efgh"}, "contains spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewService(tt.cfg).ValidateConfig()
			require.Error(t, err)
			assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))

			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Contains(t, e.Detail, tt.problem)
			assert.NotEmpty(t, e.Troubleshooting)
		})
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, NewService(validConfig()).ValidateConfig())
	})
}

func TestTransportAddr(t *testing.T) {
	t.Run("default relay", func(t *testing.T) {
		host, port := NewService(validConfig()).TransportAddr()
		assert.Equal(t, "smtp.gmail.com", host)
		assert.Equal(t, 587, port)
	})

	t.Run("custom relay", func(t *testing.T) {
		cfg := validConfig()
		cfg.SMTPHost = "mail.example.org"
		cfg.SMTPPort = 2525
		host, port := NewService(cfg).TransportAddr()
		assert.Equal(t, "mail.example.org", host)
		assert.Equal(t, 2525, port)
	})
}

func TestBuildOTPMessage(t *testing.T) {
	svc := NewService(validConfig())

	message, err := svc.buildOTPMessage("user@test.com", "482193")
	require.NoError(t, err)

	body := string(message)
	assert.Contains(t, body, "Subject: Your PasaHero Verification Code")
	assert.Contains(t, body, "To: user@test.com")
	assert.Contains(t, body, "From: PasaHero <sender@pasahero.app>")
	// Code appears verbatim in both the plain and HTML parts.
	assert.Equal(t, 2, strings.Count(body, "482193"))
	assert.Contains(t, body, "expire in 5 minutes")
}

func TestBuildOTPMessage_CustomFrom(t *testing.T) {
	cfg := validConfig()
	cfg.From = "PasaHero Support <support@pasahero.app>"
	svc := NewService(cfg)

	message, err := svc.buildOTPMessage("user@test.com", "1234")
	require.NoError(t, err)
	assert.Contains(t, string(message), "From: PasaHero Support <support@pasahero.app>")
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestClassifyHandshakeError(t *testing.T) {
	t.Run("credential rejected", func(t *testing.T) {
		err := classifyHandshakeError(&textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"})
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
		assert.Contains(t, err.Detail, "Username and Password not accepted")
		assert.NotEmpty(t, err.Troubleshooting)
	})

	t.Run("timeout", func(t *testing.T) {
		err := classifyHandshakeError(timeoutError{})
		assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))
	})

	t.Run("generic", func(t *testing.T) {
		err := classifyHandshakeError(&textproto.Error{Code: 421, Msg: "service not available"})
		assert.Equal(t, errs.KindTransport, errs.KindOf(err))
	})
}

func TestClassifySendError(t *testing.T) {
	t.Run("recipient rejected", func(t *testing.T) {
		err := classifySendError(&textproto.Error{Code: 550, Msg: "mailbox unavailable"}, "user@test.com")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Contains(t, err.Error(), "rejected by server")
		assert.Contains(t, err.Error(), "user@test.com")
	})

	t.Run("recipient rejected 553", func(t *testing.T) {
		err := classifySendError(&textproto.Error{Code: 553, Msg: "mailbox name not allowed"}, "user@test.com")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Contains(t, err.Error(), "rejected by server")
	})

	t.Run("malformed recipient", func(t *testing.T) {
		err := classifySendError(&textproto.Error{Code: 501, Msg: "bad address syntax"}, "user@test.com")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Contains(t, err.Error(), "Invalid email address format")
	})

	t.Run("auth during send", func(t *testing.T) {
		err := classifySendError(&textproto.Error{Code: 530, Msg: "authentication required"}, "user@test.com")
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("generic", func(t *testing.T) {
		err := classifySendError(&textproto.Error{Code: 451, Msg: "local error"}, "user@test.com")
		assert.Equal(t, errs.KindTransport, errs.KindOf(err))
		assert.Contains(t, err.Error(), "Failed to send email")
	})
}
