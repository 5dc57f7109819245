package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"regexp"
	"strings"
	"syscall"
	"time"

	"pasahero-backend/internal/config"
	"pasahero-backend/internal/errs"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = 587

	connectTimeout  = 10 * time.Second
	greetingTimeout = 5 * time.Second
	socketTimeout   = 10 * time.Second

	// RFC 5321 address length limit.
	maxEmailLength = 320

	otpSubject = "Your PasaHero Verification Code"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{4,8}$`)
)

// Service delivers OTP verification emails over SMTP. It performs no
// retries: every failure is terminal for the call and the caller re-invokes
// the whole pipeline if it wants another attempt.
type Service struct {
	cfg config.EmailConfig
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

type otpTemplateData struct {
	Code string
}

// SendOTP validates the email/code pair and the transport configuration,
// verifies SMTP connectivity, then sends the verification message. The
// returned string is a human-readable confirmation.
func (s *Service) SendOTP(email, otpCode string) (string, error) {
	if email == "" || otpCode == "" {
		return "", errs.New(errs.KindValidation, "Email and OTP code are required")
	}

	recipient := strings.ToLower(strings.TrimSpace(email))
	if recipient == "" {
		return "", errs.New(errs.KindValidation, "Email address cannot be empty")
	}
	if !emailPattern.MatchString(recipient) {
		return "", errs.New(errs.KindValidation, fmt.Sprintf("Invalid email format: %s. Please provide a valid email address.", email))
	}
	if len(recipient) > maxEmailLength {
		return "", errs.New(errs.KindValidation, "Email address is too long (maximum 320 characters)")
	}

	code := strings.TrimSpace(otpCode)
	if code == "" {
		return "", errs.New(errs.KindValidation, "OTP code cannot be empty")
	}
	if !otpPattern.MatchString(code) {
		return "", errs.New(errs.KindValidation, fmt.Sprintf("Invalid OTP format: %s. OTP must be 4-8 digits.", otpCode))
	}

	if err := s.ValidateConfig(); err != nil {
		log.Printf("Email configuration validation failed: %v", err)
		return "", err
	}

	log.Printf("Verifying email connection for %s...", s.cfg.User)
	client, err := s.handshake()
	if err != nil {
		log.Printf("Email transporter verification failed: %v", err)
		return "", err
	}
	defer client.Close()
	log.Println("Email transporter verified successfully")

	message, err := s.buildOTPMessage(recipient, code)
	if err != nil {
		return "", errs.Wrap(errs.KindInternal, "Failed to render OTP email", err)
	}

	log.Printf("Attempting to send OTP email to %s...", recipient)
	if err := s.send(client, recipient, message); err != nil {
		log.Printf("Failed to send OTP email: %v", err)
		return "", err
	}

	log.Printf("OTP email sent successfully to %s", recipient)
	return "OTP email sent successfully", nil
}

// ValidateConfig checks the sender identity and credential without touching
// the network.
func (s *Service) ValidateConfig() error {
	var problems []string

	if s.cfg.User == "" {
		problems = append(problems, "EMAIL_USER is not set")
	} else if !emailPattern.MatchString(s.cfg.User) {
		problems = append(problems, fmt.Sprintf("EMAIL_USER has invalid format: %s", s.cfg.User))
	}

	if s.cfg.AppPassword == "" {
		problems = append(problems, "EMAIL_APP_PASSWORD is not set")
	} else {
		password := strings.TrimSpace(s.cfg.AppPassword)
		if len(password) < 8 {
			problems = append(problems, "EMAIL_APP_PASSWORD is too short (minimum 8 characters)")
		}
		if strings.ContainsAny(password, " \t") {
			problems = append(problems, "EMAIL_APP_PASSWORD contains spaces (remove all spaces)")
		}
	}

	if len(problems) == 0 {
		return nil
	}

	e := errs.New(errs.KindConfiguration, "Email service not configured correctly")
	e.Detail = strings.Join(problems, "; ")
	e.Troubleshooting = problems
	return e
}

// Configured reports whether both credentials are present, without judging
// their validity. Used by the status endpoint.
func (s *Service) Configured() bool {
	return s.cfg.User != "" && s.cfg.AppPassword != ""
}

// TransportAddr returns the relay host and port in use.
func (s *Service) TransportAddr() (string, int) {
	if s.cfg.SMTPHost != "" {
		return s.cfg.SMTPHost, s.cfg.SMTPPort
	}
	return defaultSMTPHost, defaultSMTPPort
}

// VerifyConnection performs the pre-send handshake and disconnects. Used by
// the test-config endpoint; it sends nothing.
func (s *Service) VerifyConnection() error {
	if err := s.ValidateConfig(); err != nil {
		return err
	}

	client, err := s.handshake()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Quit()
}

// handshake dials the relay, completes the greeting, negotiates TLS and
// authenticates. The returned client is ready for a MAIL transaction.
func (s *Service) handshake() (*smtp.Client, error) {
	host, port := s.TransportAddr()
	addr := fmt.Sprintf("%s:%d", host, port)

	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, classifyHandshakeError(err)
	}

	// Implicit TLS relays (typically port 465) wrap the socket before the
	// greeting; everything else upgrades via STARTTLS after it.
	implicitTLS := s.cfg.SMTPHost != "" && s.cfg.SMTPSecure
	if implicitTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: host})
	}

	// Greeting deadline, then the steady-state socket deadline.
	conn.SetDeadline(time.Now().Add(greetingTimeout))

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, classifyHandshakeError(err)
	}

	conn.SetDeadline(time.Now().Add(socketTimeout))

	if !implicitTLS {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			client.Close()
			return nil, classifyHandshakeError(err)
		}
	}

	auth := smtp.PlainAuth("", s.cfg.User, strings.TrimSpace(s.cfg.AppPassword), host)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, classifyHandshakeError(err)
	}

	return client, nil
}

func (s *Service) send(client *smtp.Client, recipient string, message []byte) error {
	if err := client.Mail(s.cfg.User); err != nil {
		return classifySendError(err, recipient)
	}
	if err := client.Rcpt(recipient); err != nil {
		return classifySendError(err, recipient)
	}

	w, err := client.Data()
	if err != nil {
		return classifySendError(err, recipient)
	}
	if _, err := w.Write(message); err != nil {
		return classifySendError(err, recipient)
	}
	if err := w.Close(); err != nil {
		return classifySendError(err, recipient)
	}

	return client.Quit()
}

// buildOTPMessage renders the multipart/alternative message with the plain
// and HTML bodies, both embedding the code verbatim.
func (s *Service) buildOTPMessage(recipient, code string) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/otp_code.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	var htmlBody bytes.Buffer
	if err := tmpl.Execute(&htmlBody, otpTemplateData{Code: code}); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	textBody := fmt.Sprintf(
		"Your PasaHero verification code is: %s\n\nThis code will expire in 5 minutes.\n\nIf you didn't request this code, please ignore this email.",
		code,
	)

	from := s.cfg.From
	if from == "" {
		from = fmt.Sprintf("PasaHero <%s>", s.cfg.User)
	}

	var body bytes.Buffer
	alt := multipart.NewWriter(&body)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", otpSubject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", alt.Boundary())
	msg.WriteString("\r\n")

	textPart, err := alt.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	textPart.Write([]byte(textBody))

	htmlPart, err := alt.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	htmlPart.Write(htmlBody.Bytes())

	if err := alt.Close(); err != nil {
		return nil, err
	}

	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// classifyHandshakeError buckets a pre-send verification failure into
// authentication, connectivity, or generic transport.
func classifyHandshakeError(err error) *errs.Error {
	if isAuthError(err) {
		e := errs.Wrap(errs.KindUnauthorized, "Email authentication failed", err)
		e.Troubleshooting = []string{
			"EMAIL_USER is correct",
			"EMAIL_APP_PASSWORD is a valid app password (not your regular password)",
			"2-Step Verification is enabled on the sender account",
			"App password was generated correctly (16 characters, no spaces)",
		}
		return e
	}

	if isConnectionError(err) {
		e := errs.Wrap(errs.KindUnavailable, "Email server connection failed", err)
		e.Troubleshooting = []string{
			"Internet connection is working",
			"SMTP servers are accessible",
			"Firewall is not blocking the connection",
		}
		return e
	}

	e := errs.Wrap(errs.KindTransport, "Email transporter verification failed", err)
	e.Troubleshooting = []string{"Check your email configuration in the .env file"}
	return e
}

// classifySendError buckets a failure during the MAIL transaction.
func classifySendError(err error, recipient string) *errs.Error {
	if isAuthError(err) {
		return errs.Wrap(errs.KindUnauthorized, "Email authentication failed while sending", err)
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 550, 553:
			return errs.Wrap(errs.KindValidation,
				fmt.Sprintf("Email rejected by server. The recipient email %q may be invalid, blocked, or not accepting emails.", recipient), err)
		case 501, 511, 513:
			return errs.Wrap(errs.KindValidation,
				fmt.Sprintf("Invalid email address format: %s", recipient), err)
		}
	}

	if isConnectionError(err) {
		return errs.Wrap(errs.KindUnavailable, "Email server connection failed", err)
	}

	return errs.Wrap(errs.KindTransport, "Failed to send email", err)
}

// isAuthError matches the SMTP replies relays use for rejected credentials.
func isAuthError(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return tpErr.Code == 530 || tpErr.Code == 534 || tpErr.Code == 535
	}
	return false
}

func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ETIMEDOUT)
}
