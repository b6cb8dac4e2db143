package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/pkg/logger"
)

// Mailer delivers the verification and reset emails. Implementations must be
// safe for concurrent use.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, name, code string) error
	SendPasswordResetEmail(ctx context.Context, email, name, token string) error
}

// Config holds the SendGrid sender settings.
type Config struct {
	APIKey     string
	SenderName string
	Sender     string
	// ResetURL is the frontend page the reset link points at; the token is
	// appended as a query parameter.
	ResetURL string
}

// SendGridMailer implements Mailer over the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	cfg    *Config
}

// NewSendGridMailer constructs the mailer. A missing API key or sender
// address is a startup error.
func NewSendGridMailer(cfg *Config) (*SendGridMailer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mail: SendGrid API key is required")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("mail: sender email is required")
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		cfg:    cfg,
	}, nil
}

func (m *SendGridMailer) send(ctx context.Context, to, subject, html string) error {
	from := sgmail.NewEmail(m.cfg.SenderName, m.cfg.Sender)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), "", html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail: send to %s: status %d", to, resp.StatusCode)
	}

	logger.Get().Info("email dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// SendVerificationEmail mails the 6-digit code for a new account.
func (m *SendGridMailer) SendVerificationEmail(ctx context.Context, email, name, code string) error {
	return m.send(ctx, email, "Verify your account", verifyEmailTemplate(name, code))
}

// SendPasswordResetEmail mails the reset link carrying the signed token.
func (m *SendGridMailer) SendPasswordResetEmail(ctx context.Context, email, name, resetToken string) error {
	link := fmt.Sprintf("%s?token=%s", m.cfg.ResetURL, resetToken)
	return m.send(ctx, email, "Reset your password", resetPasswordTemplate(name, link))
}
