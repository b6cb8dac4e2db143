package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/talentbridge/backend/pkg/logger"
)

// LogMailer writes emails to the log instead of sending them. Used in
// development when no SendGrid key is configured.
type LogMailer struct{}

func (LogMailer) SendVerificationEmail(_ context.Context, email, name, code string) error {
	logger.Get().Info("verification email (not sent)",
		zap.String("to", email),
		zap.String("name", name),
		zap.String("code", code),
	)
	return nil
}

func (LogMailer) SendPasswordResetEmail(_ context.Context, email, name, token string) error {
	logger.Get().Info("password reset email (not sent)",
		zap.String("to", email),
		zap.String("name", name),
		zap.String("token", token),
	)
	return nil
}
