package app

import (
	"agrihub_backend/internal/email"
	"agrihub_backend/internal/logger"
)

// NoopEmailProvider logs outbound mail instead of sending it. Used
// when SMTP is not configured, and by tests.
type NoopEmailProvider struct{}

func (p *NoopEmailProvider) Send(msg *email.Email) error {
	logger.Info("email suppressed (noop provider)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *NoopEmailProvider) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	logger.Info("email suppressed (noop provider)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (p *NoopEmailProvider) SendVerification(to, token string) error {
	logger.Info("verification email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopEmailProvider) SendPasswordReset(to, token string) error {
	logger.Info("password reset email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopEmailProvider) SendBookingNotice(to, listingTitle, status string) error {
	logger.Info("booking notice suppressed (noop provider)", "to", to, "listing", listingTitle, "status", status)
	return nil
}
