package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config    Config
	templates *TemplateManager
	dialer    *gomail.Dialer
}

func NewSMTPProvider(config Config) (Provider, error) {
	if config.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	tm, err := NewTemplateManager(config.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPProvider{
		config:    config,
		templates: tm,
		dialer:    gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
	}
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	data := map[string]interface{}{
		"VerifyURL": fmt.Sprintf("%s/verify-email?token=%s", p.config.BaseURL, token),
	}
	return p.SendTemplate([]string{to}, "Verify your email", "verification", data)
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	data := map[string]interface{}{
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", p.config.BaseURL, token),
	}
	return p.SendTemplate([]string{to}, "Password reset", "password_reset", data)
}

func (p *SMTPProvider) SendBookingNotice(to, listingTitle, status string) error {
	data := map[string]interface{}{
		"ListingTitle": listingTitle,
		"Status":       status,
	}
	return p.SendTemplate([]string{to}, "Booking update", "booking_notice", data)
}
