package email

// Email is a single outbound message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends transactional mail. Services dispatch sends
// asynchronously and only log failures; mail is never on a request's
// critical path.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data interface{}) error
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
	SendBookingNotice(to, listingTitle, status string) error
}

// Config holds SMTP connection settings.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TemplatesDir string
	BaseURL      string
}
