package domain

import "context"

// Report is a rendered RSVP summary addressed to one recipient.
type Report struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered reports (infrastructure port).
type Mailer interface {
	SendReport(ctx context.Context, report Report) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}
