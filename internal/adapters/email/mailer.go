package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"rsvptracker/internal/domain"
)

const charset = "UTF-8"

var errEmptyReport = errors.New("report has neither html nor text body")

// SESConfig holds the AWS SES connection settings.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects the report transport. FromAddress may carry a display
// name ("RSVP Desk <rsvp@example.com>"); FromName overrides it.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer returns the report mailer for config.Provider: "ses" delivers
// through AWS SES, "noop" and "" only log. Unknown providers fall back to noop.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case "ses":
		from, err := sender(config)
		if err != nil {
			return nil, fmt.Errorf("ses mailer: %w", err)
		}
		if config.SES.Region == "" {
			return nil, errors.New("ses mailer: region is required")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES, use only in development")
		}
		return &sesMailer{client: newSESClient(config.SES), from: from, logger: logger}, nil
	case "noop", "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

// sender builds the Source header. Non-ASCII display names are MIME-encoded.
func sender(config MailerConfig) (string, error) {
	if config.FromAddress == "" {
		return "", errors.New("from address is required")
	}
	addr, err := mail.ParseAddress(config.FromAddress)
	if err != nil {
		return "", fmt.Errorf("from address %q: %w", config.FromAddress, err)
	}
	if config.FromName != "" {
		addr.Name = config.FromName
	}
	return formatAddress(addr), nil
}

func formatAddress(addr *mail.Address) string {
	if addr.Name == "" {
		return addr.Address
	}
	return addr.String()
}

func newSESClient(cfg SESConfig) *ses.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		},
	}
	return ses.NewFromConfig(aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		HTTPClient: &http.Client{Transport: transport},
	})
}

// sesAPI is the part of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client sesAPI
	from   string
	logger *slog.Logger
}

func (m *sesMailer) SendReport(ctx context.Context, report domain.Report) error {
	input, err := reportInput(m.from, report)
	if err != nil {
		return err
	}
	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", input.Destination.ToAddresses[0], err)
	}
	m.logger.InfoContext(ctx, "rsvp report sent",
		"to", input.Destination.ToAddresses[0],
		"subject", report.Subject,
		"message_id", aws.ToString(out.MessageId))
	return nil
}

// reportInput validates the recipient and maps the report onto a SES simple
// message. Empty bodies are left out.
func reportInput(from string, report domain.Report) (*ses.SendEmailInput, error) {
	to, err := mail.ParseAddress(report.To)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient %q: %v", domain.ErrInvalidInput, report.To, err)
	}
	if report.HTML == "" && report.Text == "" {
		return nil, errEmptyReport
	}
	body := &types.Body{}
	if report.HTML != "" {
		body.Html = content(report.HTML)
	}
	if report.Text != "" {
		body.Text = content(report.Text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{formatAddress(to)}},
		Message:     &types.Message{Subject: content(report.Subject), Body: body},
	}, nil
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charset)}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) SendReport(ctx context.Context, report domain.Report) error {
	n.logger.InfoContext(ctx, "rsvp report not sent (noop mailer)",
		"to", report.To,
		"subject", report.Subject,
		"text_bytes", len(report.Text))
	return nil
}
