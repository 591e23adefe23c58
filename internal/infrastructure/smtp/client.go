package smtp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"

	"gopkg.in/gomail.v2"
)

// Client delivers notifications over email. It resolves the recipient
// address through the activity repository; a user without a known email
// cannot receive this channel.
type Client struct {
	cfg      *config.SMTPConfig
	emails   repository.ActivityRepository
	bodyTmpl *template.Template
}

// NewClient creates a new SMTP delivery client
func NewClient(cfg *config.SMTPConfig, emails repository.ActivityRepository) (*Client, error) {
	bodyTmpl, err := template.New("notification").Parse(defaultNotificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification email template: %w", err)
	}

	return &Client{
		cfg:      cfg,
		emails:   emails,
		bodyTmpl: bodyTmpl,
	}, nil
}

// Deliver renders the notification into the email template and sends it
func (c *Client) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	to, err := c.emails.Email(ctx, delivery.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve email for user %s: %w", delivery.UserID, err)
	}
	if to == "" {
		return fmt.Errorf("no email address for user %s", delivery.UserID)
	}

	body, err := c.renderBody(delivery)
	if err != nil {
		return fmt.Errorf("failed to render notification email: %w", err)
	}

	return c.send(ctx, to, delivery.Title, body)
}

// send sends an email using gomail. DialAndSend carries no context
// support, so the attempt runs in a goroutine and the caller's deadline
// wins; an abandoned attempt finishes in the background on its own
// connection.
func (c *Client) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.Username, c.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email delivery to %s aborted: %w", to, ctx.Err())
	}
}

func (c *Client) renderBody(delivery *entity.Delivery) (string, error) {
	data := map[string]interface{}{
		"Title":   delivery.Title,
		"Message": delivery.Message,
	}

	var buf bytes.Buffer
	if err := c.bodyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

const defaultNotificationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #FF8A50;">{{.Title}}</h2>
        <p>{{.Message}}</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email, please do not reply.</p>
    </div>
</body>
</html>
`
