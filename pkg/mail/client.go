package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
)

// Client delivers transactional mail through SendGrid. The service only ever
// sends OTP codes, so the surface is one method.
type Client struct {
	client *sendgrid.Client
	sender *sgmail.Email
}

func New(cfg config.MailConfig) (*Client, error) {
	if cfg.SendgridAPIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("mail sender address is required")
	}
	return &Client{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		sender: sgmail.NewEmail(cfg.SenderName, cfg.SenderEmail),
	}, nil
}

// Send delivers one HTML email to a single recipient.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	message := sgmail.NewSingleEmail(c.sender, subject, sgmail.NewEmail("", to), "", htmlBody)
	resp, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected mail to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
