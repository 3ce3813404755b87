// Package resend provides a Resend-backed provider client for mailkit.
//
// Resend has no server-side template rendering, so templated messages are
// rejected with mailkit.ErrTemplateNotSupported; use the Postmark-backed
// sender for those.
package resend

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailkit"
)

// Config holds Resend provider configuration.
// Load it with mailkit.LoadConfig or embed it in your app config.
type Config struct {
	APIKey string `env:"RESEND_API_KEY,required"`
}

// Sender implements mailkit.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// New creates a Resend-backed provider client.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", mailkit.ErrInvalidConfig)
	}
	return &Sender{client: resend.NewClient(cfg.APIKey)}, nil
}

// Send implements mailkit.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailkit.Message) error {
	if msg.TemplateAlias != "" {
		return mailkit.ErrTemplateNotSupported
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	if len(msg.Attachments) > 0 {
		attachments, err := convertAttachments(msg.Attachments)
		if err != nil {
			return err
		}
		req.Attachments = attachments
	}

	if msg.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: msg.Tag}}
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// convertAttachments maps prepared attachments onto the SDK's raw-byte form.
func convertAttachments(attachments []mailkit.PreparedAttachment) ([]*resend.Attachment, error) {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid attachment content for %q: %w", a.Filename, err)
		}
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result, nil
}
