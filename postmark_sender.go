package mailkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender creates a Postmark-backed provider client. Both tokens
// are required for runtime operation - this enforces explicit configuration
// rather than silent failures in production.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
	}, nil
}

// Send implements Sender using Postmark's transactional API. Messages with a
// template alias go through the templated-send endpoint where Postmark
// renders the body server-side; everything else goes through the regular
// send endpoint. Tracking is enabled by default - opens and HTML link clicks
// only to avoid privacy issues with plain text.
func (c *postmarkSender) Send(ctx context.Context, msg *Message) error {
	// Postmark takes recipient lists in comma-separated form.
	recipients := strings.Join(msg.To, ",")
	attachments := toPostmarkAttachments(msg.Attachments)

	var (
		resp postmark.EmailResponse
		err  error
	)
	if msg.TemplateAlias != "" {
		resp, err = c.client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
			TemplateAlias: msg.TemplateAlias,
			TemplateModel: msg.TemplateData,
			From:          msg.From,
			To:            recipients,
			ReplyTo:       msg.ReplyTo,
			Tag:           msg.Tag,
			TrackOpens:    true,
			TrackLinks:    "HtmlOnly",
			Attachments:   attachments,
		})
	} else {
		resp, err = c.client.SendEmail(ctx, postmark.Email{
			From:        msg.From,
			To:          recipients,
			ReplyTo:     msg.ReplyTo,
			Subject:     msg.Subject,
			Tag:         msg.Tag,
			HTMLBody:    msg.HTML,
			TextBody:    msg.Text,
			TrackOpens:  true,
			TrackLinks:  "HtmlOnly",
			Attachments: attachments,
		})
	}
	if err != nil {
		return err
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}

func toPostmarkAttachments(attachments []PreparedAttachment) []postmark.Attachment {
	if len(attachments) == 0 {
		return nil
	}
	result := make([]postmark.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = postmark.Attachment{
			Name:        a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
		}
	}
	return result
}
