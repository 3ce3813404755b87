package mailkit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development. It saves messages as
// body and JSON metadata files to a directory instead of dispatching them
// through a provider API.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves messages to disk.
// The directory will be created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// messageMetadata is the message envelope saved to JSON (excluding the body).
type messageMetadata struct {
	Timestamp     string         `json:"timestamp"`
	To            []string       `json:"to"`
	From          string         `json:"from"`
	Subject       string         `json:"subject,omitempty"`
	Tag           string         `json:"tag,omitempty"`
	TemplateAlias string         `json:"template_alias,omitempty"`
	TemplateData  map[string]any `json:"template_data,omitempty"`
	Attachments   []string       `json:"attachments,omitempty"`
}

// Send saves the message body (HTML or text, when present) and its metadata
// as JSON to the configured directory.
func (d *DevSender) Send(ctx context.Context, msg *Message) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()
	timestamp := now.Format("2006_01_02_150405")

	// Prefer tag over subject over template alias for the filename.
	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	if identifier == "" {
		identifier = msg.TemplateAlias
	}
	base := fmt.Sprintf("%s_%s", timestamp, sanitizeFilename(identifier))

	switch {
	case msg.HTML != "":
		if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.HTML), 0644); err != nil {
			return fmt.Errorf("%w: failed to write HTML file: %v", ErrSendFailed, err)
		}
	case msg.Text != "":
		if err := os.WriteFile(filepath.Join(d.dir, base+".txt"), []byte(msg.Text), 0644); err != nil {
			return fmt.Errorf("%w: failed to write text file: %v", ErrSendFailed, err)
		}
	}

	metadata := messageMetadata{
		Timestamp:     now.Format(time.RFC3339),
		To:            msg.To,
		From:          msg.From,
		Subject:       msg.Subject,
		Tag:           msg.Tag,
		TemplateAlias: msg.TemplateAlias,
		TemplateData:  msg.TemplateData,
	}
	for _, a := range msg.Attachments {
		metadata.Attachments = append(metadata.Attachments, a.Filename)
	}

	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), jsonData, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrSendFailed, err)
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash,
// underscore, or dot.
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe filename: spaces become
// underscores, unsafe characters are stripped, and the result is truncated
// to a length filesystems are comfortable with.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
