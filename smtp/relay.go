// Package smtp provides a go-mail based relay transport for mailkit.
// It is the transport used for attachments streamed directly from a URL or
// a local path, as opposed to the provider-API senders which carry buffered,
// base64-encoded content.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	mail "github.com/go-mail/mail"

	"github.com/dmitrymomot/mailkit"
)

// Config holds relay transport configuration.
// Load it with mailkit.LoadConfig or embed it in your app config.
type Config struct {
	Host               string `env:"SMTP_HOST,required"`
	Port               int    `env:"SMTP_PORT" envDefault:"587"`
	Username           string `env:"SMTP_USERNAME"`
	Password           string `env:"SMTP_PASSWORD"`
	TLSMode            string `env:"SMTP_TLS_MODE" envDefault:"auto"` // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool   `env:"SMTP_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// Relay implements mailkit.Relay over SMTP.
type Relay struct {
	cfg        Config
	httpClient *http.Client
}

// Option configures relay construction.
type Option func(*Relay)

// WithHTTPClient sets the client used to stream URL attachments.
// Defaults to http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Relay) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// New creates an SMTP relay transport.
func New(cfg Config, opts ...Option) (*Relay, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP host is required", mailkit.ErrInvalidConfig)
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("%w: SMTP port must be positive", mailkit.ErrInvalidConfig)
	}
	switch cfg.TLSMode {
	case "", "auto", "starttls", "ssl", "none":
	default:
		return nil, fmt.Errorf("%w: unknown TLS mode %q", mailkit.ErrInvalidConfig, cfg.TLSMode)
	}

	r := &Relay{cfg: cfg, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Send implements mailkit.Relay. URL attachments are streamed from their
// source while the message is written out, so their bodies stay open until
// the dial-and-send completes.
func (r *Relay) Send(ctx context.Context, msg *mailkit.RelayMessage) error {
	m, cleanup, err := r.buildMessage(ctx, msg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := r.dialer().DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildMessage assembles the MIME message. The returned cleanup closes any
// response bodies still being streamed and must be called after the message
// has been written out.
func (r *Relay) buildMessage(ctx context.Context, msg *mailkit.RelayMessage) (*mail.Message, func(), error) {
	m := mail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	if msg.Subject != "" {
		m.SetHeader("Subject", msg.Subject)
	}

	// Prefer multipart/alternative (text + html).
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text == "" {
			m.SetBody("text/html", msg.HTML)
		} else {
			m.AddAlternative("text/html", msg.HTML)
		}
	}

	var bodies []io.Closer
	cleanup := func() {
		for _, b := range bodies {
			_ = b.Close()
		}
	}

	for _, a := range msg.Attachments {
		switch {
		case a.URL != "":
			body, err := r.openRemote(ctx, a.URL)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			bodies = append(bodies, body)
			m.AttachReader(a.Filename, body)
		case a.Path != "":
			if a.Filename != "" {
				m.Attach(a.Path, mail.Rename(a.Filename))
			} else {
				m.Attach(a.Path)
			}
		}
	}

	return m, cleanup, nil
}

// openRemote starts a GET against the attachment source and hands back the
// response body for streaming.
func (r *Relay) openRemote(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Join(mailkit.ErrAttachmentFetch, err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(mailkit.ErrAttachmentFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d fetching %s", mailkit.ErrAttachmentFetch, resp.StatusCode, url)
	}
	return resp.Body, nil
}

func (r *Relay) dialer() *mail.Dialer {
	d := mail.NewDialer(r.cfg.Host, r.cfg.Port, r.cfg.Username, r.cfg.Password)
	d.TLSConfig = &tls.Config{
		ServerName:         r.cfg.Host,
		InsecureSkipVerify: r.cfg.InsecureSkipVerify, // dev only
	}

	switch r.cfg.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: r.cfg.InsecureSkipVerify}
	default:
		// "auto"/"starttls": go-mail negotiates STARTTLS when offered.
	}
	return d
}
