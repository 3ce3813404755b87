package mailkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Service orchestrates validation, attachment preparation, message assembly
// and dispatch through a provider API client or a relay transport. All state
// is immutable after construction, so a single Service is safe for concurrent
// use by many simultaneous send calls.
type Service struct {
	cfg        Config
	sender     Sender
	relay      Relay
	log        *slog.Logger
	httpClient *http.Client
}

type options struct {
	sender           Sender
	senderFactory    func(Config) (Sender, error)
	useSenderFactory bool
	relay            Relay
	logger           *slog.Logger
	httpClient       *http.Client
}

// Option configures service construction.
type Option func(*options)

// WithSender uses an existing provider client instead of the default
// Postmark-backed one.
func WithSender(s Sender) Option {
	return func(o *options) { o.sender = s }
}

// WithSenderFactory builds the provider client from the service
// configuration during construction. Construction fails fast if the factory
// is nil, returns an error, or returns a nil sender.
func WithSenderFactory(f func(Config) (Sender, error)) Option {
	return func(o *options) {
		o.senderFactory = f
		o.useSenderFactory = true
	}
}

// WithRelay attaches a relay transport for URL-streamed attachment sends.
func WithRelay(r Relay) Option {
	return func(o *options) { o.relay = r }
}

// WithLogger sets the logger used for send auditing. Defaults to
// slog.Default(). Recipient addresses are masked in log output when
// Config.MaskEmails is enabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient sets the client used to fetch URL attachments.
// Defaults to http.DefaultClient; no timeout is imposed beyond the
// client's own.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// New creates an email service from the given configuration. Unless a custom
// sender or sender factory is supplied, a Postmark provider client is built
// from the config. Construction fails fast on invalid configuration;
// a failed construction is fatal and not retried.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{
		logger:     slog.Default(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(o)
	}

	var sender Sender
	switch {
	case o.sender != nil:
		sender = o.sender
	case o.useSenderFactory:
		if o.senderFactory == nil {
			return nil, fmt.Errorf("%w: sender factory is nil", ErrInvalidConfig)
		}
		s, err := o.senderFactory(cfg)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		if s == nil {
			return nil, fmt.Errorf("%w: sender factory returned nil", ErrInvalidConfig)
		}
		sender = s
	default:
		s, err := NewPostmarkSender(cfg)
		if err != nil {
			return nil, err
		}
		sender = s
	}

	return &Service{
		cfg:        cfg,
		sender:     sender,
		relay:      o.relay,
		log:        o.logger,
		httpClient: o.httpClient,
	}, nil
}

// MustNew creates an email service that panics on invalid configuration.
// Follows the fail-fast initialization pattern: misconfiguration should
// prevent startup rather than cause runtime errors.
func MustNew(cfg Config, opts ...Option) *Service {
	svc, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return svc
}

// SendTemplate sends an email whose body is rendered server-side by the
// provider from the request's template alias and data payload.
func (s *Service) SendTemplate(ctx context.Context, req SendRequest) error {
	if strings.TrimSpace(req.TemplateAlias) == "" {
		return fmt.Errorf("%w: template alias is required", ErrInvalidRequest)
	}
	return s.send(ctx, req, bodyTemplate)
}

// SendHTML sends an email with a raw HTML body.
func (s *Service) SendHTML(ctx context.Context, req SendRequest) error {
	if strings.TrimSpace(req.HTML) == "" {
		return fmt.Errorf("%w: HTML body is required", ErrInvalidRequest)
	}
	return s.send(ctx, req, bodyHTML)
}

// SendText sends an email with a plain text body.
func (s *Service) SendText(ctx context.Context, req SendRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text body is required", ErrInvalidRequest)
	}
	return s.send(ctx, req, bodyText)
}

// SendWithAttachments sends an email carrying at least one inline
// attachment. It fails before any network activity when no attachments are
// supplied. When several body representations are present, template is
// preferred over HTML, HTML over text.
func (s *Service) SendWithAttachments(ctx context.Context, req SendRequest) error {
	if len(req.Attachments) == 0 {
		return ErrNoAttachment
	}
	return s.send(ctx, req, bodyAny)
}

// SendViaRelay dispatches through the relay transport, pointing it at the
// request's file URL as a streamed attachment source instead of pre-fetching
// it. Recipient and sender addresses are validated before the relay is
// invoked; the relay's failure, if any, is returned verbatim.
func (s *Service) SendViaRelay(ctx context.Context, req SendRequest) error {
	if s.relay == nil {
		return ErrNoRelay
	}
	if req.FileURL == "" {
		return fmt.Errorf("%w: file URL is required", ErrInvalidRequest)
	}

	to := normalizeAddresses(req.To)
	from, err := s.resolveSender(req.From)
	if err != nil {
		return err
	}
	if !ValidAddressList(to) {
		return fmt.Errorf("%w: invalid recipient address(es): %s", ErrInvalidRequest, strings.Join(to, ", "))
	}
	if !ValidAddress(from) {
		return fmt.Errorf("%w: invalid sender address: %s", ErrInvalidRequest, from)
	}

	s.log.DebugContext(ctx, "relaying email with url attachment",
		slog.Any("to", MaskAddresses(to, s.cfg.MaskEmails)))

	filename := req.Filename
	if filename == "" {
		filename = defaultFilename
	}
	msg := &RelayMessage{
		To:      to,
		From:    from,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
		Attachments: []RelayAttachment{
			{URL: req.FileURL, Filename: filename},
		},
	}

	if err := s.relay.Send(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "relay send failed",
			slog.Any("error", err),
			slog.Any("to", MaskAddresses(to, s.cfg.MaskEmails)))
		return err
	}

	s.log.InfoContext(ctx, "email relayed",
		slog.Any("to", MaskAddresses(to, s.cfg.MaskEmails)))
	return nil
}

// bodyKind selects which body representation a send operation consumes.
type bodyKind int

const (
	// bodyAny picks the first available representation,
	// preferring template over HTML over text.
	bodyAny bodyKind = iota
	bodyTemplate
	bodyHTML
	bodyText
)

// send is the common pipeline for provider-API operations: log intended
// recipients, prepare attachments, assemble and validate the message, then
// dispatch. Dispatch failures are logged and joined with ErrSendFailed so
// callers can both classify the failure and reach the provider's original
// error.
func (s *Service) send(ctx context.Context, req SendRequest, kind bodyKind) error {
	to := normalizeAddresses(req.To)

	s.log.DebugContext(ctx, "sending email",
		slog.Any("to", MaskAddresses(to, s.cfg.MaskEmails)))

	attachments, err := s.prepareAttachments(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "attachment preparation failed", slog.Any("error", err))
		return err
	}

	msg, err := s.assemble(req, to, attachments, kind)
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "email send failed",
			slog.Any("error", err),
			slog.Any("to", MaskAddresses(msg.To, s.cfg.MaskEmails)))
		return errors.Join(ErrSendFailed, err)
	}

	s.log.InfoContext(ctx, "email sent",
		slog.Any("to", MaskAddresses(msg.To, s.cfg.MaskEmails)))
	return nil
}

// assemble builds the provider message and gates it on address correctness.
// Recipients are validated before the sender, mirroring the order callers
// observe in returned errors.
func (s *Service) assemble(req SendRequest, to []string, attachments []PreparedAttachment, kind bodyKind) (*Message, error) {
	from, err := s.resolveSender(req.From)
	if err != nil {
		return nil, err
	}

	if !ValidAddressList(to) {
		return nil, fmt.Errorf("%w: invalid recipient address(es): %s", ErrInvalidRequest, strings.Join(to, ", "))
	}
	if !ValidAddress(from) {
		return nil, fmt.Errorf("%w: invalid sender address: %s", ErrInvalidRequest, from)
	}

	msg := &Message{
		To:          to,
		From:        from,
		ReplyTo:     s.cfg.SupportEmail,
		Subject:     req.Subject,
		Tag:         req.Tag,
		Attachments: attachments,
	}

	switch kind {
	case bodyTemplate:
		msg.TemplateAlias = req.TemplateAlias
		msg.TemplateData = req.TemplateData
	case bodyHTML:
		msg.HTML = req.HTML
	case bodyText:
		msg.Text = req.Text
	default:
		switch {
		case req.TemplateAlias != "":
			msg.TemplateAlias = req.TemplateAlias
			msg.TemplateData = req.TemplateData
		case req.HTML != "":
			msg.HTML = req.HTML
		case req.Text != "":
			msg.Text = req.Text
		default:
			return nil, fmt.Errorf("%w: no body content", ErrInvalidRequest)
		}
	}

	return msg, nil
}

// resolveSender applies the configured default when the request carries no
// sender override.
func (s *Service) resolveSender(override string) (string, error) {
	from := strings.TrimSpace(override)
	if from == "" {
		from = s.cfg.SenderEmail
	}
	if from == "" {
		return "", fmt.Errorf("%w: no sender address configured", ErrInvalidRequest)
	}
	return from, nil
}

func normalizeAddresses(addrs []string) []string {
	normalized := make([]string, len(addrs))
	for i, a := range addrs {
		normalized[i] = strings.TrimSpace(a)
	}
	return normalized
}
