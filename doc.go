// Package mailkit is a thin integration library for sending transactional
// emails through a third-party provider API, with an optional SMTP relay
// transport for attachments streamed directly from a URL.
//
// The package wraps message assembly, recipient/sender validation, attachment
// normalization (inline content or a one-shot remote fetch) and dispatch
// behind a small, dependency-injection-friendly Service. It keeps no state,
// coordinates no concurrency and implements no retries - callers own retry
// policy, and a constructed Service is safe for concurrent use.
//
// # Architecture
//
// The Service dispatches through the Sender interface, allowing providers to
// be swapped without changing application code:
//
//   - the built-in Postmark client (default) for production delivery,
//     including server-side template rendering
//   - the resend subpackage for Resend-backed delivery
//   - DevSender for local development (saves messages to disk)
//
// URL-streamed attachment sends go through the separate Relay interface,
// implemented by the smtp subpackage over a generic SMTP transport.
//
// # Usage
//
//	cfg := mailkit.MustLoadConfig[mailkit.Config]()
//
//	svc, err := mailkit.New(cfg)
//	if err != nil {
//	    // Fail fast: invalid credentials or sender identity.
//	}
//
//	err = svc.SendHTML(ctx, mailkit.SendRequest{
//	    To:      []string{"user@example.com"},
//	    Subject: "Welcome!",
//	    HTML:    htmlContent,
//	    Tag:     "welcome", // optional, for analytics
//	})
//
// Templated sends are rendered server-side by the provider:
//
//	err = svc.SendTemplate(ctx, mailkit.SendRequest{
//	    To:            []string{"user@example.com"},
//	    TemplateAlias: "password-reset",
//	    TemplateData:  map[string]any{"reset_url": url},
//	})
//
// Wiring a custom provider or a relay happens through options:
//
//	svc := mailkit.MustNew(cfg,
//	    mailkit.WithSender(customSender),
//	    mailkit.WithRelay(smtpRelay),
//	    mailkit.WithLogger(logger),
//	)
//
// # Error Handling
//
// The package provides sentinel errors for every failure class:
//
//   - ErrInvalidConfig: configuration validation failed at construction
//   - ErrInvalidRequest: malformed or missing recipient/sender address,
//     or a missing required body
//   - ErrNoAttachment: attachment-required operation called without any
//   - ErrAttachmentFetch: remote attachment could not be fetched or buffered
//   - ErrSendFailed: provider dispatch failed; the provider's original error
//     is joined and reachable via errors.Is/errors.As
//
// # Log Redaction
//
// Every send logs its intended recipients. With Config.MaskEmails enabled,
// addresses are redacted via MaskAddress before logging
// ("johndoe@example.com" becomes "jo******oe@e****e.com"); the real address
// is always used for dispatch.
package mailkit
