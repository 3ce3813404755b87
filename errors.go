package mailkit

import "errors"

var (
	// ErrInvalidConfig indicates the service configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest indicates a malformed send request, such as a missing
	// or syntactically invalid recipient or sender address.
	ErrInvalidRequest = errors.New("invalid send request")

	// ErrNoAttachment indicates an attachment-required operation was called
	// without any inline attachments.
	ErrNoAttachment = errors.New("at least one attachment is required")

	// ErrAttachmentFetch indicates a remote attachment could not be fetched
	// or buffered.
	ErrAttachmentFetch = errors.New("failed to fetch remote attachment")

	// ErrTemplateNotSupported indicates the configured provider cannot render
	// server-side templates.
	ErrTemplateNotSupported = errors.New("provider does not support templated sends")

	// ErrSendFailed indicates the provider rejected or failed to deliver the
	// message. The provider's original error is joined and reachable via
	// errors.Is/errors.As.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNoRelay indicates the relay-based operation was called on a service
	// constructed without a relay transport.
	ErrNoRelay = errors.New("no relay transport configured")
)
