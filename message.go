package mailkit

import "context"

// Sender is the minimal interface a provider API client must implement.
// It accepts a fully assembled Message and handles the actual delivery.
// Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Relay is a generic mail transport used for attachments streamed directly
// from a URL or a local path, bypassing the provider API.
// Implementations must be safe for concurrent use.
type Relay interface {
	Send(ctx context.Context, msg *RelayMessage) error
}

// SendRequest describes a single outbound email. Exactly one body
// representation is consumed per operation: TemplateAlias+TemplateData for
// templated sends, HTML for custom HTML, Text for plain text.
type SendRequest struct {
	To            []string       // Recipient addresses (at least one required)
	From          string         // Optional sender override; config default applies when empty
	Subject       string         // Optional subject
	TemplateAlias string         // Provider-side template identifier
	TemplateData  map[string]any // Data payload for server-side template rendering
	HTML          string         // Raw HTML body
	Text          string         // Plain text body
	Attachments   []Attachment   // Inline attachments
	FileURL       string         // Remote file to attach, fetched with a single GET
	Filename      string         // Display name for the URL-derived attachment
	Tag           string         // Optional provider analytics category
}

// Attachment is a request-side attachment. Content and Filename are
// mandatory; entries missing either are silently dropped during preparation.
// Supply raw bytes in Content or an already base64-encoded payload in
// ContentB64; raw bytes are encoded during preparation, pre-encoded content
// passes through unchanged.
type Attachment struct {
	Content     []byte // Raw file content
	ContentB64  string // Pre-encoded content, used when Content is empty
	Filename    string // Display name for the attachment
	ContentType string // MIME type, defaults to application/octet-stream
	Disposition string // "attachment" (default) or "inline"
	ContentID   string // Content-ID for inline references
}

// Message is the assembled, provider-facing form of a send request.
type Message struct {
	To            []string
	From          string
	ReplyTo       string
	Subject       string
	Tag           string
	TemplateAlias string
	TemplateData  map[string]any
	HTML          string
	Text          string
	Attachments   []PreparedAttachment
}

// PreparedAttachment is the normalized wire form of an attachment.
type PreparedAttachment struct {
	Content     string // Base64-encoded payload
	Filename    string
	ContentType string
	Disposition string
	ContentID   string
}

// RelayMessage is the descriptor handed to a Relay transport. Attachments
// reference their source by URL or local path instead of carrying content.
type RelayMessage struct {
	To          []string
	From        string
	Subject     string
	Text        string
	HTML        string
	Attachments []RelayAttachment
}

// RelayAttachment points the relay at an attachment source. Exactly one of
// URL or Path is expected.
type RelayAttachment struct {
	URL      string // Remote source, streamed during the relay send
	Path     string // Local file source
	Filename string // Display name for the attachment
}
