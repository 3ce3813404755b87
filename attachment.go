package mailkit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultContentType = "application/octet-stream"
	defaultDisposition = "attachment"
	defaultFilename    = "attachment"
)

// prepareAttachments resolves a request's attachment sources into normalized
// wire descriptors. It returns nil when the request carries neither inline
// attachments nor a file URL. A URL-derived attachment, if any, comes first;
// inline attachments missing content or filename are silently dropped.
func (s *Service) prepareAttachments(ctx context.Context, req SendRequest) ([]PreparedAttachment, error) {
	if len(req.Attachments) == 0 && req.FileURL == "" {
		return nil, nil
	}

	var prepared []PreparedAttachment

	if req.FileURL != "" {
		remote, err := s.fetchRemoteAttachment(ctx, req.FileURL, req.Filename)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, remote)
	}

	for _, a := range req.Attachments {
		p, ok := normalizeAttachment(a)
		if !ok {
			continue
		}
		prepared = append(prepared, p)
	}

	return prepared, nil
}

// fetchRemoteAttachment performs a single GET against the URL, buffers the
// response in full and base64-encodes it. Any transport error or non-200
// status surfaces as a single wrapped failure, never partial results.
func (s *Service) fetchRemoteAttachment(ctx context.Context, url, filename string) (PreparedAttachment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PreparedAttachment{}, errors.Join(ErrAttachmentFetch, err)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return PreparedAttachment{}, errors.Join(ErrAttachmentFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return PreparedAttachment{}, fmt.Errorf("%w: unexpected status %d fetching %s", ErrAttachmentFetch, resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return PreparedAttachment{}, errors.Join(ErrAttachmentFetch, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	if filename == "" {
		filename = defaultFilename
	}

	return PreparedAttachment{
		Content:     base64.StdEncoding.EncodeToString(data),
		Filename:    filename,
		ContentType: contentType,
		Disposition: defaultDisposition,
	}, nil
}

// normalizeAttachment converts a request-side attachment into wire form.
// Raw content is base64-encoded, pre-encoded content passes through.
// Returns ok=false when content or filename is missing.
func normalizeAttachment(a Attachment) (PreparedAttachment, bool) {
	var content string
	switch {
	case len(a.Content) > 0:
		content = base64.StdEncoding.EncodeToString(a.Content)
	case a.ContentB64 != "":
		content = a.ContentB64
	default:
		return PreparedAttachment{}, false
	}
	if a.Filename == "" {
		return PreparedAttachment{}, false
	}

	p := PreparedAttachment{
		Content:     content,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Disposition: a.Disposition,
		ContentID:   a.ContentID,
	}
	if p.ContentType == "" {
		p.ContentType = defaultContentType
	}
	if p.Disposition == "" {
		p.Disposition = defaultDisposition
	}
	return p, true
}
