// Package templates renders templ components into HTML strings suitable for
// mailkit.SendRequest.HTML, for callers that assemble email bodies
// client-side instead of using provider templates.
package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Render renders a templ component to an HTML string.
func Render(ctx context.Context, component templ.Component) (string, error) {
	var sb strings.Builder
	if err := component.Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return sb.String(), nil
}
