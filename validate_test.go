package mailkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailkit"
)

func TestValidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "test.user+tag@sub.example.com", true},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"missing domain", "user@", false},
		{"missing local part", "@example.com", false},
		{"no at sign", "not-an-email", false},
		{"domain without dot", "user@localhost", false},
		{"domain starts with dot", "user@.example.com", false},
		{"domain ends with dot", "user@example.com.", false},
		{"empty domain label", "user@example..com", false},
		{"spaces inside", "us er@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.valid, mailkit.ValidAddress(tt.input))
		})
	}
}

func TestValidAddressList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		valid bool
	}{
		{"single valid", []string{"a@b.com"}, true},
		{"multiple valid", []string{"a@b.com", "c@d.org", "e.f+g@h.co.uk"}, true},
		{"nil list fails closed", nil, false},
		{"empty list fails closed", []string{}, false},
		{"one malformed invalidates the whole list", []string{"a@b.com", "not-an-email", "c@d.org"}, false},
		{"empty element", []string{"a@b.com", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.valid, mailkit.ValidAddressList(tt.input))
		})
	}
}
