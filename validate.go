package mailkit

import (
	"net/mail"
	"strings"
)

// ValidAddress reports whether a single address is syntactically valid.
// The address is parsed with RFC 5322 rules, then hardened for typical web
// use: the domain must contain at least one dot, cannot start or end with a
// dot, and cannot contain empty labels. No network or DNS verification.
func ValidAddress(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return false
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}

	local, domain, ok := strings.Cut(parsed.Address, "@")
	if !ok || local == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return false
		}
	}

	return true
}

// ValidAddressList reports whether every address in the list is
// syntactically valid. It fails closed: an empty or nil list is invalid, and
// a single malformed element invalidates the whole list.
func ValidAddressList(addrs []string) bool {
	if len(addrs) == 0 {
		return false
	}
	for _, a := range addrs {
		if !ValidAddress(a) {
			return false
		}
	}
	return true
}
