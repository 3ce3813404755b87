package mailkit

import "strings"

const (
	localMask  = "******"
	domainMask = "****"
)

// MaskAddress redacts an email address for safe log output. The local part
// keeps its first two and last two characters around a fixed-length mask;
// local parts of three characters or fewer are masked character-for-character.
// The domain's first label keeps its first and last character around a fixed
// mask, remaining labels (e.g. the TLD) pass through unchanged.
//
//	MaskAddress("johndoe@example.com") == "jo******oe@e****e.com"
//
// Input without an "@" gets the local-part rule applied to the whole string.
// The masked form is for logging only and never replaces the address used
// for dispatch.
func MaskAddress(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok {
		return maskLocalPart(addr)
	}
	return maskLocalPart(local) + "@" + maskDomain(domain)
}

// MaskAddresses applies MaskAddress to every element when enabled, returning
// the input unchanged otherwise.
func MaskAddresses(addrs []string, enabled bool) []string {
	if !enabled {
		return addrs
	}
	masked := make([]string, len(addrs))
	for i, a := range addrs {
		masked[i] = MaskAddress(a)
	}
	return masked
}

func maskLocalPart(s string) string {
	if len(s) <= 3 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + localMask + s[len(s)-2:]
}

func maskDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if first := labels[0]; len(first) <= 2 {
		labels[0] = strings.Repeat("*", len(first))
	} else {
		labels[0] = first[:1] + domainMask + first[len(first)-1:]
	}
	return strings.Join(labels, ".")
}
