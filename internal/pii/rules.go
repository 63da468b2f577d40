package pii

import "regexp"

// detector pairs a category's matching rule with its redaction rule.
type detector struct {
	category Category
	pattern  *regexp.Regexp
	// token is the fixed replacement for a matched span. Email is special
	// cased in Sanitize: only the local part is replaced by the token.
	token string
	// groups marks patterns whose submatches are reported individually
	// instead of masked (phone: area code, prefix, line number).
	groups bool
}

// registry is the fixed, closed detector set. Iteration order is part of the
// contract: PIITypes/Details entries and sanitization passes follow it.
var registry = []detector{
	{
		category: CategoryEmail,
		pattern:  regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		token:    "[EMAIL_REDACTED]",
	},
	{
		category: CategoryPhone,
		pattern:  regexp.MustCompile(`(?i)\b(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})\b`),
		token:    "[PHONE_REDACTED]",
		groups:   true,
	},
	{
		category: CategorySSN,
		pattern:  regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		token:    "[SSN_REDACTED]",
	},
	{
		category: CategoryCreditCard,
		pattern:  regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
		token:    "[CARD_REDACTED]",
	},
	{
		// No octet range validation: 999.999.999.999 matches. Best effort,
		// not strict IPv4.
		category: CategoryIPAddress,
		pattern:  regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		token:    "[IP_ADDRESS_REDACTED]",
	},
	{
		category: CategoryAddress,
		pattern:  regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z]+\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b`),
		token:    "[ADDRESS_REDACTED]",
	},
}

// Categories returns the detector category names in registry order.
func Categories() []string {
	names := make([]string, 0, len(registry))
	for _, d := range registry {
		names = append(names, string(d.category))
	}
	return names
}
