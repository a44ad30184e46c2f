package page

import (
	"regexp"

	"golang.org/x/net/html"
)

// SanitizeInput escapes text for safe literal insertion into markup. The
// result contains no live tags; parsing it back as markup text yields the
// original string.
func SanitizeInput(s string) string {
	return html.EscapeString(s)
}

var (
	// emailPattern: local part, "@", and a domain containing a dot. No
	// whitespace anywhere. A structural check, not full address
	// validation.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// phonePattern: 7 to 20 characters drawn from digits, spaces, "+",
	// "-", and parentheses.
	phonePattern = regexp.MustCompile(`^[0-9\s+\-()]{7,20}$`)
)

// IsValidEmail reports whether s looks like an email address: a local
// part, an "@", and a domain with at least one dot.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number: 7 to 20
// characters of digits, spaces, plus signs, hyphens, and parentheses.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
