package message

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

const (
	// smsScheme is the URI scheme of outbound text messages.
	smsScheme = "sms"
	// bodyParam is the query parameter carrying the message text.
	bodyParam = "body"
	// upperHex is used for percent-encoding.
	upperHex = "0123456789ABCDEF"
)

// BuildSMSURI returns sms:<contact>?body=<percent-encoded body>.
// Only RFC 3986 unreserved characters are left unescaped in the body, so
// "Emergency! I need help." becomes "Emergency%21%20I%20need%20help.".
func BuildSMSURI(contact, body string) (string, error) {
	if err := validateContact(contact); err != nil {
		return "", err
	}

	return smsScheme + ":" + contact + "?" + bodyParam + "=" + escapeQueryValue(body), nil
}

// ParseSMSURI is the inverse of BuildSMSURI.
func ParseSMSURI(uri string) (contact string, body string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse uri: %w: %w", safety.ErrInvalidInput, err)
	}

	if u.Scheme != smsScheme {
		return "", "", fmt.Errorf("scheme %q: %w", u.Scheme, safety.ErrInvalidInput)
	}

	if err = validateContact(u.Opaque); err != nil {
		return "", "", err
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", "", fmt.Errorf("parse query: %w: %w", safety.ErrInvalidInput, err)
	}

	return u.Opaque, query.Get(bodyParam), nil
}

// validateContact rejects contacts that would produce a malformed URI.
func validateContact(contact string) error {
	if contact == "" {
		return fmt.Errorf("empty contact: %w", safety.ErrInvalidInput)
	}

	if strings.ContainsAny(contact, "?#/%&= \t\r\n") {
		return fmt.Errorf("contact %q contains reserved characters: %w", contact, safety.ErrInvalidInput)
	}

	return nil
}

// escapeQueryValue percent-encodes everything except unreserved characters.
func escapeQueryValue(s string) string {
	var b strings.Builder

	b.Grow(len(s) * 3)

	for i := range len(s) {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)

			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}

	return b.String()
}

// isUnreserved reports whether c is ALPHA / DIGIT / "-" / "." / "_" / "~".
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}
