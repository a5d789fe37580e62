// Package strcase converts Go identifiers into the casing used on the wire.
package strcase

import (
	"strings"

	"github.com/samber/lo"
)

// ToLowerSnake converts an identifier or a dotted field path to snake_case.
//
// Each path segment is converted on its own, so "Contact.EmailAddress"
// becomes "contact.email_address".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	segments := strings.Split(s, ".")
	for i, seg := range segments {
		segments[i] = lo.SnakeCase(seg)
	}

	return strings.Join(segments, ".")
}
