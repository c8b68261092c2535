package analyzer

import (
	"strings"
	"unicode/utf8"
)

// MaxQueryLength bounds the trimmed query. Anything a user would paste as a
// company name or URL fits well under this.
const MaxQueryLength = 500

// ValidateQuery trims the raw input and checks its bounds. It performs no
// other normalization: "Stripe" and "stripe.com" are both valid opaque
// identifiers and the model, not this function, interprets them.
func ValidateQuery(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", invalidQuery("empty")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return "", invalidQuery("too_long")
	}
	return query, nil
}
