package places

import (
	"regexp"
	"strings"
)

// Postal codes in provider addresses are 3 to 5 digits.
var postalCodeRe = regexp.MustCompile(`\b\d{3,5}\b`)

// CleanAddress strips the postal code and the country prefix from a
// provider-formatted address, which read awkwardly in chat messages.
func CleanAddress(address string) string {
	if address == "" {
		return ""
	}
	cleaned := postalCodeRe.ReplaceAllString(address, "")
	cleaned = strings.ReplaceAll(cleaned, "臺灣", "")
	cleaned = strings.ReplaceAll(cleaned, "台灣", "")
	return strings.TrimSpace(cleaned)
}
