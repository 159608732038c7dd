package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips formatting characters and ensures a leading
// country code. Bare 10-digit numbers are assumed to be US/Canada.
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	digits = strings.TrimLeft(digits, "0")
	if len(digits) == 10 {
		digits = "1" + digits
	}
	return digits
}

// ValidatePhoneNumber accepts E.164-shaped numbers: 10 to 15 digits after
// stripping formatting.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	return len(cleaned) >= 10 && len(cleaned) <= 15
}

// NormalizePhoneNumber normalizes a phone number for database storage.
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}
