package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Ghanaian MSISDN in local format: 0 followed by nine digits
	ghanaPhoneRegex = regexp.MustCompile(`^0\d{9}$`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasNumber       = regexp.MustCompile(`[0-9]`)
)

// SanitizeString trims whitespace and escapes HTML special characters
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// ValidateEmail checks the email format
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidateGhanaPhone checks that the phone number is a valid Ghanaian number
// in local format (e.g. 0244123456)
func ValidateGhanaPhone(phone string) (bool, string) {
	if phone == "" {
		return false, "Phone number is required"
	}
	if !ghanaPhoneRegex.MatchString(phone) {
		return false, "Phone number must be 10 digits starting with 0"
	}
	return true, ""
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) {
		return false, "Password must contain both upper and lower case letters"
	}
	if !hasNumber.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, ""
}
