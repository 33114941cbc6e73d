// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidRSVPStatus checks a submitted RSVP value.
func ValidRSVPStatus(status string) bool {
	switch status {
	case "pending", "yes", "no":
		return true
	}
	return false
}

// ValidContactMethod checks a preferred contact method value.
func ValidContactMethod(method string) bool {
	switch method {
	case "email", "text", "whatsapp", "phone_call", "none":
		return true
	}
	return false
}
