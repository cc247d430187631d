// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MinApplicationMessageLen is the minimum length of the free-text message an
// applicant must provide when applying to adopt a pet.
const MinApplicationMessageLen = 50

// MaxApplicationMessageLen bounds the message to keep payloads reasonable.
const MaxApplicationMessageLen = 5000

var phoneCharsRegexp = regexp.MustCompile(`^\+?[0-9()./\-\s]+$`)

// ValidateApplicationMessage checks the adoption motivation text.
func ValidateApplicationMessage(message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return fmt.Errorf("application message is required")
	}
	if len(trimmed) < MinApplicationMessageLen {
		return fmt.Errorf("application message must be at least %d characters long", MinApplicationMessageLen)
	}
	if len(trimmed) > MaxApplicationMessageLen {
		return fmt.Errorf("application message must not exceed %d characters", MaxApplicationMessageLen)
	}
	return nil
}

// ValidatePhone checks a contact phone number. Accepts common formatting
// characters ("+1 (555) 123-4567") but requires 7 to 15 digits overall.
func ValidatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return fmt.Errorf("contact phone is required")
	}
	if !phoneCharsRegexp.MatchString(trimmed) {
		return fmt.Errorf("contact phone contains invalid characters")
	}

	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return fmt.Errorf("contact phone must contain between 7 and 15 digits")
	}
	return nil
}

// ValidateOtherPetsDetails checks the conditional other-pets description:
// required and non-empty when hasOtherPets is set, absent otherwise.
func ValidateOtherPetsDetails(hasOtherPets bool, details *string) error {
	if hasOtherPets {
		if details == nil || strings.TrimSpace(*details) == "" {
			return fmt.Errorf("please describe your other pets")
		}
		return nil
	}
	if details != nil && strings.TrimSpace(*details) != "" {
		return fmt.Errorf("other pets details must be empty when you have no other pets")
	}
	return nil
}
