package validation

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// Field limits for contact records.
const (
	MaxNameLength  = 255
	MaxEmailLength = 320 // 64 (local) + 1 (@) + 255 (domain)
	MaxPhoneLength = 20  // E.164 plus separators
)

var nameFields = []string{"first_name", "last_name", "business_name"}

// Contact checks the well-known fields of a contact record. Unknown fields and
// non-string values are left to the API.
func Contact(record map[string]any) error {
	for _, key := range nameFields {
		if s, ok := record[key].(string); ok {
			if err := maxLength(key, s, MaxNameLength); err != nil {
				return err
			}
		}
	}
	if email, ok := record["email"].(string); ok {
		if err := Email(email); err != nil {
			return err
		}
	}
	if phone, ok := record["phone"].(string); ok {
		if err := Phone(phone); err != nil {
			return err
		}
	}
	return nil
}

// Email validates the length and format of an address. Empty is allowed.
func Email(email string) error {
	if email == "" {
		return nil
	}
	if err := maxLength("email", email, MaxEmailLength); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email %q: %w", email, err)
	}
	if addr.Name != "" {
		return fmt.Errorf("invalid email %q: use a bare address", email)
	}
	return nil
}

// Phone allows digits, spaces, dashes, dots, parentheses and a leading +.
// Empty is allowed.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if err := maxLength("phone", phone, MaxPhoneLength); err != nil {
		return err
	}
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ', r == '-', r == '.', r == '(', r == ')':
		default:
			return fmt.Errorf("invalid phone %q: contains invalid character '%c'", phone, r)
		}
	}
	if digits == 0 {
		return fmt.Errorf("invalid phone %q: no digits", phone)
	}
	return nil
}

func maxLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%s exceeds maximum length of %d characters (got %d)", field, limit, n)
	}
	return nil
}
