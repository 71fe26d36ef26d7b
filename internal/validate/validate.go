package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError is a single validation failure, serialized verbatim in 400
// responses so clients can attach messages to form fields.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates every failed check for one request body.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func Email(address string) bool {
	addr, err := mail.ParseAddress(address)
	return err == nil && addr.Address == address
}

func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Password enforces the minimum-strength policy: at least 8 characters with
// upper case, lower case, a digit and a special character.
func Password(password string) error {
	if len(password) < 8 {
		return FieldError{Field: "password", Message: "must be at least 8 characters long"}
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if !upper || !lower || !digit || !special {
		return FieldError{
			Field:   "password",
			Message: "must contain upper case, lower case, a digit and a special character",
		}
	}
	return nil
}

var genders = map[string]struct{}{
	"Male":              {},
	"Female":            {},
	"Other":             {},
	"Prefer not to say": {},
}

func Gender(gender string) bool {
	_, ok := genders[gender]
	return ok
}

const maxBioLength = 250

// Bio caps profile bios at 250 characters, counted as runes so multibyte
// text is not penalized.
func Bio(bio string) error {
	if utf8.RuneCountInString(bio) > maxBioLength {
		return FieldError{Field: "bio", Message: "must be less than 250 characters"}
	}
	return nil
}
