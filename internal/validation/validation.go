// Package validation holds the presence and format rules for form input.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid matches every *Error via errors.Is.
var ErrInvalid = errors.New("invalid input")

// Client-facing messages.
const (
	MsgContactRequired     = "All required fields (Name, Email, Subject, Message) are missing."
	MsgApplicationRequired = "All required fields must be filled."
	MsgInvalidEmail        = "Invalid email format."
	MsgInvalidPhone        = "Invalid phone number format."
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// Error is a client-caused input failure. Message is safe to show.
type Error struct {
	Field   string
	Message string
}

// New builds a validation error.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is reports ErrInvalid so callers can classify without a type switch.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// Required fails with message on the first field that is blank after trimming.
func Required(message string, fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return New(f.Name, message)
		}
	}
	return nil
}

// Contact checks the contact form. The email is not format-checked.
func Contact(name, email, subject, message string) error {
	return Required(MsgContactRequired,
		Field{"name", name},
		Field{"email", email},
		Field{"subject", subject},
		Field{"message", message},
	)
}

// ApplicationRequired checks that every application field is present.
func ApplicationRequired(fields ...Field) error {
	return Required(MsgApplicationRequired, fields...)
}

// Email checks the loose local@domain.tld shape.
func Email(s string) error {
	if !emailPattern.MatchString(s) {
		return New("email", MsgInvalidEmail)
	}
	return nil
}

// Phone checks for a 10 digit mobile number starting with 6-9.
func Phone(s string) error {
	if !phonePattern.MatchString(s) {
		return New("phone", MsgInvalidPhone)
	}
	return nil
}

// Message returns the client-facing text of a validation error, or "" if
// err is not one.
func Message(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	return ""
}
