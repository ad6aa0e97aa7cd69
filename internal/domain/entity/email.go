package entity

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Email is a validated, lowercased email address. The zero value is not a
// valid email; build one with NewEmail.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, invalid(ErrInvalidEmail, "email cannot be blank")
	}
	if !emailPattern.MatchString(trimmed) {
		return Email{}, invalid(ErrInvalidEmail, "invalid email format: "+trimmed)
	}
	return Email{value: strings.ToLower(trimmed)}, nil
}

// MustEmail panics on invalid input. Intended for tests and constants.
func MustEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

// Domain returns the part after the '@'.
func (e Email) Domain() string {
	at := strings.LastIndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[at+1:]
}
