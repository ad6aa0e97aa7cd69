package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	minNameLength = 2
	maxNameLength = 50
)

type UserName struct {
	firstName string
	lastName  string
}

// NewUserName trims both parts and requires each to be 2..50 characters.
func NewUserName(firstName, lastName string) (UserName, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" {
		return UserName{}, invalid(ErrInvalidUserName, "first name cannot be blank")
	}
	if last == "" {
		return UserName{}, invalid(ErrInvalidUserName, "last name cannot be blank")
	}
	if n := utf8.RuneCountInString(first); n < minNameLength || n > maxNameLength {
		return UserName{}, invalid(ErrInvalidUserName, "first name must be between 2 and 50 characters")
	}
	if n := utf8.RuneCountInString(last); n < minNameLength || n > maxNameLength {
		return UserName{}, invalid(ErrInvalidUserName, "last name must be between 2 and 50 characters")
	}
	return UserName{firstName: first, lastName: last}, nil
}

func (n UserName) FirstName() string { return n.firstName }
func (n UserName) LastName() string  { return n.lastName }

// FullName renders "First Last".
func (n UserName) FullName() string { return n.firstName + " " + n.lastName }

// FormalName renders "Last, First".
func (n UserName) FormalName() string { return n.lastName + ", " + n.firstName }

func (n UserName) String() string { return n.FullName() }
