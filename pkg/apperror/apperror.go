package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and for the HTTP boundary.
type Code string

const (
	CodeValidation          Code = "validation_error"
	CodeDomainNotAllowed    Code = "domain_not_allowed"
	CodeAlreadyRegistered   Code = "already_registered"
	CodeConflict            Code = "conflict"
	CodeInvalidCredentials  Code = "invalid_credentials"
	CodeInvalidRefreshToken Code = "invalid_refresh_token"
	CodeUserNotFound        Code = "user_not_found"
	CodePasswordReset       Code = "password_reset_failed"
	CodeProvider            Code = "provider_error"
	CodeIllegalState        Code = "illegal_state"
	CodeNotFound            Code = "not_found"
	CodeForbidden           Code = "forbidden"
	CodeInternal            Code = "internal_error"
)

// Error is the typed error that crosses layer boundaries. Err keeps the
// underlying cause for logging and is never rendered to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code, so package-level sentinels built with New
// can be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and a client-safe message to err.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func HasCode(err error, code Code) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Err
			continue
		}
		return false
	}
	return false
}

// MessageOf returns the client-safe message of the first *Error in the chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
