package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errStoreMissing   = New(CodeNotFound, "user profile not found")
	errProfileMissing = New(CodeNotFound, "user profile not found")
	errRoleMissing    = New(CodeNotFound, "role not found")
)

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("find: %w", Wrap(errors.New("no rows"), CodeNotFound, "user profile not found"))

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same sentinel", errStoreMissing, errStoreMissing, true},
		{"sentinels with equal code and message match", errStoreMissing, errProfileMissing, true},
		{"same code, different message", errStoreMissing, errRoleMissing, false},
		{"target without message matches any message", errRoleMissing, New(CodeNotFound, ""), true},
		{"different code", errStoreMissing, New(CodeConflict, "user profile not found"), false},
		{"wrapped in fmt chain", wrapped, errProfileMissing, true},
		{"plain error target", errStoreMissing, errors.New("user profile not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New(CodeInvalidCredentials, "invalid email or password")
	outer := Wrap(fmt.Errorf("login: %w", inner), CodeProvider, "identity provider request failed")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"outer code", outer, CodeProvider, true},
		{"code further down the chain", outer, CodeInvalidCredentials, true},
		{"absent code", outer, CodeNotFound, false},
		{"plain error", errors.New("boom"), CodeInternal, false},
		{"nil", nil, CodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCode(tt.err, tt.code))
		})
	}
}

func TestCodeOfAndMessageOf(t *testing.T) {
	inner := New(CodeInvalidCredentials, "invalid email or password")
	outer := fmt.Errorf("handler: %w", Wrap(inner, CodeProvider, "identity provider request failed"))

	assert.Equal(t, CodeProvider, CodeOf(outer))
	assert.Equal(t, "identity provider request failed", MessageOf(outer))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, "", MessageOf(errors.New("boom")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not here", New(CodeNotFound, "not here").Error())
	assert.Equal(t, "provider down: 503", Wrap(errors.New("503"), CodeProvider, "provider down").Error())
	assert.Equal(t, "role STUDENT missing", Newf(CodeNotFound, "role %s missing", "STUDENT").Error())
}
