package entity

import "strings"

// ExternalUserID is the opaque identifier the identity provider assigned.
type ExternalUserID struct {
	value string
}

func NewExternalUserID(raw string) (ExternalUserID, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ExternalUserID{}, invalid(ErrInvalidExternalUserID, "external user id cannot be blank")
	}
	return ExternalUserID{value: v}, nil
}

func (id ExternalUserID) String() string { return id.value }

func (id ExternalUserID) IsZero() bool { return id.value == "" }
