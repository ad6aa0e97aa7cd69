package entity

import (
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// AllowedDomain is an email domain that may self-register.
type AllowedDomain struct {
	domain string
}

func NewAllowedDomain(raw string) (AllowedDomain, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return AllowedDomain{}, invalid(ErrInvalidDomain, "domain cannot be blank")
	}
	if !domainPattern.MatchString(normalized) {
		return AllowedDomain{}, invalid(ErrInvalidDomain, "invalid domain format: "+raw)
	}
	return AllowedDomain{domain: normalized}, nil
}

// NewAllowedDomains keeps the input order and fails on the first invalid entry.
func NewAllowedDomains(raws ...string) ([]AllowedDomain, error) {
	out := make([]AllowedDomain, 0, len(raws))
	for _, r := range raws {
		d, err := NewAllowedDomain(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Matches reports whether the email's domain equals this domain, ignoring case.
func (d AllowedDomain) Matches(email Email) bool {
	if email.IsZero() || d.domain == "" {
		return false
	}
	return strings.EqualFold(email.Domain(), d.domain)
}

func (d AllowedDomain) String() string { return d.domain }
