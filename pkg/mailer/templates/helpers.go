package templates

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Branding is the per-deployment part of every email.
type Branding struct {
	CompanyName string
	AppName     string
	LogoURL     string
	SupportURL  string
	LoginURL    string
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithLines(lines ...string) Option {
	return func(d *EmailData) { d.Lines = append(d.Lines, lines...) }
}

func WithAction(label, url string) Option {
	return func(d *EmailData) {
		if strings.TrimSpace(url) == "" {
			return
		}
		d.ActionLabel = label
		d.ActionURL = url
	}
}

var strict = bluemonday.StrictPolicy()

// SanitizeName strips markup from a user-supplied name. The result is plain
// text; entities bluemonday emits are decoded so the templates escape once.
func SanitizeName(name string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(name)))
}

// NewNoticeData fills branding and recipient, then applies opts.
func NewNoticeData(b Branding, name, email, headline string, opts ...Option) EmailData {
	d := EmailData{
		Name:        SanitizeName(name),
		Email:       email,
		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		LogoURL:     b.LogoURL,
		SupportURL:  b.SupportURL,
		Headline:    headline,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
