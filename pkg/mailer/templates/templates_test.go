package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Max", SanitizeName("<b>Max</b>"))
	assert.Equal(t, "", SanitizeName(`<script>alert("x")</script>`))
	assert.Equal(t, "O'Neil & Sons", SanitizeName("O'Neil & Sons"))
}

func TestRenderSecurityNotice(t *testing.T) {
	data := NewNoticeData(
		Branding{CompanyName: "Gymnasium Library", SupportURL: "https://library.example/help"},
		"<img src=x onerror=alert(1)>Erika",
		"erika@schule.de",
		"Your password was changed",
		WithTime(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)),
		WithLines("The password for erika@schule.de was reset."),
		WithAction("Sign in", "https://library.example/login"),
	)

	subject, text, html, err := Render(SecurityNotice, data)
	require.NoError(t, err)

	assert.Equal(t, "Gymnasium Library: Your password was changed", subject)
	assert.Contains(t, text, "Hello Erika,")
	assert.Contains(t, text, "01 September 2026, 08:00 UTC")
	assert.Contains(t, text, "Sign in: https://library.example/login")
	assert.Contains(t, html, `href="https://library.example/login"`)
	assert.NotContains(t, html, "onerror")
}

func TestRenderDefaults(t *testing.T) {
	subject, text, _, err := Render(SecurityNotice, NewNoticeData(Branding{}, "", "x@schule.de", "Account deactivated"))
	require.NoError(t, err)
	assert.Equal(t, "School Library: Account deactivated", subject)
	assert.Contains(t, text, "Hello there,")
	assert.Contains(t, text, "the library staff")
}
