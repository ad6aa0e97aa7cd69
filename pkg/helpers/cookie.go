package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieManager writes the identity provider's tokens as HttpOnly cookies.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookieManager(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetTokens stores both tokens; lifetimes are in seconds as issued.
func (m *CookieManager) SetTokens(c *gin.Context, access string, accessTTL int64, refresh string, refreshTTL int64) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, access, maxAge(accessTTL), "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshTokenCookie, refresh, maxAge(refreshTTL), "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAge(seconds int64) int {
	if seconds <= 0 {
		return 0
	}
	if d := time.Duration(seconds) * time.Second; d > 365*24*time.Hour {
		return int((365 * 24 * time.Hour).Seconds())
	}
	return int(seconds)
}
