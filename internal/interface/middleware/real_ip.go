package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxRealIPKey    = "real_ip"
	CtxRequestIDKey = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RealIP stores the client IP under "real_ip". Order: CF-Connecting-IP,
// left-most X-Forwarded-For, then gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}

// RequestID reuses a well-formed incoming X-Request-ID or generates one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AllowPrivateIP bypasses limits for loopback and RFC 1918 callers.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return IsPrivateIP(ipFromCtx(c))
	}
}

func IsPrivateIP(raw string) bool {
	ip := net.ParseIP(raw)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}

// PrivateOnly rejects callers outside private networks with 404.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsPrivateIP(ipFromCtx(c)) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}
