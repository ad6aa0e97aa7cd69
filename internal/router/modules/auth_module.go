package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/schoollib-identity/internal/interface/http"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
)

type AuthModule struct {
	Handler  *handlers.AuthHandler
	Verifier middleware.TokenVerifier
	RDB      *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, verifier middleware.TokenVerifier, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Verifier: verifier, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(10, middleware.KeyByIP()), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(60, middleware.KeyByIP()), nil)
	resetRequestLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(5, middleware.KeyByIPAndPath()), nil)
	resetLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(30, middleware.KeyByIPAndPath()), nil)

	auth := rg.Group("/auth")
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/allowed-domains", m.Handler.AllowedDomains)
	auth.POST("/password/reset-request", resetRequestLimiter, m.Handler.RequestPasswordReset)
	auth.POST("/password/reset", resetLimiter, middleware.Auth(m.Verifier), m.Handler.ResetPassword)
}
