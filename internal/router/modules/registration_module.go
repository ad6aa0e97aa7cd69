package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/schoollib-identity/internal/interface/http"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
)

// RegistrationModule serves public self-registration:
// POST /registration, GET /registration/check-email
type RegistrationModule struct {
	Handler *handlers.RegistrationHandler
	RDB     *redis.Client
}

func NewRegistrationModule(h *handlers.RegistrationHandler, rdb *redis.Client) *RegistrationModule {
	return &RegistrationModule{Handler: h, RDB: rdb}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(10, middleware.KeyByIP()), nil)
	checkLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(30, middleware.KeyByIP()), nil)

	rg.POST("/registration", registerLimiter, m.Handler.Register)
	rg.GET("/registration/check-email", checkLimiter, m.Handler.CheckEmail)
}
