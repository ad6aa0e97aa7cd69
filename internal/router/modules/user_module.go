package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	handlers "github.com/oksasatya/schoollib-identity/internal/interface/http"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
)

// UserModule serves profile reads for the caller and the administrative
// profile operations. Everything requires a realm access token.
type UserModule struct {
	Handler  *handlers.UserHandler
	Verifier middleware.TokenVerifier
	RDB      *redis.Client
}

func NewUserModule(h *handlers.UserHandler, verifier middleware.TokenVerifier, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Verifier: verifier, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	staff := middleware.RequireRole(entity.RoleLibrarian.String(), entity.RoleAdmin.String())
	admin := middleware.RequireRole(entity.RoleAdmin.String())

	users := rg.Group("/users")
	users.Use(
		middleware.Auth(m.Verifier),
		middleware.RateLimit(m.RDB, middleware.PerMinute(120, middleware.KeyByUserID()), nil),
	)
	{
		users.GET("/me", m.Handler.Me)
		users.GET("/search", staff, m.Handler.Search)
		users.GET("/:id", staff, m.Handler.Get)
		users.PUT("/:id/role", admin, m.Handler.ChangeRole)
		users.POST("/:id/deactivate", admin, m.Handler.Deactivate)
		users.POST("/:id/reactivate", admin, m.Handler.Reactivate)
		users.PUT("/:id/name", admin, m.Handler.UpdateName)
		users.DELETE("/:id", admin, m.Handler.Delete)
	}
}
