package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
)

// DebugModule exposes Prometheus metrics and expvar. Private callers are not
// rate limited.
type DebugModule struct {
	Gatherer prometheus.Gatherer
	RDB      *redis.Client
}

func NewDebugModule(g prometheus.Gatherer, rdb *redis.Client) *DebugModule {
	return &DebugModule{Gatherer: g, RDB: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, middleware.PerMinute(120, middleware.KeyByIP()), middleware.AllowPrivateIP())
	if m.Gatherer != nil {
		rg.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
	}
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
