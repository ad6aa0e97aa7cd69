package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oksasatya/schoollib-identity/internal/container"
	handlers "github.com/oksasatya/schoollib-identity/internal/interface/http"
	"github.com/oksasatya/schoollib-identity/internal/router/modules"
	"github.com/oksasatya/schoollib-identity/pkg/validation"
)

// InitModules builds the handlers from c and adds every feature module to r.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	validation.Init()

	r.Add(modules.NewRegistrationModule(
		handlers.NewRegistrationHandler(c.Registration, c.Logger),
		c.Redis,
	))
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(c.Auth, c.PasswordReset, c.Logger, cfg.CookieDomain, cfg.CookieSecure),
		c.Verifier,
		c.Redis,
	))
	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(c.UserProfiles, c.Logger),
		c.Verifier,
		c.Redis,
	))
	if cfg.DebugMetricsEnabled {
		var gatherer prometheus.Gatherer
		if c.Registry != nil {
			gatherer = c.Registry
		}
		r.Add(modules.NewDebugModule(gatherer, c.Redis))
	}
}
