package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/StorePulse/StorePulse/app/controllers"
	"github.com/StorePulse/StorePulse/internal/pkg/middleware"
	"github.com/StorePulse/StorePulse/internal/pkg/oauth"
	"github.com/StorePulse/StorePulse/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerAuthRoutes(app)
	h.registerIntegrationRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerAuthRoutes(app *fiber.App) {
	// Password auth
	app.Post("/register", controllers.HandleRegister)
	app.Post("/login", controllers.HandleLogin)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)
	app.Get("/auth/status", controllers.HandleAuthStatus)

	// Google OAuth: ":provider" serves both the plain login provider and
	// the business-profile connect provider, one callback route for both.
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func (h HttpRouter) registerIntegrationRoutes(app *fiber.App) {
	integrations := app.Group("/integrations", middleware.RequireAuth)
	integrations.Get("/google/status", controllers.HandleIntegrationStatus)
	integrations.Delete("/google", controllers.HandleDisconnectIntegration)
}
