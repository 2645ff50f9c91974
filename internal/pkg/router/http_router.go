package router

import (
	"github.com/appetyte/appetyte/app/controllers"
	"github.com/appetyte/appetyte/internal/pkg/middleware"
	"github.com/appetyte/appetyte/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", controllers.HandleStart)
	app.Get("/health", controllers.HandleHealth)

	// Tenant ordering page, addressed by provider slug
	app.Get("/p/:slug", controllers.HandleProviderPage)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
