package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

// HandleStart renders the landing page.
func HandleStart(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	return c.Render("index", fiber.Map{
		"Title":      "Appetyte - Daily Tiffin, Zero Hassle",
		"IsLoggedIn": uc.IsLoggedIn,
		"Name":       uc.Name,
	})
}

// HandleProviderPage renders a provider's public ordering page shell. The
// slug identifies the tenant; customers sign up and log in from here.
func HandleProviderPage(c *fiber.Ctx) error {
	provider, err := repository.GetGlobalRepositories().Provider.GetBySlug(c.Params("slug"))
	if err != nil {
		return businessError(c, err)
	}
	return c.Render("index", fiber.Map{
		"Title":    provider.BusinessName,
		"Provider": provider,
	})
}

// HandleHealth is the liveness endpoint.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
