package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext represents the authenticated actor for a request: either a
// provider (tenant owner) or one of its customers. ProviderID is always the
// tenant: for providers it equals ActorID.
type UserContext struct {
	ActorType  string `json:"actor_type"`
	ActorID    uint   `json:"actor_id"`
	ProviderID uint   `json:"provider_id"`
	Name       string `json:"name"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals("USER_CONTEXT"); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current request carries an authenticated session
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsProvider checks if the current actor is a provider
func IsProvider(c *fiber.Ctx) bool {
	ctx := GetUserContext(c)
	return ctx.IsLoggedIn && ctx.ActorType == ActorProvider
}

// IsCustomer checks if the current actor is a customer
func IsCustomer(c *fiber.Ctx) bool {
	ctx := GetUserContext(c)
	return ctx.IsLoggedIn && ctx.ActorType == ActorCustomer
}

// GetActorID returns the current actor's ID, or 0 if not logged in
func GetActorID(c *fiber.Ctx) uint {
	return GetUserContext(c).ActorID
}

// GetProviderID returns the tenant provider ID for the request, or 0
func GetProviderID(c *fiber.Ctx) uint {
	return GetUserContext(c).ProviderID
}
