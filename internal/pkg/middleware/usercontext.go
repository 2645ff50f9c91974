package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/internal/pkg/session"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := func() error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous()
	}

	actorID := sess.Get(usercontext.KeyActorID)
	if actorID == nil {
		return anonymous()
	}

	actorType, _ := sess.Get(usercontext.KeyActorType).(string)
	providerID, _ := sess.Get(usercontext.KeyProviderID).(uint)
	name, _ := sess.Get(usercontext.KeyName).(string)

	userCtx := usercontext.UserContext{
		ActorType:  actorType,
		ActorID:    actorID.(uint),
		ProviderID: providerID,
		Name:       name,
		IsLoggedIn: true,
	}
	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)

	return c.Next()
}
