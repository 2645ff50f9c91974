package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/session"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type providerSignupRequest struct {
	BusinessName string `json:"business_name"`
	Slug         string `json:"slug"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type providerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerSignupRequest struct {
	MobileNumber string `json:"mobile_number"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Password     string `json:"password"`
}

type customerLoginRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

// HandleProviderSignup registers a new tiffin business and logs it in.
func HandleProviderSignup(c *fiber.Ctx) error {
	var req providerSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalRepositories().Provider

	taken, err := repo.SlugExists(req.Slug)
	if err != nil {
		return businessError(c, err)
	}
	if taken {
		return jsonError(c, fiber.StatusConflict, "business_name_taken",
			"This business name is already taken. Please choose another one.")
	}

	if exists, err := repo.EmailExists(req.Email); err != nil {
		return businessError(c, err)
	} else if exists {
		return jsonError(c, fiber.StatusConflict, "email_taken",
			"An account with this email already exists.")
	}

	provider, err := models.CreateProvider(req.BusinessName, req.Slug, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repo.Create(provider); err != nil {
		return businessError(c, err)
	}

	if err := startSession(c, usercontext.ActorProvider, provider.ID, provider.ID, provider.BusinessName); err != nil {
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(provider)
}

// HandleProviderLogin authenticates a provider by email and password.
func HandleProviderLogin(c *fiber.Ctx) error {
	var req providerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalRepositories().Provider

	// notice: do not leak whether the email or the password was wrong
	provider, err := repo.GetByEmail(req.Email)
	if err != nil || !provider.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed",
			"There is a problem with the login process")
	}

	if err := startSession(c, usercontext.ActorProvider, provider.ID, provider.ID, provider.BusinessName); err != nil {
		return businessError(c, err)
	}

	now := time.Now()
	provider.LastLoginAt = &now
	_ = repo.Update(provider)

	return c.JSON(provider)
}

// HandleCustomerSignup registers a customer at the provider addressed by
// slug. If the provider already created a record for the mobile number, the
// signup claims it by setting the password.
func HandleCustomerSignup(c *fiber.Ctx) error {
	var req customerSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repos := repository.GetGlobalRepositories()

	provider, err := repos.Provider.GetBySlug(c.Params("slug"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown provider")
	}

	existing, err := repos.Customer.GetByMobile(provider.ID, req.MobileNumber)
	switch {
	case err == nil && existing.Password != "":
		return jsonError(c, fiber.StatusConflict, "mobile_taken",
			"An account with this mobile number already exists.")
	case err == nil:
		// Admin-side record without a password: claim it.
		if err := existing.SetPassword(req.Password); err != nil {
			return businessError(c, err)
		}
		if req.Address != "" {
			existing.Address = req.Address
		}
		if err := repos.Customer.Update(existing); err != nil {
			return businessError(c, err)
		}
		if err := startSession(c, usercontext.ActorCustomer, existing.ID, provider.ID, existing.Name); err != nil {
			return businessError(c, err)
		}
		return c.JSON(existing)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return businessError(c, err)
	}

	customer, err := models.CreateCustomer(provider.ID, req.MobileNumber, req.Name, req.Address, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repos.Customer.Create(customer); err != nil {
		return businessError(c, err)
	}

	if err := startSession(c, usercontext.ActorCustomer, customer.ID, provider.ID, customer.Name); err != nil {
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleCustomerLogin authenticates a customer by mobile number within the
// provider addressed by slug.
func HandleCustomerLogin(c *fiber.Ctx) error {
	var req customerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repos := repository.GetGlobalRepositories()

	provider, err := repos.Provider.GetBySlug(c.Params("slug"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown provider")
	}

	customer, err := repos.Customer.GetByMobile(provider.ID, req.MobileNumber)
	if err != nil || !customer.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed",
			"There is a problem with the login process")
	}

	if err := startSession(c, usercontext.ActorCustomer, customer.ID, provider.ID, customer.Name); err != nil {
		return businessError(c, err)
	}

	return c.JSON(customer)
}

// HandleLogout destroys the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	c.Locals(usercontext.KeyFromProtected, false)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// HandleMe returns the authenticated actor.
func HandleMe(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	repos := repository.GetGlobalRepositories()
	if ctx.ActorType == usercontext.ActorProvider {
		provider, err := repos.Provider.GetByID(ctx.ActorID)
		if err != nil {
			return businessError(c, err)
		}
		return c.JSON(fiber.Map{"actor_type": ctx.ActorType, "provider": provider})
	}

	customer, err := repos.Customer.GetByID(ctx.ActorID)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"actor_type": ctx.ActorType, "customer": customer})
}

func startSession(c *fiber.Ctx, actorType string, actorID, providerID uint, name string) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyActorType, actorType)
	sess.Set(usercontext.KeyActorID, actorID)
	sess.Set(usercontext.KeyProviderID, providerID)
	sess.Set(usercontext.KeyName, name)

	return sess.Save()
}
