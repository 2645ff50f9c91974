package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type providerSettingsRequest struct {
	BusinessName string   `json:"business_name"`
	Phone        string   `json:"phone"`
	DeliveryMode string   `json:"delivery_mode"`
	Timezone     string   `json:"timezone"`
	BalanceFloor *float64 `json:"balance_floor"`
}

// HandleGetProviderSettings returns the authenticated provider's profile.
func HandleGetProviderSettings(c *fiber.Ctx) error {
	provider, err := repository.GetGlobalRepositories().Provider.
		GetByID(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(provider)
}

// HandleUpdateProviderSettings edits the provider profile, including the
// delivery mode switch and the balance floor.
func HandleUpdateProviderSettings(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	provider, err := repos.Provider.GetByID(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}

	var req providerSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.BusinessName != "" {
		provider.BusinessName = req.BusinessName
	}
	if req.Phone != "" {
		provider.Phone = req.Phone
	}
	if req.DeliveryMode != "" {
		if req.DeliveryMode != models.DELIVERY_MODE_CUSTOM && req.DeliveryMode != models.DELIVERY_MODE_FIXED {
			return jsonError(c, fiber.StatusBadRequest, "validation_failed",
				"delivery_mode must be custom or fixed")
		}
		provider.DeliveryMode = req.DeliveryMode
	}
	if req.Timezone != "" {
		provider.Timezone = req.Timezone
	}
	if req.BalanceFloor != nil {
		provider.BalanceFloor = req.BalanceFloor
	}
	if err := provider.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.Provider.Update(provider); err != nil {
		return businessError(c, err)
	}
	return c.JSON(provider)
}

type deliveryAddressRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// HandleCreateDeliveryAddress adds an entry to the provider's fixed address
// list.
func HandleCreateDeliveryAddress(c *fiber.Ctx) error {
	var req deliveryAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	address := &models.DeliveryAddress{
		ProviderID: usercontext.GetProviderID(c),
		Name:       req.Name,
		Address:    req.Address,
	}
	if err := address.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().DeliveryAddress.Create(address); err != nil {
		return businessError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleListDeliveryAddresses lists the provider's fixed address list.
// Customers of the provider may read it too, to pick an address when the
// provider runs in fixed mode.
func HandleListDeliveryAddresses(c *fiber.Ctx) error {
	addresses, err := repository.GetGlobalRepositories().DeliveryAddress.
		ListByProvider(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(addresses)
}

// HandleUpdateDeliveryAddress edits a fixed address entry.
func HandleUpdateDeliveryAddress(c *fiber.Ctx) error {
	addressID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid address id")
	}

	repos := repository.GetGlobalRepositories()
	address, err := repos.DeliveryAddress.GetByID(addressID)
	if err != nil {
		return businessError(c, err)
	}
	if address.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your address")
	}

	var req deliveryAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Name != "" {
		address.Name = req.Name
	}
	if req.Address != "" {
		address.Address = req.Address
	}
	if err := address.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.DeliveryAddress.Update(address); err != nil {
		return businessError(c, err)
	}
	return c.JSON(address)
}

// HandleDeleteDeliveryAddress removes a fixed address entry. Existing orders
// keep the address text they were placed with.
func HandleDeleteDeliveryAddress(c *fiber.Ctx) error {
	addressID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid address id")
	}

	repos := repository.GetGlobalRepositories()
	address, err := repos.DeliveryAddress.GetByID(addressID)
	if err != nil {
		return businessError(c, err)
	}
	if address.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your address")
	}

	if err := repos.DeliveryAddress.Delete(address.ID); err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"message": "address deleted"})
}
