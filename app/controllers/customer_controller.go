package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type customerRequest struct {
	MobileNumber string `json:"mobile_number"`
	Name         string `json:"name"`
	Address      string `json:"address"`
}

// HandleCreateCustomer lets a provider register a customer record without a
// password. The customer claims the record on first signup with the same
// mobile number.
func HandleCreateCustomer(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	providerID := usercontext.GetProviderID(c)
	repos := repository.GetGlobalRepositories()

	if _, err := repos.Customer.GetByMobile(providerID, req.MobileNumber); err == nil {
		return jsonError(c, fiber.StatusConflict, "customer_exists",
			"A customer with this mobile number already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return businessError(c, err)
	}

	customer, err := models.CreateCustomer(providerID, req.MobileNumber, req.Name, req.Address, "")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repos.Customer.Create(customer); err != nil {
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleListCustomers pages through the provider's customers. An optional
// q= parameter searches by name or mobile number.
func HandleListCustomers(c *fiber.Ctx) error {
	providerID := usercontext.GetProviderID(c)
	repos := repository.GetGlobalRepositories()

	if query := c.Query("q"); query != "" {
		customers, err := repos.Customer.Search(providerID, query)
		if err != nil {
			return businessError(c, err)
		}
		return c.JSON(customers)
	}

	offset, limit := pagination(c)
	customers, err := repos.Customer.ListByProvider(providerID, offset, limit)
	if err != nil {
		return businessError(c, err)
	}
	total, err := repos.Customer.CountByProvider(providerID)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"total":     total,
		"offset":    offset,
		"limit":     limit,
	})
}

// HandleGetCustomer returns one of the provider's customers.
func HandleGetCustomer(c *fiber.Ctx) error {
	customer, err := providerCustomer(c)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

// HandleUpdateCustomer edits a customer's name and address.
func HandleUpdateCustomer(c *fiber.Ctx) error {
	customer, err := providerCustomer(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if err := customer.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().Customer.Update(customer); err != nil {
		return businessError(c, err)
	}
	return c.JSON(customer)
}

// HandleCustomerDues lists customers with a negative balance, the ones who
// owe the provider money.
func HandleCustomerDues(c *fiber.Ctx) error {
	customers, err := repository.GetGlobalRepositories().Customer.
		ListWithDues(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(customers)
}

// providerCustomer loads the :id customer and checks it belongs to the
// authenticated provider.
func providerCustomer(c *fiber.Ctx) (*models.Customer, error) {
	customerID, err := paramUint(c, "id")
	if err != nil {
		return nil, jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid customer id")
	}

	customer, err := repository.GetGlobalRepositories().Customer.GetByID(customerID)
	if err != nil {
		return nil, businessError(c, err)
	}
	if customer.ProviderID != usercontext.GetProviderID(c) {
		return nil, jsonError(c, fiber.StatusForbidden, "forbidden", "not your customer")
	}
	return customer, nil
}
