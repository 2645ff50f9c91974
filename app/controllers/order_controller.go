package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/ordering"
	"github.com/appetyte/appetyte/internal/pkg/realtime"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type placeOrderRequest struct {
	MealID          uint   `json:"meal_id"`
	SelectedOption  string `json:"selected_option"`
	DeliveryAddress string `json:"delivery_address"`
	Notes           string `json:"notes"`
}

// HandlePlaceOrder places an order for the authenticated customer. The
// balance debit, order insert and ledger entry happen in one transaction;
// on any failure nothing is persisted.
func HandlePlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.MealID == 0 || req.SelectedOption == "" || req.DeliveryAddress == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed",
			"meal_id, selected_option and delivery_address are required")
	}

	order, err := getOrderingService().PlaceOrder(c.Context(), ordering.PlaceOrderInput{
		CustomerID:      usercontext.GetActorID(c),
		ProviderID:      usercontext.GetProviderID(c),
		MealID:          req.MealID,
		SelectedOption:  req.SelectedOption,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}, ordering.ActorCustomer)
	if err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "orders", Action: realtime.ActionInsert,
		ProviderID: order.ProviderID, CustomerID: order.CustomerID,
		Payload: order,
	})

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleCancelOrder cancels an order and refunds the customer atomically.
// Customers are bound by the pre-cutoff lockout window; providers can cancel
// any non-terminal order.
func HandleCancelOrder(c *fiber.Ctx) error {
	orderUUID := c.Params("uuid")
	if orderUUID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "missing order uuid")
	}

	repos := repository.GetGlobalRepositories()
	order, err := repos.Order.GetByUUID(orderUUID)
	if err != nil {
		return businessError(c, err)
	}

	actor := ordering.ActorProvider
	if usercontext.IsCustomer(c) {
		actor = ordering.ActorCustomer
		if order.CustomerID != usercontext.GetActorID(c) {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "not your order")
		}
	} else if order.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your order")
	}

	canceled, err := getOrderingService().CancelOrder(c.Context(), orderUUID, actor)
	if err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "orders", Action: realtime.ActionUpdate,
		ProviderID: canceled.ProviderID, CustomerID: canceled.CustomerID,
		Payload: canceled,
	})

	return c.JSON(canceled)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// HandleAdvanceOrderStatus moves an order one step along the delivery
// progression. Cancellation is not accepted here; it has its own endpoint
// because it also refunds.
func HandleAdvanceOrderStatus(c *fiber.Ctx) error {
	orderUUID := c.Params("uuid")

	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	order, err := repository.GetGlobalRepositories().Order.GetByUUID(orderUUID)
	if err != nil {
		return businessError(c, err)
	}
	if order.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your order")
	}

	updated, err := getOrderingService().AdvanceOrderStatus(c.Context(), orderUUID, req.Status)
	if err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "orders", Action: realtime.ActionUpdate,
		ProviderID: updated.ProviderID, CustomerID: updated.CustomerID,
		Payload: updated,
	})

	return c.JSON(updated)
}

// HandleProviderOrders lists a provider's orders for a date (default today).
func HandleProviderOrders(c *fiber.Ctx) error {
	date := c.Query("date", today())
	orders, err := repository.GetGlobalRepositories().Order.
		ListByProviderAndDate(usercontext.GetProviderID(c), date)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(orders)
}

// HandleProviderCanceledOrders lists a provider's canceled orders, newest
// first.
func HandleProviderCanceledOrders(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	orders, err := repository.GetGlobalRepositories().Order.
		ListCanceledByProvider(usercontext.GetProviderID(c), offset, limit)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(orders)
}

// HandleCustomerOrders lists the authenticated customer's order history,
// newest first.
func HandleCustomerOrders(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	orders, err := repository.GetGlobalRepositories().Order.
		ListByCustomer(usercontext.GetActorID(c), offset, limit)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(orders)
}

// HandleCustomerTransactions lists the customer's balance ledger, newest
// first.
func HandleCustomerTransactions(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	txns, err := repository.GetGlobalRepositories().Transaction.
		ListByCustomer(usercontext.GetActorID(c), offset, limit)
	if err != nil {
		return businessError(c, err)
	}
	if txns == nil {
		txns = []models.BalanceTransaction{}
	}
	return c.JSON(txns)
}
