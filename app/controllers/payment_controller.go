package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/realtime"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type paymentRequest struct {
	Amount      float64 `json:"amount"`
	ReferenceID string  `json:"reference_id"`
}

// HandleCreatePayment records a pending top-up for the authenticated
// customer. The balance is untouched until the provider confirms receipt.
func HandleCreatePayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	payment := &models.Payment{
		CustomerID:  usercontext.GetActorID(c),
		ProviderID:  usercontext.GetProviderID(c),
		Amount:      req.Amount,
		Status:      models.PAYMENT_STATUS_PENDING,
		ReferenceID: req.ReferenceID,
	}
	if err := payment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().Payment.Create(payment); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "payments", Action: realtime.ActionInsert,
		ProviderID: payment.ProviderID, CustomerID: payment.CustomerID,
		Payload: payment,
	})

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleMarkPaymentPaid settles a pending payment: the status change, the
// balance credit and the ledger row are committed together.
func HandleMarkPaymentPaid(c *fiber.Ctx) error {
	return settlePayment(c, models.PAYMENT_STATUS_PAID)
}

// HandleMarkPaymentFailed closes a pending payment without crediting.
func HandleMarkPaymentFailed(c *fiber.Ctx) error {
	return settlePayment(c, models.PAYMENT_STATUS_FAILED)
}

func settlePayment(c *fiber.Ctx, status string) error {
	paymentID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid payment id")
	}

	payment, err := repository.GetGlobalRepositories().Payment.GetByID(paymentID)
	if err != nil {
		return businessError(c, err)
	}
	if payment.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your payment")
	}

	svc := getOrderingService()
	var settled *models.Payment
	if status == models.PAYMENT_STATUS_PAID {
		settled, err = svc.MarkPaymentPaid(c.Context(), payment.ID)
	} else {
		settled, err = svc.MarkPaymentFailed(c.Context(), payment.ID)
	}
	if err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "payments", Action: realtime.ActionUpdate,
		ProviderID: settled.ProviderID, CustomerID: settled.CustomerID,
		Payload: settled,
	})

	return c.JSON(settled)
}

// HandleProviderPayments lists the provider's payments, optionally filtered
// by ?status=pending|paid|failed.
func HandleProviderPayments(c *fiber.Ctx) error {
	payments, err := repository.GetGlobalRepositories().Payment.
		ListByProvider(usercontext.GetProviderID(c), c.Query("status"))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(payments)
}

// HandleCustomerPayments lists the authenticated customer's payment history.
func HandleCustomerPayments(c *fiber.Ctx) error {
	payments, err := repository.GetGlobalRepositories().Payment.
		ListByCustomer(usercontext.GetActorID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(payments)
}
