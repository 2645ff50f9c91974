package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/realtime"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

// HandleRequestSubscription files a subscription request for the
// authenticated customer. A customer can only have one pending request per
// provider.
func HandleRequestSubscription(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	customerID := usercontext.GetActorID(c)
	providerID := usercontext.GetProviderID(c)

	if existing, err := repos.Subscription.GetPendingRequest(customerID, providerID); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "request_pending",
			"You already have a pending subscription request.")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return businessError(c, err)
	}

	if sub, err := repos.Subscription.GetActiveByCustomerAndProvider(customerID, providerID); err == nil && sub != nil {
		return jsonError(c, fiber.StatusConflict, "already_subscribed",
			"You already have an active subscription.")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return businessError(c, err)
	}

	request := &models.SubscriptionRequest{
		CustomerID: customerID,
		ProviderID: providerID,
		Status:     models.REQUEST_STATUS_PENDING,
	}
	if err := repos.Subscription.CreateRequest(request); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "subscription_requests", Action: realtime.ActionInsert,
		ProviderID: providerID, CustomerID: customerID,
		Payload: request,
	})

	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandlePendingRequests lists the provider's open subscription requests.
func HandlePendingRequests(c *fiber.Ctx) error {
	requests, err := repository.GetGlobalRepositories().Subscription.
		ListPendingRequests(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(requests)
}

type approveRequestBody struct {
	MealTypes          []string          `json:"meal_types"`
	StartDate          string            `json:"start_date"`
	EndDate            string            `json:"end_date"`
	AutoOrder          *bool             `json:"auto_order"`
	DeliveryAddressIDs map[string]string `json:"delivery_address_ids"`
}

// HandleApproveRequest approves a pending request and creates the
// subscription with the terms the provider set.
func HandleApproveRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request id")
	}

	repos := repository.GetGlobalRepositories()
	request, err := repos.Subscription.GetRequestByID(requestID)
	if err != nil {
		return businessError(c, err)
	}
	if request.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your request")
	}
	if !request.IsPending() {
		return jsonError(c, fiber.StatusConflict, "request_resolved",
			"This request has already been resolved.")
	}

	var body approveRequestBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	autoOrder := true
	if body.AutoOrder != nil {
		autoOrder = *body.AutoOrder
	}
	subscription := &models.Subscription{
		CustomerID:         request.CustomerID,
		ProviderID:         request.ProviderID,
		MealTypes:          models.StringList(body.MealTypes),
		StartDate:          body.StartDate,
		EndDate:            body.EndDate,
		Active:             true,
		AutoOrder:          autoOrder,
		DeliveryAddressIDs: models.StringMap(body.DeliveryAddressIDs),
	}
	if err := subscription.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.Subscription.Create(subscription); err != nil {
		return businessError(c, err)
	}
	if err := repos.Subscription.UpdateRequestStatus(request.ID, models.REQUEST_STATUS_APPROVED); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "subscriptions", Action: realtime.ActionInsert,
		ProviderID: subscription.ProviderID, CustomerID: subscription.CustomerID,
		Payload: subscription,
	})

	return c.Status(fiber.StatusCreated).JSON(subscription)
}

// HandleRejectRequest closes a pending request without creating a
// subscription.
func HandleRejectRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request id")
	}

	repos := repository.GetGlobalRepositories()
	request, err := repos.Subscription.GetRequestByID(requestID)
	if err != nil {
		return businessError(c, err)
	}
	if request.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your request")
	}
	if !request.IsPending() {
		return jsonError(c, fiber.StatusConflict, "request_resolved",
			"This request has already been resolved.")
	}

	if err := repos.Subscription.UpdateRequestStatus(request.ID, models.REQUEST_STATUS_REJECTED); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "subscription_requests", Action: realtime.ActionUpdate,
		ProviderID: request.ProviderID, CustomerID: request.CustomerID,
		Payload: fiber.Map{"id": request.ID, "status": models.REQUEST_STATUS_REJECTED},
	})

	return c.JSON(fiber.Map{"message": "request rejected"})
}

// HandleProviderSubscriptions lists all subscriptions of the provider.
func HandleProviderSubscriptions(c *fiber.Ctx) error {
	subs, err := repository.GetGlobalRepositories().Subscription.
		ListByProvider(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(subs)
}

// HandleCustomerSubscriptions lists the authenticated customer's
// subscriptions.
func HandleCustomerSubscriptions(c *fiber.Ctx) error {
	subs, err := repository.GetGlobalRepositories().Subscription.
		ListByCustomer(usercontext.GetActorID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(subs)
}

type subscriptionUpdateRequest struct {
	MealTypes          []string          `json:"meal_types"`
	StartDate          string            `json:"start_date"`
	EndDate            string            `json:"end_date"`
	AutoOrder          *bool             `json:"auto_order"`
	DeliveryAddressIDs map[string]string `json:"delivery_address_ids"`
}

// HandleUpdateSubscription edits a subscription's terms. Provider only.
func HandleUpdateSubscription(c *fiber.Ctx) error {
	subID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid subscription id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetByID(subID)
	if err != nil {
		return businessError(c, err)
	}
	if sub.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your subscription")
	}

	var req subscriptionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.MealTypes != nil {
		sub.MealTypes = models.StringList(req.MealTypes)
	}
	if req.StartDate != "" {
		sub.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		sub.EndDate = req.EndDate
	}
	if req.AutoOrder != nil {
		sub.AutoOrder = *req.AutoOrder
	}
	if req.DeliveryAddressIDs != nil {
		sub.DeliveryAddressIDs = models.StringMap(req.DeliveryAddressIDs)
	}
	if err := sub.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.Subscription.Update(sub); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "subscriptions", Action: realtime.ActionUpdate,
		ProviderID: sub.ProviderID, CustomerID: sub.CustomerID,
		Payload: sub,
	})

	return c.JSON(sub)
}

// HandleDeactivateSubscription switches a subscription off. The nightly
// batch ignores inactive subscriptions.
func HandleDeactivateSubscription(c *fiber.Ctx) error {
	subID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid subscription id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetByID(subID)
	if err != nil {
		return businessError(c, err)
	}
	if sub.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your subscription")
	}

	if err := repos.Subscription.Deactivate(sub.ID); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "subscriptions", Action: realtime.ActionUpdate,
		ProviderID: sub.ProviderID, CustomerID: sub.CustomerID,
		Payload: fiber.Map{"id": sub.ID, "active": false},
	})

	return c.JSON(fiber.Map{"message": "subscription deactivated"})
}

type skipRequest struct {
	SkipDate string `json:"skip_date"`
	MealType string `json:"meal_type"`
}

// HandleAddSkip records a one-day skip so the batch won't order that meal
// type on that date. Customers may only skip their own subscriptions.
func HandleAddSkip(c *fiber.Ctx) error {
	subID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid subscription id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetByID(subID)
	if err != nil {
		return businessError(c, err)
	}
	if err := authorizeSubscriptionAccess(c, sub); err != nil {
		return err
	}

	var req skipRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if !sub.SubscribesTo(req.MealType) {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed",
			"the subscription does not cover this meal type")
	}

	skip := &models.SubscriptionSkip{
		SubscriptionID: sub.ID,
		CustomerID:     sub.CustomerID,
		SkipDate:       req.SkipDate,
		MealType:       req.MealType,
	}
	if err := skip.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repos.Subscription.CreateSkip(skip); err != nil {
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(skip)
}

// HandleRemoveSkip deletes a skip record, re-enabling the auto-order for
// that date and meal type.
func HandleRemoveSkip(c *fiber.Ctx) error {
	subID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid subscription id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetByID(subID)
	if err != nil {
		return businessError(c, err)
	}
	if err := authorizeSubscriptionAccess(c, sub); err != nil {
		return err
	}

	var req skipRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if err := repos.Subscription.DeleteSkip(sub.ID, req.SkipDate, req.MealType); err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{"message": "skip removed"})
}

// HandleListSkips lists a subscription's skip records.
func HandleListSkips(c *fiber.Ctx) error {
	subID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid subscription id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetByID(subID)
	if err != nil {
		return businessError(c, err)
	}
	if err := authorizeSubscriptionAccess(c, sub); err != nil {
		return err
	}

	skips, err := repos.Subscription.ListSkips(sub.ID)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(skips)
}

func authorizeSubscriptionAccess(c *fiber.Ctx, sub *models.Subscription) error {
	if usercontext.IsCustomer(c) {
		if sub.CustomerID != usercontext.GetActorID(c) {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "not your subscription")
		}
		return nil
	}
	if sub.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your subscription")
	}
	return nil
}
