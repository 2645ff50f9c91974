package controllers

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/internal/pkg/autoorder"
	"github.com/appetyte/appetyte/internal/pkg/database"
	"github.com/appetyte/appetyte/internal/pkg/env"
	"github.com/appetyte/appetyte/internal/pkg/ordering"
)

var (
	orderingOnce sync.Once
	orderingSvc  *ordering.Service

	batchOnce sync.Once
	batchSvc  *autoorder.Service
)

// getOrderingService returns the shared ordering service singleton.
func getOrderingService() *ordering.Service {
	orderingOnce.Do(func() {
		orderingSvc = ordering.NewServiceFromDB(database.GetDB())
	})
	return orderingSvc
}

// getBatchService returns the shared auto-order batch service singleton.
func getBatchService() *autoorder.Service {
	batchOnce.Do(func() {
		loc, err := time.LoadLocation(env.GetEnv("APP_TIMEZONE", models.DefaultTimezone))
		if err != nil {
			loc, _ = time.LoadLocation(models.DefaultTimezone)
		}
		batchSvc = autoorder.NewServiceFromDB(database.GetDB(), loc)
	})
	return batchSvc
}

// jsonError writes a JSON error response in the shared shape.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// businessError maps known ordering errors to specific, actionable
// responses; everything else becomes a generic failure.
func businessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ordering.ErrInsufficientBalance):
		return jsonError(c, fiber.StatusUnprocessableEntity, "insufficient_balance",
			"Insufficient balance. Please add money to your account.")
	case errors.Is(err, ordering.ErrOrderingClosed):
		return jsonError(c, fiber.StatusUnprocessableEntity, "ordering_closed",
			"Ordering for this meal has closed.")
	case errors.Is(err, ordering.ErrCancellationLocked):
		return jsonError(c, fiber.StatusUnprocessableEntity, "cancellation_locked",
			"Orders can no longer be canceled within 15 minutes of the cutoff.")
	case errors.Is(err, ordering.ErrInvalidOption):
		return jsonError(c, fiber.StatusBadRequest, "invalid_option",
			"The selected option is not offered for this meal.")
	case errors.Is(err, ordering.ErrNotCancelable):
		return jsonError(c, fiber.StatusConflict, "not_cancelable",
			"This order can no longer be canceled.")
	case errors.Is(err, ordering.ErrInvalidTransition):
		return jsonError(c, fiber.StatusConflict, "invalid_transition",
			"Illegal order status transition.")
	case errors.Is(err, ordering.ErrPaymentSettled):
		return jsonError(c, fiber.StatusConflict, "payment_settled",
			"This payment has already been settled.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "Record not found.")
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error",
		"Something went wrong. Please try again.")
}

// paramUint parses a numeric route parameter.
func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// pagination reads offset/limit query parameters with sane bounds.
func pagination(c *fiber.Ctx) (offset, limit int) {
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit = c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return offset, limit
}

// today returns the current date string in the application timezone.
func today() string {
	loc, err := time.LoadLocation(env.GetEnv("APP_TIMEZONE", models.DefaultTimezone))
	if err != nil {
		loc, _ = time.LoadLocation(models.DefaultTimezone)
	}
	return time.Now().In(loc).Format("2006-01-02")
}
