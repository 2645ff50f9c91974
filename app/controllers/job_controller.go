package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// HandleRunAutoOrder triggers one auto-order batch pass and returns its
// summary. Guarded by the service key middleware; meant for external
// schedulers and operators re-running a failed night.
func HandleRunAutoOrder(c *fiber.Ctx) error {
	summary, err := getBatchService().Run(c.Context())
	if err != nil {
		log.Errorf("[AutoOrder] batch run failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "batch_failed",
			"Auto-order batch run failed.")
	}
	return c.JSON(summary)
}
