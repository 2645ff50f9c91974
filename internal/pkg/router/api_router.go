package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/appetyte/appetyte/app/controllers"
	"github.com/appetyte/appetyte/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", cors.New(), limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/provider/signup", controllers.HandleProviderSignup)
	auth.Post("/provider/login", controllers.HandleProviderLogin)
	auth.Post("/:slug/customer/signup", controllers.HandleCustomerSignup)
	auth.Post("/:slug/customer/login", controllers.HandleCustomerLogin)
	auth.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	// Provider dashboard
	provider := v1.Group("/provider", middleware.RequireProvider)
	provider.Get("/settings", controllers.HandleGetProviderSettings)
	provider.Put("/settings", controllers.HandleUpdateProviderSettings)

	provider.Post("/meals", controllers.HandleCreateMeal)
	provider.Get("/meals", controllers.HandleProviderMeals)
	provider.Put("/meals/:id", controllers.HandleUpdateMeal)
	provider.Delete("/meals/:id", controllers.HandleDeleteMeal)

	provider.Get("/orders", controllers.HandleProviderOrders)
	provider.Get("/orders/canceled", controllers.HandleProviderCanceledOrders)
	provider.Put("/orders/:uuid/status", controllers.HandleAdvanceOrderStatus)
	provider.Post("/orders/:uuid/cancel", controllers.HandleCancelOrder)

	provider.Post("/customers", controllers.HandleCreateCustomer)
	provider.Get("/customers", controllers.HandleListCustomers)
	provider.Get("/customers/dues", controllers.HandleCustomerDues)
	provider.Get("/customers/:id", controllers.HandleGetCustomer)
	provider.Put("/customers/:id", controllers.HandleUpdateCustomer)

	provider.Get("/subscriptions", controllers.HandleProviderSubscriptions)
	provider.Put("/subscriptions/:id", controllers.HandleUpdateSubscription)
	provider.Post("/subscriptions/:id/deactivate", controllers.HandleDeactivateSubscription)
	provider.Get("/subscriptions/:id/skips", controllers.HandleListSkips)
	provider.Get("/subscription-requests", controllers.HandlePendingRequests)
	provider.Post("/subscription-requests/:id/approve", controllers.HandleApproveRequest)
	provider.Post("/subscription-requests/:id/reject", controllers.HandleRejectRequest)

	provider.Post("/delivery-addresses", controllers.HandleCreateDeliveryAddress)
	provider.Get("/delivery-addresses", controllers.HandleListDeliveryAddresses)
	provider.Put("/delivery-addresses/:id", controllers.HandleUpdateDeliveryAddress)
	provider.Delete("/delivery-addresses/:id", controllers.HandleDeleteDeliveryAddress)

	provider.Get("/payments", controllers.HandleProviderPayments)
	provider.Post("/payments/:id/paid", controllers.HandleMarkPaymentPaid)
	provider.Post("/payments/:id/failed", controllers.HandleMarkPaymentFailed)

	// Customer app
	customer := v1.Group("/customer", middleware.RequireCustomer)
	customer.Get("/meals", controllers.HandleCustomerMeals)
	customer.Post("/orders", controllers.HandlePlaceOrder)
	customer.Get("/orders", controllers.HandleCustomerOrders)
	customer.Post("/orders/:uuid/cancel", controllers.HandleCancelOrder)
	customer.Get("/transactions", controllers.HandleCustomerTransactions)
	customer.Get("/delivery-addresses", controllers.HandleListDeliveryAddresses)

	customer.Post("/subscription-requests", controllers.HandleRequestSubscription)
	customer.Get("/subscriptions", controllers.HandleCustomerSubscriptions)
	customer.Post("/subscriptions/:id/skips", controllers.HandleAddSkip)
	customer.Delete("/subscriptions/:id/skips", controllers.HandleRemoveSkip)
	customer.Get("/subscriptions/:id/skips", controllers.HandleListSkips)

	customer.Post("/payments", controllers.HandleCreatePayment)
	customer.Get("/payments", controllers.HandleCustomerPayments)

	// Realtime stream for whichever actor is logged in
	v1.Get("/events", middleware.RequireAuth, controllers.HandleEvents)

	// Batch trigger for external schedulers, guarded by the service key
	jobs := v1.Group("/jobs", middleware.ServiceKeyMiddleware())
	jobs.Post("/auto-order", controllers.HandleRunAutoOrder)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
