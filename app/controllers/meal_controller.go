package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/app/repository"
	"github.com/appetyte/appetyte/internal/pkg/ordering"
	"github.com/appetyte/appetyte/internal/pkg/realtime"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

type mealRequest struct {
	Date       string  `json:"date"`
	MealType   string  `json:"meal_type"`
	Option1    string  `json:"option_1"`
	Option2    string  `json:"option_2"`
	Price      float64 `json:"price"`
	CutOffTime string  `json:"cut_off_time"`
}

// mealView is a meal plus its display-only time status.
type mealView struct {
	models.Meal
	TimeStatus ordering.TimeStatus `json:"time_status"`
	Orderable  bool                `json:"orderable"`
}

// HandleCreateMeal creates a meal for the authenticated provider.
func HandleCreateMeal(c *fiber.Ctx) error {
	var req mealRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	meal := &models.Meal{
		ProviderID: usercontext.GetProviderID(c),
		Date:       req.Date,
		MealType:   req.MealType,
		Option1:    req.Option1,
		Option2:    req.Option2,
		Price:      req.Price,
		CutOffTime: req.CutOffTime,
	}
	if err := meal.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().Meal.Create(meal); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "meals", Action: realtime.ActionInsert,
		ProviderID: meal.ProviderID, Payload: meal,
	})

	return c.Status(fiber.StatusCreated).JSON(meal)
}

// HandleUpdateMeal edits a meal while it is still editable (before cutoff).
func HandleUpdateMeal(c *fiber.Ctx) error {
	mealID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid meal id")
	}

	repos := repository.GetGlobalRepositories()
	meal, err := repos.Meal.GetByID(mealID)
	if err != nil {
		return businessError(c, err)
	}
	if meal.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your meal")
	}

	provider, err := repos.Provider.GetByID(meal.ProviderID)
	if err != nil {
		return businessError(c, err)
	}
	now := time.Now().In(provider.Location())
	if !ordering.MealEditable(meal.Date, meal.CutOffTime, now) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "meal_locked",
			"Meals can no longer be edited after their cutoff has passed.")
	}

	var req mealRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	meal.Date = req.Date
	meal.MealType = req.MealType
	meal.Option1 = req.Option1
	meal.Option2 = req.Option2
	meal.Price = req.Price
	meal.CutOffTime = req.CutOffTime
	if err := meal.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.Meal.Update(meal); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "meals", Action: realtime.ActionUpdate,
		ProviderID: meal.ProviderID, Payload: meal,
	})

	return c.JSON(meal)
}

// HandleDeleteMeal removes a meal while it is still editable.
func HandleDeleteMeal(c *fiber.Ctx) error {
	mealID, err := paramUint(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid meal id")
	}

	repos := repository.GetGlobalRepositories()
	meal, err := repos.Meal.GetByID(mealID)
	if err != nil {
		return businessError(c, err)
	}
	if meal.ProviderID != usercontext.GetProviderID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your meal")
	}

	provider, err := repos.Provider.GetByID(meal.ProviderID)
	if err != nil {
		return businessError(c, err)
	}
	now := time.Now().In(provider.Location())
	if !ordering.MealEditable(meal.Date, meal.CutOffTime, now) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "meal_locked",
			"Meals can no longer be deleted after their cutoff has passed.")
	}

	if err := repos.Meal.Delete(meal.ID); err != nil {
		return businessError(c, err)
	}

	realtime.Publish(realtime.Event{
		Table: "meals", Action: realtime.ActionDelete,
		ProviderID: meal.ProviderID, Payload: fiber.Map{"id": meal.ID},
	})

	return c.JSON(fiber.Map{"message": "meal deleted"})
}

// HandleProviderMeals lists the authenticated provider's meals for a date
// (default today).
func HandleProviderMeals(c *fiber.Ctx) error {
	date := c.Query("date", today())
	meals, err := repository.GetGlobalRepositories().Meal.
		GetByProviderAndDate(usercontext.GetProviderID(c), date)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(meals)
}

// HandleCustomerMeals lists today's meals of the customer's provider,
// filtered by the visibility rule and annotated with time status. A meal
// stays listed for the 15-minute grace period past cutoff but is flagged
// not orderable from the cutoff itself.
func HandleCustomerMeals(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	provider, err := repos.Provider.GetByID(usercontext.GetProviderID(c))
	if err != nil {
		return businessError(c, err)
	}

	now := time.Now().In(provider.Location())
	date := c.Query("date", now.Format("2006-01-02"))

	meals, err := repos.Meal.GetByProviderAndDate(provider.ID, date)
	if err != nil {
		return businessError(c, err)
	}

	views := make([]mealView, 0, len(meals))
	for _, meal := range meals {
		if !ordering.VisibleToCustomer(meal.Date, meal.CutOffTime, now) {
			continue
		}
		views = append(views, mealView{
			Meal:       meal,
			TimeStatus: ordering.Status(meal.Date, meal.CutOffTime, now),
			Orderable:  ordering.OrderingAllowed(meal.Date, meal.CutOffTime, now),
		})
	}

	return c.JSON(views)
}
