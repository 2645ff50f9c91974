package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMeal() *Meal {
	return &Meal{
		ProviderID: 1,
		Date:       "2025-03-10",
		MealType:   MEAL_TYPE_LUNCH,
		Option1:    "Dal Rice",
		Price:      80,
		CutOffTime: "11:00",
	}
}

func TestMealValidate(t *testing.T) {
	assert.NoError(t, validMeal().Validate())

	meal := validMeal()
	meal.MealType = "brunch"
	assert.ErrorIs(t, meal.Validate(), ErrInvalidMealType)

	meal = validMeal()
	meal.CutOffTime = "25:99"
	assert.ErrorIs(t, meal.Validate(), ErrInvalidCutoff)

	meal = validMeal()
	meal.Price = 0
	assert.Error(t, meal.Validate())
}

func TestMealOptions(t *testing.T) {
	meal := validMeal()
	assert.Equal(t, []string{"Dal Rice"}, meal.Options())
	assert.True(t, meal.HasOption("Dal Rice"))
	assert.False(t, meal.HasOption("Paneer Thali"))

	meal.Option2 = "Paneer Thali"
	assert.Equal(t, []string{"Dal Rice", "Paneer Thali"}, meal.Options())
	assert.True(t, meal.HasOption("Paneer Thali"))
}

func TestSubscriptionIsActiveOn(t *testing.T) {
	sub := &Subscription{StartDate: "2025-03-01", EndDate: "2025-03-31", Active: true}

	assert.True(t, sub.IsActiveOn("2025-03-01"))
	assert.True(t, sub.IsActiveOn("2025-03-31"))
	assert.False(t, sub.IsActiveOn("2025-02-28"))
	assert.False(t, sub.IsActiveOn("2025-04-01"))

	sub.Active = false
	assert.False(t, sub.IsActiveOn("2025-03-15"))
}

func TestProviderSlugValidation(t *testing.T) {
	_, err := CreateProvider("Annapurna Tiffins", "annapurna-tiffins", "owner@example.com", "secret123")
	assert.NoError(t, err)

	_, err = CreateProvider("Annapurna Tiffins", "Annapurna Tiffins!", "owner@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidSlug)
}
