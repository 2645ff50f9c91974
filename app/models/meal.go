package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MEAL_TYPE_BREAKFAST = "breakfast"
	MEAL_TYPE_LUNCH     = "lunch"
	MEAL_TYPE_DINNER    = "dinner"
)

// MealTypes lists the valid meal types in serving order.
var MealTypes = []string{MEAL_TYPE_BREAKFAST, MEAL_TYPE_LUNCH, MEAL_TYPE_DINNER}

// Meal is one provider's offering for one calendar date and meal type.
// Date is stored at day precision; CutOffTime is a wall-clock "HH:MM" string
// interpreted in the provider's timezone.
type Meal struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"index:idx_meals_provider_date_type,unique;not null" json:"provider_id" validate:"required"`
	Date       string    `gorm:"index:idx_meals_provider_date_type,unique;type:varchar(10)" json:"date" validate:"required,datetime=2006-01-02"`
	MealType   string    `gorm:"index:idx_meals_provider_date_type,unique;type:varchar(20)" json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	Option1    string    `gorm:"type:varchar(255)" json:"option_1" validate:"required,min=2,max=255"`
	Option2    string    `gorm:"type:varchar(255);default:null" json:"option_2,omitempty" validate:"max=255"`
	Price      float64   `gorm:"type:decimal(10,2)" json:"price" validate:"required,gt=0"`
	CutOffTime string    `gorm:"type:varchar(5)" json:"cut_off_time" validate:"required,len=5"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}

func (m *Meal) Validate() error {
	if !IsValidMealType(m.MealType) {
		return ErrInvalidMealType
	}
	if _, err := time.Parse("15:04", m.CutOffTime); err != nil {
		return ErrInvalidCutoff
	}
	v := validator.New()

	return v.Struct(m)
}

// Options returns the configured options, omitting an unset option 2.
func (m *Meal) Options() []string {
	opts := []string{m.Option1}
	if m.Option2 != "" {
		opts = append(opts, m.Option2)
	}
	return opts
}

// HasOption reports whether the given selection is one of the meal's options.
func (m *Meal) HasOption(option string) bool {
	for _, o := range m.Options() {
		if o == option {
			return true
		}
	}
	return false
}

func IsValidMealType(mealType string) bool {
	for _, t := range MealTypes {
		if t == mealType {
			return true
		}
	}
	return false
}
