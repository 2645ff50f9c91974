package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// SubscriptionSkip suppresses a single date + meal type from auto-ordering.
// Deleting the row re-enables the auto-order for that day.
type SubscriptionSkip struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubscriptionID uint      `gorm:"index:idx_skips_unique,unique;not null" json:"subscription_id" validate:"required"`
	CustomerID     uint      `gorm:"index;not null" json:"customer_id" validate:"required"`
	SkipDate       string    `gorm:"index:idx_skips_unique,unique;type:varchar(10)" json:"skip_date" validate:"required,datetime=2006-01-02"`
	MealType       string    `gorm:"index:idx_skips_unique,unique;type:varchar(20)" json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Subscription Subscription `gorm:"foreignKey:SubscriptionID" json:"-"`
}

func (s *SubscriptionSkip) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
