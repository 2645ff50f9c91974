package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ORDER_STATUS_PENDING          = "pending"
	ORDER_STATUS_CONFIRMED        = "confirmed"
	ORDER_STATUS_OUT_FOR_DELIVERY = "out_for_delivery"
	ORDER_STATUS_DELIVERED        = "delivered"
	ORDER_STATUS_CANCELED         = "canceled"
)

// nextStatus encodes the provider-driven delivery progression, one step at a
// time, no skipping, no reverse transitions.
var nextStatus = map[string]string{
	ORDER_STATUS_PENDING:          ORDER_STATUS_CONFIRMED,
	ORDER_STATUS_CONFIRMED:        ORDER_STATUS_OUT_FOR_DELIVERY,
	ORDER_STATUS_OUT_FOR_DELIVERY: ORDER_STATUS_DELIVERED,
}

type Order struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UUID            string     `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	CustomerID      uint       `gorm:"index;not null" json:"customer_id" validate:"required"`
	ProviderID      uint       `gorm:"index;not null" json:"provider_id" validate:"required"`
	MealID          uint       `gorm:"index;not null" json:"meal_id" validate:"required"`
	SelectedOption  string     `gorm:"type:varchar(255)" json:"selected_option" validate:"required,max=255"`
	DeliveryAddress string     `gorm:"type:text" json:"delivery_address" validate:"required"`
	Status          string     `gorm:"index;type:varchar(30);default:'pending'" json:"status" validate:"oneof=pending confirmed out_for_delivery delivered canceled"`
	Amount          float64    `gorm:"type:decimal(10,2)" json:"amount" validate:"required,gt=0"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty" validate:"max=1000"`
	CanceledAt      *time.Time `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Meal     Meal     `gorm:"foreignKey:MealID" json:"-"`
}

func (o *Order) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = ORDER_STATUS_PENDING
	}
	return nil
}

// NextStatus returns the status one delivery step ahead, or "" when the
// order is delivered or canceled.
func (o *Order) NextStatus() string {
	return nextStatus[o.Status]
}

// CanTransitionTo reports whether the status change is a legal single step
// of the delivery progression, or a cancellation of a non-terminal order.
func (o *Order) CanTransitionTo(status string) bool {
	if status == ORDER_STATUS_CANCELED {
		return o.CanBeCanceled()
	}
	return nextStatus[o.Status] == status
}

// CanBeCanceled reports whether the order is still in a cancelable state.
// Delivered and canceled are terminal. The cutoff lockout window is a
// separate, time-based check on top of this one.
func (o *Order) CanBeCanceled() bool {
	switch o.Status {
	case ORDER_STATUS_PENDING, ORDER_STATUS_CONFIRMED, ORDER_STATUS_OUT_FOR_DELIVERY:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (o *Order) IsTerminal() bool {
	return o.Status == ORDER_STATUS_DELIVERED || o.Status == ORDER_STATUS_CANCELED
}
