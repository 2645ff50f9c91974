package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	REQUEST_STATUS_PENDING  = "pending"
	REQUEST_STATUS_APPROVED = "approved"
	REQUEST_STATUS_REJECTED = "rejected"
)

// SubscriptionRequest is a customer's ask to subscribe, resolved by the
// provider: approval creates the Subscription, rejection just closes it.
type SubscriptionRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id" validate:"required"`
	ProviderID uint      `gorm:"index;not null" json:"provider_id" validate:"required"`
	Status     string    `gorm:"index;type:varchar(20);default:'pending'" json:"status" validate:"oneof=pending approved rejected"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (r *SubscriptionRequest) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// IsPending reports whether the request still awaits a provider decision.
func (r *SubscriptionRequest) IsPending() bool {
	return r.Status == REQUEST_STATUS_PENDING
}
