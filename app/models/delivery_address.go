package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// DeliveryAddress is a named, reusable address owned by a provider. It is
// only consulted when the provider runs in fixed delivery mode.
type DeliveryAddress struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProviderID uint           `gorm:"index;not null" json:"provider_id" validate:"required"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Address    string         `gorm:"type:text" json:"address" validate:"required,min=5,max=1000"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *DeliveryAddress) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
