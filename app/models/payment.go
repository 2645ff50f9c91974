package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PAYMENT_STATUS_PENDING = "pending"
	PAYMENT_STATUS_PAID    = "paid"
	PAYMENT_STATUS_FAILED  = "failed"
)

// Payment is a manual balance top-up. The credit hits the customer balance
// only when the provider marks the payment paid, atomically with the status
// change and its ledger row.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UUID        string     `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	CustomerID  uint       `gorm:"index;not null" json:"customer_id" validate:"required"`
	ProviderID  uint       `gorm:"index;not null" json:"provider_id" validate:"required"`
	Amount      float64    `gorm:"type:decimal(10,2)" json:"amount" validate:"required,gt=0"`
	Status      string     `gorm:"index;type:varchar(20);default:'pending'" json:"status" validate:"oneof=pending paid failed"`
	ReferenceID string     `gorm:"type:varchar(100);default:null" json:"reference_id,omitempty" validate:"max=100"`
	PaidAt      *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (p *Payment) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = PAYMENT_STATUS_PENDING
	}
	return nil
}

// IsSettled reports whether the payment reached a terminal status.
func (p *Payment) IsSettled() bool {
	return p.Status == PAYMENT_STATUS_PAID || p.Status == PAYMENT_STATUS_FAILED
}
