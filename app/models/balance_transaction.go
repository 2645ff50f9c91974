package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TXN_TYPE_ORDER_DEBIT    = "order_debit"
	TXN_TYPE_REFUND         = "refund"
	TXN_TYPE_PAYMENT_CREDIT = "payment_credit"
)

// BalanceTransaction is the audit ledger behind every balance mutation.
// Amount is signed: debits are negative, credits positive. Rows are written
// inside the same transaction as the balance update they record, so the sum
// of a customer's ledger always equals the current balance.
type BalanceTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id" validate:"required"`
	ProviderID uint      `gorm:"index;not null" json:"provider_id" validate:"required"`
	Type       string    `gorm:"index;type:varchar(30)" json:"type" validate:"required,oneof=order_debit refund payment_credit"`
	Amount     float64   `gorm:"type:decimal(10,2)" json:"amount" validate:"required"`
	OrderID    *uint     `gorm:"index;default:null" json:"order_id,omitempty"`
	PaymentID  *uint     `gorm:"index;default:null" json:"payment_id,omitempty"`
	Note       string    `gorm:"type:varchar(255)" json:"note,omitempty" validate:"max=255"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *BalanceTransaction) Validate() error {
	v := validator.New()

	return v.Struct(t)
}
