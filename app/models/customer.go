package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Customer is a tenant-scoped account: the same mobile number may exist at
// two different providers as two independent customers with separate balances.
type Customer struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	ProviderID   uint     `gorm:"index:idx_customers_provider_mobile,unique;not null" json:"provider_id" validate:"required"`
	MobileNumber string   `gorm:"index:idx_customers_provider_mobile,unique;type:varchar(20)" json:"mobile_number" validate:"required,min=10,max=20"`
	Name         string   `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Password     string   `gorm:"type:text" json:"-"`
	Address      string   `gorm:"type:text" json:"address" validate:"max=1000"`
	// CurrentBalance is signed: negative means the customer owes money.
	// Only order placement, cancellation and payment settlement may touch it,
	// and always inside the same transaction as the row they account for.
	CurrentBalance  float64        `gorm:"type:decimal(10,2);default:0" json:"current_balance"`
	HasSubscription bool           `gorm:"default:false" json:"has_subscription"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}

func (c *Customer) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// CreateCustomer builds a self-service customer account with a password.
// Admin-side records created by the provider carry no password and cannot
// log in until the customer claims the account.
func CreateCustomer(providerID uint, mobileNumber, name, address, password string) (*Customer, error) {
	c := &Customer{
		ProviderID:   providerID,
		MobileNumber: mobileNumber,
		Name:         name,
		Address:      address,
	}

	if password != "" {
		pw, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		c.Password = pw
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (c *Customer) CheckPassword(password string) bool {
	if c.Password == "" {
		return false
	}
	return CheckPasswordHash(password, c.Password)
}

// SetPassword hashes and sets a new password for the customer
func (c *Customer) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	c.Password = hashed
	return nil
}

// OwesMoney reports whether the balance is negative.
func (c *Customer) OwesMoney() bool {
	return c.CurrentBalance < 0
}
