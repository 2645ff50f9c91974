package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Delivery modes form a tagged variant: a provider either lets customers
	// type their own address or restricts orders to a fixed address list.
	DELIVERY_MODE_CUSTOM = "custom"
	DELIVERY_MODE_FIXED  = "fixed"

	DefaultTimezone = "Asia/Kolkata"
)

type Provider struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BusinessName string     `gorm:"type:varchar(150)" json:"business_name" validate:"required,min=3,max=150"`
	Slug         string     `gorm:"uniqueIndex;type:varchar(100)" json:"slug" validate:"required,min=2,max=100"`
	Email        string     `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password     string     `gorm:"type:text" json:"-" validate:"required,min=6"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone" validate:"max=20"`
	DeliveryMode string     `gorm:"type:varchar(20);default:'custom'" json:"delivery_mode" validate:"oneof=custom fixed"`
	Timezone     string     `gorm:"type:varchar(50);default:'Asia/Kolkata'" json:"timezone"`
	// BalanceFloor is the lowest balance a customer account may reach through
	// order debits. Nil means customers may go negative without limit.
	BalanceFloor *float64       `gorm:"type:decimal(10,2);default:null" json:"balance_floor,omitempty"`
	LastLoginAt  *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (p *Provider) Validate() error {
	if !slugPattern.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	v := validator.New()

	return v.Struct(p)
}

func CreateProvider(businessName, slug, email, password string) (*Provider, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		BusinessName: businessName,
		Slug:         strings.ToLower(strings.TrimSpace(slug)),
		Email:        email,
		Password:     pw,
		DeliveryMode: DELIVERY_MODE_CUSTOM,
		Timezone:     DefaultTimezone,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (p *Provider) CheckPassword(password string) bool {
	return CheckPasswordHash(password, p.Password)
}

// SetPassword hashes and sets a new password for the provider
func (p *Provider) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

// UsesFixedAddresses reports whether orders must reference the provider's
// delivery address list instead of customer-supplied free text.
func (p *Provider) UsesFixedAddresses() bool {
	return p.DeliveryMode == DELIVERY_MODE_FIXED
}

// Location resolves the provider's timezone, falling back to the default.
func (p *Provider) Location() *time.Location {
	tz := p.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	return loc
}
