package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// StringList stores a JSON array of strings in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringMap stores a JSON object of string keys to string values.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *StringMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("unsupported column type for JSON scan")
}

// Subscription pairs a customer with a provider for a date range. The batch
// places one order per subscribed meal type per day while the range covers
// today, unless a skip record suppresses that day's meal type.
type Subscription struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"index;not null" json:"customer_id" validate:"required"`
	ProviderID uint       `gorm:"index;not null" json:"provider_id" validate:"required"`
	MealTypes  StringList `gorm:"type:text" json:"meal_types" validate:"required,min=1"`
	StartDate  string     `gorm:"type:varchar(10)" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string     `gorm:"type:varchar(10)" json:"end_date" validate:"required,datetime=2006-01-02"`
	Active     bool       `gorm:"index;default:true" json:"active"`
	AutoOrder  bool       `gorm:"default:true" json:"auto_order"`
	// DeliveryAddressIDs maps meal type -> delivery address id (as string),
	// used when the provider runs in fixed delivery mode.
	DeliveryAddressIDs StringMap      `gorm:"type:text" json:"delivery_address_ids"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (s *Subscription) Validate() error {
	for _, t := range s.MealTypes {
		if !IsValidMealType(t) {
			return ErrInvalidMealType
		}
	}
	v := validator.New()

	return v.Struct(s)
}

// IsActiveOn reports whether the subscription covers the given date
// (inclusive on both ends) and is switched on.
func (s *Subscription) IsActiveOn(date string) bool {
	return s.Active && s.StartDate <= date && date <= s.EndDate
}

// SubscribesTo reports whether the meal type is part of the subscription.
func (s *Subscription) SubscribesTo(mealType string) bool {
	for _, t := range s.MealTypes {
		if t == mealType {
			return true
		}
	}
	return false
}
