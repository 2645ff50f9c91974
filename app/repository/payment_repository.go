package repository

import (
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create records a new pending payment
func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID retrieves a payment by its ID
func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByUUID retrieves a payment by its public UUID
func (r *paymentRepository) GetByUUID(uuid string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("uuid = ?", uuid).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByCustomer retrieves a customer's payment history, newest first
func (r *paymentRepository) ListByCustomer(customerID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// ListByProvider retrieves a provider's payments, optionally filtered by status
func (r *paymentRepository) ListByProvider(providerID uint, status string) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.Preload("Customer").Where("provider_id = ?", providerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&payments).Error
	return payments, err
}
