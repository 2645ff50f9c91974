package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer in the database
func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by their ID
func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByMobile retrieves a customer by mobile number within one provider
func (r *customerRepository) GetByMobile(providerID uint, mobileNumber string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("provider_id = ? AND mobile_number = ?", providerID, mobileNumber).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates an existing customer in the database
func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete soft deletes a customer by their ID
func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// ListByProvider retrieves a paginated list of a provider's customers
func (r *customerRepository) ListByProvider(providerID uint, offset, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("provider_id = ?", providerID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error
	return customers, err
}

// CountByProvider returns the number of customers of one provider
func (r *customerRepository) CountByProvider(providerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("provider_id = ?", providerID).Count(&count).Error
	return count, err
}

// Search searches a provider's customers by name or mobile number
func (r *customerRepository) Search(providerID uint, query string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("provider_id = ? AND (name LIKE ? OR mobile_number LIKE ?)", providerID, pattern, pattern).
		Find(&customers).Error
	return customers, err
}

// ListWithDues returns customers whose balance is negative, most indebted
// first. Feeds the provider's dues report.
func (r *customerRepository) ListWithDues(providerID uint) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("provider_id = ? AND current_balance < 0", providerID).
		Order("current_balance ASC").Find(&customers).Error
	return customers, err
}
