package repository

import (
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// deliveryAddressRepository implements the DeliveryAddressRepository interface
type deliveryAddressRepository struct {
	db *gorm.DB
}

// NewDeliveryAddressRepository creates a new delivery address repository instance
func NewDeliveryAddressRepository(db *gorm.DB) DeliveryAddressRepository {
	return &deliveryAddressRepository{db: db}
}

// Create creates a new delivery address in the database
func (r *deliveryAddressRepository) Create(address *models.DeliveryAddress) error {
	return r.db.Create(address).Error
}

// GetByID retrieves a delivery address by its ID
func (r *deliveryAddressRepository) GetByID(id uint) (*models.DeliveryAddress, error) {
	var address models.DeliveryAddress
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// ListByProvider retrieves a provider's delivery address list
func (r *deliveryAddressRepository) ListByProvider(providerID uint) ([]models.DeliveryAddress, error) {
	var addresses []models.DeliveryAddress
	err := r.db.Where("provider_id = ?", providerID).Order("name ASC").Find(&addresses).Error
	return addresses, err
}

// Update updates an existing delivery address in the database
func (r *deliveryAddressRepository) Update(address *models.DeliveryAddress) error {
	return r.db.Save(address).Error
}

// Delete soft deletes a delivery address by its ID
func (r *deliveryAddressRepository) Delete(id uint) error {
	return r.db.Delete(&models.DeliveryAddress{}, id).Error
}
