package repository

import (
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// orderRepository implements the OrderRepository interface. It is read-only:
// every order write runs through the ordering service so that balance and
// ledger effects stay atomic.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Meal").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByUUID retrieves an order by its public UUID
func (r *orderRepository) GetByUUID(uuid string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Meal").Where("uuid = ?", uuid).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer retrieves a customer's order history, newest first
func (r *orderRepository) ListByCustomer(customerID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Meal").Where("customer_id = ?", customerID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// ListByProviderAndDate retrieves all orders a provider received for meals
// of one date. Feeds the daily delivery sheet.
func (r *orderRepository) ListByProviderAndDate(providerID uint, date string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Meal").Preload("Customer").
		Joins("JOIN meals ON meals.id = orders.meal_id").
		Where("orders.provider_id = ? AND meals.date = ?", providerID, date).
		Order("orders.created_at ASC").Find(&orders).Error
	return orders, err
}

// ListCanceledByProvider retrieves a provider's canceled orders
func (r *orderRepository) ListCanceledByProvider(providerID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Meal").Preload("Customer").
		Where("provider_id = ? AND status = ?", providerID, models.ORDER_STATUS_CANCELED).
		Order("canceled_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// CountByProviderAndDate counts a provider's orders for meals of one date
func (r *orderRepository) CountByProviderAndDate(providerID uint, date string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Joins("JOIN meals ON meals.id = orders.meal_id").
		Where("orders.provider_id = ? AND meals.date = ?", providerID, date).
		Count(&count).Error
	return count, err
}
