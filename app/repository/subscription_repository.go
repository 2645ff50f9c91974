package repository

import (
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription in the database
func (r *subscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.First(&subscription, id).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

// GetActiveByCustomerAndProvider retrieves the customer's active
// subscription at one provider, if any
func (r *subscriptionRepository) GetActiveByCustomerAndProvider(customerID, providerID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Where("customer_id = ? AND provider_id = ? AND active = ?", customerID, providerID, true).
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// ListByProvider retrieves all subscriptions at one provider
func (r *subscriptionRepository) ListByProvider(providerID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Preload("Customer").Where("provider_id = ?", providerID).
		Order("created_at DESC").Find(&subscriptions).Error
	return subscriptions, err
}

// ListByCustomer retrieves all subscriptions of one customer
func (r *subscriptionRepository) ListByCustomer(customerID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&subscriptions).Error
	return subscriptions, err
}

// Update updates an existing subscription in the database
func (r *subscriptionRepository) Update(subscription *models.Subscription) error {
	return r.db.Save(subscription).Error
}

// Deactivate switches a subscription off without deleting its history
func (r *subscriptionRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Subscription{}).Where("id = ?", id).
		Update("active", false).Error
}

// CreateSkip records a one-day meal-type exclusion
func (r *subscriptionRepository) CreateSkip(skip *models.SubscriptionSkip) error {
	return r.db.Create(skip).Error
}

// DeleteSkip removes a skip record, re-enabling the auto-order
func (r *subscriptionRepository) DeleteSkip(subscriptionID uint, skipDate, mealType string) error {
	return r.db.Where("subscription_id = ? AND skip_date = ? AND meal_type = ?", subscriptionID, skipDate, mealType).
		Delete(&models.SubscriptionSkip{}).Error
}

// ListSkips retrieves all skip records of one subscription
func (r *subscriptionRepository) ListSkips(subscriptionID uint) ([]models.SubscriptionSkip, error) {
	var skips []models.SubscriptionSkip
	err := r.db.Where("subscription_id = ?", subscriptionID).
		Order("skip_date ASC").Find(&skips).Error
	return skips, err
}

// CreateRequest records a customer's subscription request
func (r *subscriptionRepository) CreateRequest(request *models.SubscriptionRequest) error {
	return r.db.Create(request).Error
}

// GetRequestByID retrieves a subscription request by its ID
func (r *subscriptionRepository) GetRequestByID(id uint) (*models.SubscriptionRequest, error) {
	var request models.SubscriptionRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetPendingRequest retrieves the customer's open request at one provider
func (r *subscriptionRepository) GetPendingRequest(customerID, providerID uint) (*models.SubscriptionRequest, error) {
	var request models.SubscriptionRequest
	err := r.db.Where("customer_id = ? AND provider_id = ? AND status = ?",
		customerID, providerID, models.REQUEST_STATUS_PENDING).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPendingRequests retrieves all open requests at one provider
func (r *subscriptionRepository) ListPendingRequests(providerID uint) ([]models.SubscriptionRequest, error) {
	var requests []models.SubscriptionRequest
	err := r.db.Preload("Customer").
		Where("provider_id = ? AND status = ?", providerID, models.REQUEST_STATUS_PENDING).
		Order("created_at ASC").Find(&requests).Error
	return requests, err
}

// UpdateRequestStatus resolves a subscription request
func (r *subscriptionRepository) UpdateRequestStatus(id uint, status string) error {
	return r.db.Model(&models.SubscriptionRequest{}).Where("id = ?", id).
		Update("status", status).Error
}
