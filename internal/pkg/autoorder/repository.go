package autoorder

import (
	"context"

	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// Repository loads the day's working set for the batch. All reads, no
// writes; order placement goes through the ordering service.
type Repository interface {
	ActiveSubscriptions(ctx context.Context, date string) ([]models.Subscription, error)
	SkipsForDate(ctx context.Context, date string) ([]models.SubscriptionSkip, error)
	MealsForDate(ctx context.Context, date string) ([]models.Meal, error)
	AllDeliveryAddresses(ctx context.Context) ([]models.DeliveryAddress, error)
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	GetProvider(ctx context.Context, id uint) (*models.Provider, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed batch repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// ActiveSubscriptions returns subscriptions that are switched on, have
// auto-order enabled and whose date range covers the given date.
func (r *gormRepository) ActiveSubscriptions(ctx context.Context, date string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Where("active = ? AND auto_order = ? AND start_date <= ? AND end_date >= ?", true, true, date, date).
		Find(&subs).Error
	return subs, err
}

func (r *gormRepository) SkipsForDate(ctx context.Context, date string) ([]models.SubscriptionSkip, error) {
	var skips []models.SubscriptionSkip
	err := r.db.WithContext(ctx).Where("skip_date = ?", date).Find(&skips).Error
	return skips, err
}

func (r *gormRepository) MealsForDate(ctx context.Context, date string) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.WithContext(ctx).Where("date = ?", date).Find(&meals).Error
	return meals, err
}

func (r *gormRepository) AllDeliveryAddresses(ctx context.Context) ([]models.DeliveryAddress, error) {
	var addresses []models.DeliveryAddress
	err := r.db.WithContext(ctx).Find(&addresses).Error
	return addresses, err
}

func (r *gormRepository) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}
