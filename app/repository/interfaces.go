package repository

import (
	"github.com/appetyte/appetyte/app/models"
)

// ProviderRepository defines the interface for provider-related database operations
type ProviderRepository interface {
	Create(provider *models.Provider) error
	GetByID(id uint) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	GetBySlug(slug string) (*models.Provider, error)
	Update(provider *models.Provider) error
	SlugExists(slug string) (bool, error)
	EmailExists(email string) (bool, error)
}

// CustomerRepository defines the interface for customer-related database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByMobile(providerID uint, mobileNumber string) (*models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
	ListByProvider(providerID uint, offset, limit int) ([]models.Customer, error)
	CountByProvider(providerID uint) (int64, error)
	Search(providerID uint, query string) ([]models.Customer, error)
	ListWithDues(providerID uint) ([]models.Customer, error)
}

// MealRepository defines the interface for meal-related database operations
type MealRepository interface {
	Create(meal *models.Meal) error
	GetByID(id uint) (*models.Meal, error)
	GetByProviderAndDate(providerID uint, date string) ([]models.Meal, error)
	GetByProviderDateAndType(providerID uint, date, mealType string) (*models.Meal, error)
	ListByProvider(providerID uint, offset, limit int) ([]models.Meal, error)
	Update(meal *models.Meal) error
	Delete(id uint) error
}

// OrderRepository defines the read-side interface for orders. All writes go
// through the ordering service's atomic operations.
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByUUID(uuid string) (*models.Order, error)
	ListByCustomer(customerID uint, offset, limit int) ([]models.Order, error)
	ListByProviderAndDate(providerID uint, date string) ([]models.Order, error)
	ListCanceledByProvider(providerID uint, offset, limit int) ([]models.Order, error)
	CountByProviderAndDate(providerID uint, date string) (int64, error)
}

// SubscriptionRepository defines the interface for subscriptions, their skip
// records and the request/approval workflow
type SubscriptionRepository interface {
	Create(subscription *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetActiveByCustomerAndProvider(customerID, providerID uint) (*models.Subscription, error)
	ListByProvider(providerID uint) ([]models.Subscription, error)
	ListByCustomer(customerID uint) ([]models.Subscription, error)
	Update(subscription *models.Subscription) error
	Deactivate(id uint) error

	CreateSkip(skip *models.SubscriptionSkip) error
	DeleteSkip(subscriptionID uint, skipDate, mealType string) error
	ListSkips(subscriptionID uint) ([]models.SubscriptionSkip, error)

	CreateRequest(request *models.SubscriptionRequest) error
	GetRequestByID(id uint) (*models.SubscriptionRequest, error)
	GetPendingRequest(customerID, providerID uint) (*models.SubscriptionRequest, error)
	ListPendingRequests(providerID uint) ([]models.SubscriptionRequest, error)
	UpdateRequestStatus(id uint, status string) error
}

// DeliveryAddressRepository defines the interface for a provider's fixed
// delivery address list
type DeliveryAddressRepository interface {
	Create(address *models.DeliveryAddress) error
	GetByID(id uint) (*models.DeliveryAddress, error)
	ListByProvider(providerID uint) ([]models.DeliveryAddress, error)
	Update(address *models.DeliveryAddress) error
	Delete(id uint) error
}

// PaymentRepository defines the read/create interface for payments;
// settlement is an atomic ledger operation owned by the ordering service.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByUUID(uuid string) (*models.Payment, error)
	ListByCustomer(customerID uint) ([]models.Payment, error)
	ListByProvider(providerID uint, status string) ([]models.Payment, error)
}

// TransactionRepository reads the balance audit ledger
type TransactionRepository interface {
	ListByCustomer(customerID uint, offset, limit int) ([]models.BalanceTransaction, error)
}
