package autoorder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/internal/pkg/ordering"
)

// runTimeout bounds one whole batch run.
const runTimeout = 5 * time.Minute

// OrderPlacer is the slice of the ordering service the batch needs.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in ordering.PlaceOrderInput, actor ordering.Actor) (*models.Order, error)
	HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error)
}

// Service places the day's subscription orders. One order per active
// subscription per subscribed meal type, unless skipped for the day or
// already placed. Each pair is processed independently: failures land in the
// summary's error list and never abort the run.
type Service struct {
	repo   Repository
	orders OrderPlacer
	loc    *time.Location
	now    func() time.Time
}

// NewService builds the batch service. The location fixes what "today"
// means for every provider-facing date in the run.
func NewService(repo Repository, orders OrderPlacer, loc *time.Location) *Service {
	if loc == nil {
		loc, _ = time.LoadLocation(models.DefaultTimezone)
	}
	return &Service{repo: repo, orders: orders, loc: loc, now: time.Now}
}

// NewServiceFromDB wires the batch service straight onto a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, loc *time.Location) *Service {
	return NewService(NewRepository(db), ordering.NewServiceFromDB(db), loc)
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run executes one batch pass for today and returns the summary.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	date := s.now().In(s.loc).Format("2006-01-02")
	summary := &Summary{Date: date}

	log.Infof("[AutoOrder] running for date %s", date)

	subs, err := s.repo.ActiveSubscriptions(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return summary, nil
	}

	skips, err := s.repo.SkipsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription skips: %w", err)
	}
	skipped := make(map[uint]map[string]bool)
	for _, skip := range skips {
		if skipped[skip.SubscriptionID] == nil {
			skipped[skip.SubscriptionID] = make(map[string]bool)
		}
		skipped[skip.SubscriptionID][skip.MealType] = true
	}

	meals, err := s.repo.MealsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	mealsByProvider := make(map[uint]map[string]models.Meal)
	for _, meal := range meals {
		if mealsByProvider[meal.ProviderID] == nil {
			mealsByProvider[meal.ProviderID] = make(map[string]models.Meal)
		}
		mealsByProvider[meal.ProviderID][meal.MealType] = meal
	}

	addresses, err := s.repo.AllDeliveryAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delivery addresses: %w", err)
	}
	addressByID := make(map[string]string, len(addresses))
	for _, addr := range addresses {
		addressByID[strconv.FormatUint(uint64(addr.ID), 10)] = addr.Address
	}

	providers := make(map[uint]*models.Provider)

	for _, sub := range subs {
		providerMeals, ok := mealsByProvider[sub.ProviderID]
		if !ok {
			log.Infof("[AutoOrder] no meals for provider %d on %s", sub.ProviderID, date)
			continue
		}

		for _, mealType := range sub.MealTypes {
			if skipped[sub.ID][mealType] {
				summary.Skipped++
				continue
			}

			meal, ok := providerMeals[mealType]
			if !ok {
				continue
			}

			exists, err := s.orders.HasActiveOrder(ctx, sub.CustomerID, meal.ID)
			if err != nil {
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("subscription %d, meal %s: dedup check failed: %v", sub.ID, mealType, err))
				continue
			}
			if exists {
				summary.Skipped++
				continue
			}

			address, err := s.resolveAddress(ctx, providers, &sub, mealType, addressByID)
			if err != nil {
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("subscription %d, meal %s: %v", sub.ID, mealType, err))
				continue
			}

			_, err = s.orders.PlaceOrder(ctx, ordering.PlaceOrderInput{
				CustomerID:      sub.CustomerID,
				ProviderID:      sub.ProviderID,
				MealID:          meal.ID,
				SelectedOption:  meal.Option1,
				DeliveryAddress: address,
				Amount:          meal.Price,
				Notes:           AutoOrderNote,
			}, ordering.ActorBatch)
			if err != nil {
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("subscription %d, meal %s: %v", sub.ID, mealType, err))
				continue
			}

			summary.OrdersCreated++
		}
	}

	log.Infof("[AutoOrder] done: %d created, %d skipped, %d errors",
		summary.OrdersCreated, summary.Skipped, len(summary.Errors))

	return summary, nil
}

// resolveAddress picks the delivery address for a subscription pair based on
// the provider's delivery mode: the configured fixed address for the meal
// type, or the customer's own address in custom mode.
func (s *Service) resolveAddress(ctx context.Context, cache map[uint]*models.Provider, sub *models.Subscription, mealType string, addressByID map[string]string) (string, error) {
	provider, ok := cache[sub.ProviderID]
	if !ok {
		var err error
		provider, err = s.repo.GetProvider(ctx, sub.ProviderID)
		if err != nil {
			return "", fmt.Errorf("provider lookup failed: %w", err)
		}
		cache[sub.ProviderID] = provider
	}

	if provider.UsesFixedAddresses() {
		addressID := sub.DeliveryAddressIDs[mealType]
		if addressID == "" {
			return "", errors.New("no delivery address configured")
		}
		address, ok := addressByID[addressID]
		if !ok {
			return "", fmt.Errorf("delivery address %s not found", addressID)
		}
		return address, nil
	}

	customer, err := s.repo.GetCustomer(ctx, sub.CustomerID)
	if err != nil {
		return "", fmt.Errorf("customer lookup failed: %w", err)
	}
	if customer.Address == "" {
		return "", errors.New("customer has no delivery address")
	}
	return customer.Address, nil
}
