package autoorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
	"github.com/appetyte/appetyte/internal/pkg/ordering"
)

type fakeBatchRepo struct {
	subs      []models.Subscription
	skips     []models.SubscriptionSkip
	meals     []models.Meal
	addresses []models.DeliveryAddress
	customers map[uint]*models.Customer
	providers map[uint]*models.Provider
}

func (r *fakeBatchRepo) ActiveSubscriptions(ctx context.Context, date string) ([]models.Subscription, error) {
	var active []models.Subscription
	for _, sub := range r.subs {
		if sub.AutoOrder && sub.IsActiveOn(date) {
			active = append(active, sub)
		}
	}
	return active, nil
}

func (r *fakeBatchRepo) SkipsForDate(ctx context.Context, date string) ([]models.SubscriptionSkip, error) {
	var matching []models.SubscriptionSkip
	for _, skip := range r.skips {
		if skip.SkipDate == date {
			matching = append(matching, skip)
		}
	}
	return matching, nil
}

func (r *fakeBatchRepo) MealsForDate(ctx context.Context, date string) ([]models.Meal, error) {
	var matching []models.Meal
	for _, meal := range r.meals {
		if meal.Date == date {
			matching = append(matching, meal)
		}
	}
	return matching, nil
}

func (r *fakeBatchRepo) AllDeliveryAddresses(ctx context.Context) ([]models.DeliveryAddress, error) {
	return r.addresses, nil
}

func (r *fakeBatchRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (r *fakeBatchRepo) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return provider, nil
}

// fakePlacer records placed orders and answers the dedup check from them.
type fakePlacer struct {
	placed []ordering.PlaceOrderInput
	fail   map[uint]error // customerID -> forced error
}

func (p *fakePlacer) PlaceOrder(ctx context.Context, in ordering.PlaceOrderInput, actor ordering.Actor) (*models.Order, error) {
	if err := p.fail[in.CustomerID]; err != nil {
		return nil, err
	}
	p.placed = append(p.placed, in)
	return &models.Order{CustomerID: in.CustomerID, MealID: in.MealID, Notes: in.Notes}, nil
}

func (p *fakePlacer) HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error) {
	for _, in := range p.placed {
		if in.CustomerID == customerID && in.MealID == mealID {
			return true, nil
		}
	}
	return false, nil
}

func batchFixture() (*fakeBatchRepo, *fakePlacer, *Service) {
	repo := &fakeBatchRepo{
		subs: []models.Subscription{
			{
				ID: 1, CustomerID: 5, ProviderID: 1,
				MealTypes: models.StringList{models.MEAL_TYPE_LUNCH, models.MEAL_TYPE_DINNER},
				StartDate: "2025-03-01", EndDate: "2025-03-31",
				Active: true, AutoOrder: true,
			},
		},
		meals: []models.Meal{
			{ID: 10, ProviderID: 1, Date: "2025-03-10", MealType: models.MEAL_TYPE_LUNCH,
				Option1: "Dal Rice", Price: 80, CutOffTime: "11:00"},
			{ID: 11, ProviderID: 1, Date: "2025-03-10", MealType: models.MEAL_TYPE_DINNER,
				Option1: "Roti Sabzi", Price: 70, CutOffTime: "17:00"},
		},
		customers: map[uint]*models.Customer{
			5: {ID: 5, ProviderID: 1, Name: "Asha", Address: "12 MG Road"},
		},
		providers: map[uint]*models.Provider{
			1: {ID: 1, BusinessName: "Annapurna Tiffins", DeliveryMode: models.DELIVERY_MODE_CUSTOM},
		},
	}
	placer := &fakePlacer{fail: map[uint]error{}}
	svc := NewService(repo, placer, time.UTC).WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC)
	})
	return repo, placer, svc
}

func TestRunPlacesOrdersForSubscribedMealTypes(t *testing.T) {
	_, placer, svc := batchFixture()

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", summary.Date)
	assert.Equal(t, 2, summary.OrdersCreated)
	assert.Empty(t, summary.Errors)

	assert.Len(t, placer.placed, 2)
	for _, in := range placer.placed {
		assert.Equal(t, AutoOrderNote, in.Notes)
		assert.Equal(t, "12 MG Road", in.DeliveryAddress)
	}
	// default selection is the first option
	assert.Equal(t, "Dal Rice", placer.placed[0].SelectedOption)
}

func TestRunHonorsSkips(t *testing.T) {
	repo, placer, svc := batchFixture()
	repo.skips = []models.SubscriptionSkip{
		{SubscriptionID: 1, CustomerID: 5, SkipDate: "2025-03-10", MealType: models.MEAL_TYPE_LUNCH},
	}

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.OrdersCreated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, placer.placed, 1)
	assert.Equal(t, uint(11), placer.placed[0].MealID)
}

func TestRunSkipsMealTypesWithoutAMeal(t *testing.T) {
	repo, placer, svc := batchFixture()
	// provider only published lunch today
	repo.meals = repo.meals[:1]

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.OrdersCreated)
	assert.Empty(t, summary.Errors)
	assert.Len(t, placer.placed, 1)
}

func TestRunIsIdempotent(t *testing.T) {
	_, placer, svc := batchFixture()

	first, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, first.OrdersCreated)

	// second run the same night places nothing new
	second, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.OrdersCreated)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, placer.placed, 2)
}

func TestRunFixedModeResolvesConfiguredAddress(t *testing.T) {
	repo, placer, svc := batchFixture()
	repo.providers[1].DeliveryMode = models.DELIVERY_MODE_FIXED
	repo.addresses = []models.DeliveryAddress{
		{ID: 3, ProviderID: 1, Name: "Office Park", Address: "Tower B, Tech Park"},
	}
	repo.subs[0].DeliveryAddressIDs = models.StringMap{
		models.MEAL_TYPE_LUNCH:  "3",
		models.MEAL_TYPE_DINNER: "3",
	}

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.OrdersCreated)
	assert.Equal(t, "Tower B, Tech Park", placer.placed[0].DeliveryAddress)
}

func TestRunFixedModeMissingAddressIsAnError(t *testing.T) {
	repo, placer, svc := batchFixture()
	repo.providers[1].DeliveryMode = models.DELIVERY_MODE_FIXED
	// no DeliveryAddressIDs configured on the subscription

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.OrdersCreated)
	assert.Len(t, summary.Errors, 2)
	assert.Empty(t, placer.placed)
}

func TestRunFailuresDoNotAbort(t *testing.T) {
	repo, placer, svc := batchFixture()
	repo.subs = append(repo.subs, models.Subscription{
		ID: 2, CustomerID: 6, ProviderID: 1,
		MealTypes: models.StringList{models.MEAL_TYPE_LUNCH},
		StartDate: "2025-03-01", EndDate: "2025-03-31",
		Active: true, AutoOrder: true,
	})
	repo.customers[6] = &models.Customer{ID: 6, ProviderID: 1, Name: "Ravi", Address: "7 Hill Street"}
	placer.fail[6] = ordering.ErrInsufficientBalance

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	// customer 5's two orders still went through
	assert.Equal(t, 2, summary.OrdersCreated)
	assert.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "subscription 2")
}

func TestRunIgnoresInactiveAndOffRangeSubscriptions(t *testing.T) {
	repo, placer, svc := batchFixture()
	repo.subs[0].Active = false
	repo.subs = append(repo.subs, models.Subscription{
		ID: 3, CustomerID: 5, ProviderID: 1,
		MealTypes: models.StringList{models.MEAL_TYPE_LUNCH},
		StartDate: "2025-04-01", EndDate: "2025-04-30",
		Active: true, AutoOrder: true,
	})

	summary, err := svc.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.OrdersCreated)
	assert.Empty(t, placer.placed)
}
