package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// fakeRepo mirrors the atomic semantics of the real repository in memory:
// the floor check, the debit and the insert succeed or fail together.
type fakeRepo struct {
	meals     map[uint]*models.Meal
	providers map[uint]*models.Provider
	orders    map[string]*models.Order
	payments  map[uint]*models.Payment
	balances  map[uint]float64
	ledger    []models.BalanceTransaction
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		meals:     make(map[uint]*models.Meal),
		providers: make(map[uint]*models.Provider),
		orders:    make(map[string]*models.Order),
		payments:  make(map[uint]*models.Payment),
		balances:  make(map[uint]float64),
	}
}

func (r *fakeRepo) GetMeal(ctx context.Context, id uint) (*models.Meal, error) {
	meal, ok := r.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return meal, nil
}

func (r *fakeRepo) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return provider, nil
}

func (r *fakeRepo) GetOrderByUUID(ctx context.Context, uuid string) (*models.Order, error) {
	order, ok := r.orders[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeRepo) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (r *fakeRepo) HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error) {
	for _, order := range r.orders {
		if order.CustomerID == customerID && order.MealID == mealID &&
			order.Status != models.ORDER_STATUS_CANCELED {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) PlaceOrderAtomic(ctx context.Context, in PlaceOrderInput, floor *float64) (*models.Order, error) {
	balance := r.balances[in.CustomerID]
	if floor != nil && balance-in.Amount < *floor {
		return nil, ErrInsufficientBalance
	}
	r.balances[in.CustomerID] = balance - in.Amount

	r.nextID++
	order := &models.Order{
		ID:              r.nextID,
		UUID:            uuidString(r.nextID),
		CustomerID:      in.CustomerID,
		ProviderID:      in.ProviderID,
		MealID:          in.MealID,
		SelectedOption:  in.SelectedOption,
		DeliveryAddress: in.DeliveryAddress,
		Status:          models.ORDER_STATUS_PENDING,
		Amount:          in.Amount,
		Notes:           in.Notes,
		Meal:            *r.meals[in.MealID],
	}
	r.orders[order.UUID] = order
	r.ledger = append(r.ledger, models.BalanceTransaction{
		CustomerID: in.CustomerID,
		ProviderID: in.ProviderID,
		Type:       models.TXN_TYPE_ORDER_DEBIT,
		Amount:     -in.Amount,
		OrderID:    &order.ID,
	})
	return order, nil
}

func (r *fakeRepo) CancelOrderAtomic(ctx context.Context, orderID uint) (*models.Order, error) {
	for _, order := range r.orders {
		if order.ID != orderID {
			continue
		}
		if !order.CanBeCanceled() {
			return nil, ErrNotCancelable
		}
		now := time.Now()
		order.Status = models.ORDER_STATUS_CANCELED
		order.CanceledAt = &now
		r.balances[order.CustomerID] += order.Amount
		r.ledger = append(r.ledger, models.BalanceTransaction{
			CustomerID: order.CustomerID,
			ProviderID: order.ProviderID,
			Type:       models.TXN_TYPE_REFUND,
			Amount:     order.Amount,
			OrderID:    &order.ID,
		})
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) SettlePaymentAtomic(ctx context.Context, paymentID uint, status string) (*models.Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if payment.IsSettled() {
		return nil, ErrPaymentSettled
	}
	payment.Status = status
	if status == models.PAYMENT_STATUS_PAID {
		r.balances[payment.CustomerID] += payment.Amount
		r.ledger = append(r.ledger, models.BalanceTransaction{
			CustomerID: payment.CustomerID,
			ProviderID: payment.ProviderID,
			Type:       models.TXN_TYPE_PAYMENT_CREDIT,
			Amount:     payment.Amount,
			PaymentID:  &payment.ID,
		})
	}
	return payment, nil
}

func (r *fakeRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	for _, order := range r.orders {
		if order.ID == orderID {
			order.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func uuidString(id uint) string {
	return string(rune('a'+id)) + "-test-uuid"
}

func testService(repo *fakeRepo, now string) *Service {
	ts, _ := time.ParseInLocation("2006-01-02 15:04", now, time.UTC)
	// pin providers to UTC so the fixed clock lines up with meal dates
	for _, p := range repo.providers {
		p.Timezone = "UTC"
	}
	return NewService(repo).WithClock(func() time.Time { return ts })
}

func seedMealAndProvider(repo *fakeRepo) {
	repo.providers[1] = &models.Provider{ID: 1, BusinessName: "Annapurna Tiffins", Timezone: "UTC"}
	repo.meals[10] = &models.Meal{
		ID: 10, ProviderID: 1, Date: "2025-03-10", MealType: models.MEAL_TYPE_LUNCH,
		Option1: "Dal Rice", Option2: "Paneer Thali", Price: 80, CutOffTime: "11:00",
	}
}

func TestPlaceOrderDebitsBalance(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)

	assert.NoError(t, err)
	assert.Equal(t, models.ORDER_STATUS_PENDING, order.Status)
	assert.Equal(t, 80.0, order.Amount)
	assert.Equal(t, 20.0, repo.balances[5])
	assert.Len(t, repo.ledger, 1)
	assert.Equal(t, models.TXN_TYPE_ORDER_DEBIT, repo.ledger[0].Type)
	assert.Equal(t, -80.0, repo.ledger[0].Amount)
}

func TestPlaceOrderAllowsNegativeBalanceWithoutFloor(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = -50

	svc := testService(repo, "2025-03-10 09:00")
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)

	assert.NoError(t, err)
	assert.Equal(t, -130.0, repo.balances[5])
}

func TestPlaceOrderRespectsBalanceFloor(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	floor := 0.0
	repo.providers[1].BalanceFloor = &floor
	repo.balances[5] = 50

	svc := testService(repo, "2025-03-10 09:00")
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	// nothing persisted on failure
	assert.Equal(t, 50.0, repo.balances[5])
	assert.Empty(t, repo.ledger)
	assert.Empty(t, repo.orders)
}

func TestPlaceOrderPinsAmountToMealPrice(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
		Amount: 1, // client-supplied, ignored
	}, ActorCustomer)

	assert.NoError(t, err)
	assert.Equal(t, 80.0, order.Amount)
}

func TestPlaceOrderRejectsUnknownOption(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Biryani", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)

	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestPlaceOrderClosedAfterCutoff(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 11:00")
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)

	assert.ErrorIs(t, err, ErrOrderingClosed)
}

func TestPlaceOrderBatchBypassesWindow(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	// 00:30, long before the 11:00 cutoff would even apply
	svc := testService(repo, "2025-03-10 00:30")
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorBatch)

	assert.NoError(t, err)
}

func TestCancelOrderRefunds(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, repo.balances[5])

	canceled, err := svc.CancelOrder(context.Background(), order.UUID, ActorCustomer)
	assert.NoError(t, err)
	assert.Equal(t, models.ORDER_STATUS_CANCELED, canceled.Status)
	assert.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, 100.0, repo.balances[5])
	assert.Len(t, repo.ledger, 2)
	assert.Equal(t, models.TXN_TYPE_REFUND, repo.ledger[1].Type)
}

func TestCancelOrderLockoutForCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)
	assert.NoError(t, err)

	// 10 minutes before cutoff: locked for the customer
	late := testService(repo, "2025-03-10 10:50")
	_, err = late.CancelOrder(context.Background(), order.UUID, ActorCustomer)
	assert.ErrorIs(t, err, ErrCancellationLocked)
	assert.Equal(t, 20.0, repo.balances[5])

	// but the provider can still cancel
	canceled, err := late.CancelOrder(context.Background(), order.UUID, ActorProvider)
	assert.NoError(t, err)
	assert.Equal(t, models.ORDER_STATUS_CANCELED, canceled.Status)
	assert.Equal(t, 100.0, repo.balances[5])
}

func TestCancelOrderTerminalRejected(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)
	assert.NoError(t, err)

	order.Status = models.ORDER_STATUS_DELIVERED
	_, err = svc.CancelOrder(context.Background(), order.UUID, ActorProvider)
	assert.ErrorIs(t, err, ErrNotCancelable)
}

func TestAdvanceOrderStatus(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 100

	svc := testService(repo, "2025-03-10 09:00")
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 5, ProviderID: 1, MealID: 10,
		SelectedOption: "Dal Rice", DeliveryAddress: "12 MG Road",
	}, ActorCustomer)
	assert.NoError(t, err)

	// skipping a step is rejected
	_, err = svc.AdvanceOrderStatus(context.Background(), order.UUID, models.ORDER_STATUS_OUT_FOR_DELIVERY)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// cancellation must go through CancelOrder, never this path
	_, err = svc.AdvanceOrderStatus(context.Background(), order.UUID, models.ORDER_STATUS_CANCELED)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, next := range []string{
		models.ORDER_STATUS_CONFIRMED,
		models.ORDER_STATUS_OUT_FOR_DELIVERY,
		models.ORDER_STATUS_DELIVERED,
	} {
		updated, err := svc.AdvanceOrderStatus(context.Background(), order.UUID, next)
		assert.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// terminal: no further moves
	_, err = svc.AdvanceOrderStatus(context.Background(), order.UUID, models.ORDER_STATUS_CONFIRMED)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkPaymentPaidCreditsOnce(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = -30
	repo.payments[7] = &models.Payment{
		ID: 7, CustomerID: 5, ProviderID: 1, Amount: 500,
		Status: models.PAYMENT_STATUS_PENDING,
	}

	svc := testService(repo, "2025-03-10 09:00")
	payment, err := svc.MarkPaymentPaid(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, models.PAYMENT_STATUS_PAID, payment.Status)
	assert.Equal(t, 470.0, repo.balances[5])

	// settling twice is rejected, balance untouched
	_, err = svc.MarkPaymentPaid(context.Background(), 7)
	assert.ErrorIs(t, err, ErrPaymentSettled)
	assert.Equal(t, 470.0, repo.balances[5])
}

func TestMarkPaymentFailedNoCredit(t *testing.T) {
	repo := newFakeRepo()
	seedMealAndProvider(repo)
	repo.balances[5] = 0
	repo.payments[7] = &models.Payment{
		ID: 7, CustomerID: 5, ProviderID: 1, Amount: 500,
		Status: models.PAYMENT_STATUS_PENDING,
	}

	svc := testService(repo, "2025-03-10 09:00")
	payment, err := svc.MarkPaymentFailed(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, models.PAYMENT_STATUS_FAILED, payment.Status)
	assert.Equal(t, 0.0, repo.balances[5])
	assert.Empty(t, repo.ledger)
}
