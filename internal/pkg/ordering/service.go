package ordering

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/appetyte/appetyte/app/models"
)

// defaultTimeout bounds every remote call a service method makes; a hung
// database never blocks a request flow indefinitely.
const defaultTimeout = 10 * time.Second

// Service enforces the ordering rules around the atomic ledger operations:
// option validity, cutoff eligibility, the cancellation lockout and the
// status state machine.
type Service struct {
	repo    Repository
	timeout time.Duration
	now     func() time.Time
}

// NewService creates an ordering service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, timeout: defaultTimeout, now: time.Now}
}

// NewServiceFromDB creates an ordering service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// PlaceOrder validates the request against the meal and the ordering window,
// then runs the atomic check-and-debit-and-insert. The batch path (actor
// ActorBatch) bypasses the wall-clock window: auto-orders are placed for
// today before the day's cutoffs apply.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput, actor Actor) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	meal, err := s.repo.GetMeal(ctx, in.MealID)
	if err != nil {
		return nil, err
	}
	if !meal.HasOption(in.SelectedOption) {
		return nil, ErrInvalidOption
	}

	provider, err := s.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	if actor != ActorBatch {
		now := s.now().In(provider.Location())
		if !OrderingAllowed(meal.Date, meal.CutOffTime, now) {
			return nil, ErrOrderingClosed
		}
	}

	// Amount is pinned to the meal's price at order time regardless of what
	// the caller sent.
	in.Amount = meal.Price

	return s.repo.PlaceOrderAtomic(ctx, in, provider.BalanceFloor)
}

// CancelOrder transitions an order to canceled and reverses its financial
// effect atomically. Customers are held to the lockout window; providers may
// cancel any still-cancelable order.
func (s *Service) CancelOrder(ctx context.Context, orderUUID string, actor Actor) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order, err := s.repo.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeCanceled() {
		return nil, ErrNotCancelable
	}

	if actor == ActorCustomer {
		provider, err := s.repo.GetProvider(ctx, order.ProviderID)
		if err != nil {
			return nil, err
		}
		now := s.now().In(provider.Location())
		if !CancellationAllowed(order.Meal.Date, order.Meal.CutOffTime, now) {
			return nil, ErrCancellationLocked
		}
	}

	return s.repo.CancelOrderAtomic(ctx, order.ID)
}

// AdvanceOrderStatus moves an order one step along the delivery progression.
// Skipping steps, reversing, or touching terminal orders is rejected.
func (s *Service) AdvanceOrderStatus(ctx context.Context, orderUUID, target string) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order, err := s.repo.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	if target == models.ORDER_STATUS_CANCELED || !order.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateOrderStatus(ctx, order.ID, target); err != nil {
		return nil, err
	}
	order.Status = target
	return order, nil
}

// MarkPaymentPaid settles a pending payment as paid, crediting the balance.
func (s *Service) MarkPaymentPaid(ctx context.Context, paymentID uint) (*models.Payment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.SettlePaymentAtomic(ctx, paymentID, models.PAYMENT_STATUS_PAID)
}

// MarkPaymentFailed settles a pending payment as failed without a credit.
func (s *Service) MarkPaymentFailed(ctx context.Context, paymentID uint) (*models.Payment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.SettlePaymentAtomic(ctx, paymentID, models.PAYMENT_STATUS_FAILED)
}

// HasActiveOrder exposes the dedup check for the auto-order batch.
func (s *Service) HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.HasActiveOrder(ctx, customerID, mealID)
}
