package ordering

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appetyte/appetyte/app/models"
)

// Repository is the persistence boundary of the order/balance ledger. The
// three *Atomic methods are the only writers of Customer.CurrentBalance in
// the whole application; each couples the balance mutation, its subject row
// and its ledger entry inside one database transaction.
type Repository interface {
	GetMeal(ctx context.Context, id uint) (*models.Meal, error)
	GetProvider(ctx context.Context, id uint) (*models.Provider, error)
	GetOrderByUUID(ctx context.Context, uuid string) (*models.Order, error)
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error)

	PlaceOrderAtomic(ctx context.Context, in PlaceOrderInput, floor *float64) (*models.Order, error)
	CancelOrderAtomic(ctx context.Context, orderID uint) (*models.Order, error)
	SettlePaymentAtomic(ctx context.Context, paymentID uint, status string) (*models.Payment, error)

	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed ledger repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetMeal(ctx context.Context, id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *gormRepository) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *gormRepository) GetOrderByUUID(ctx context.Context, uuid string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Meal").Where("uuid = ?", uuid).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// HasActiveOrder reports whether a non-canceled order already links the
// customer to the meal. The auto-order batch uses this as its idempotency
// guard against double-charging on a re-run.
func (r *gormRepository) HasActiveOrder(ctx context.Context, customerID, mealID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ? AND meal_id = ? AND status <> ?", customerID, mealID, models.ORDER_STATUS_CANCELED).
		Count(&count).Error
	return count > 0, err
}

// PlaceOrderAtomic creates the order row and debits the customer balance as
// one unit: the customer row is locked for the duration of the transaction,
// so concurrent placements against the same balance serialize. When the
// debit would break the provider's balance floor nothing is written and
// ErrInsufficientBalance comes back.
func (r *gormRepository) PlaceOrderAtomic(ctx context.Context, in PlaceOrderInput, floor *float64) (*models.Order, error) {
	var placed *models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, in.CustomerID).Error; err != nil {
			return err
		}

		newBalance := customer.CurrentBalance - in.Amount
		if floor != nil && newBalance < *floor {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("current_balance", newBalance).Error; err != nil {
			return err
		}

		order := &models.Order{
			CustomerID:      in.CustomerID,
			ProviderID:      in.ProviderID,
			MealID:          in.MealID,
			SelectedOption:  in.SelectedOption,
			DeliveryAddress: in.DeliveryAddress,
			Status:          models.ORDER_STATUS_PENDING,
			Amount:          in.Amount,
			Notes:           in.Notes,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		entry := &models.BalanceTransaction{
			CustomerID: in.CustomerID,
			ProviderID: in.ProviderID,
			Type:       models.TXN_TYPE_ORDER_DEBIT,
			Amount:     -in.Amount,
			OrderID:    &order.ID,
			Note:       in.SelectedOption,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// CancelOrderAtomic flips the order to canceled, credits the refund and
// writes the refund ledger entry in one transaction. All three effects land
// or none do.
func (r *gormRepository) CancelOrderAtomic(ctx context.Context, orderID uint) (*models.Order, error) {
	var canceled *models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			return err
		}
		if !order.CanBeCanceled() {
			return ErrNotCancelable
		}

		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, order.CustomerID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status":      models.ORDER_STATUS_CANCELED,
			"canceled_at": now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("current_balance", customer.CurrentBalance+order.Amount).Error; err != nil {
			return err
		}

		entry := &models.BalanceTransaction{
			CustomerID: order.CustomerID,
			ProviderID: order.ProviderID,
			Type:       models.TXN_TYPE_REFUND,
			Amount:     order.Amount,
			OrderID:    &order.ID,
			Note:       "order canceled",
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		order.Status = models.ORDER_STATUS_CANCELED
		order.CanceledAt = &now
		canceled = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}

// SettlePaymentAtomic resolves a pending payment. A paid settlement credits
// the balance and records the ledger entry in the same transaction; a failed
// settlement only flips the status.
func (r *gormRepository) SettlePaymentAtomic(ctx context.Context, paymentID uint, status string) (*models.Payment, error) {
	var settled *models.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.IsSettled() {
			return ErrPaymentSettled
		}

		updates := map[string]interface{}{"status": status}
		if status == models.PAYMENT_STATUS_PAID {
			now := time.Now()
			updates["paid_at"] = now
			payment.PaidAt = &now

			var customer models.Customer
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, payment.CustomerID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
				Update("current_balance", customer.CurrentBalance+payment.Amount).Error; err != nil {
				return err
			}

			entry := &models.BalanceTransaction{
				CustomerID: payment.CustomerID,
				ProviderID: payment.ProviderID,
				Type:       models.TXN_TYPE_PAYMENT_CREDIT,
				Amount:     payment.Amount,
				PaymentID:  &payment.ID,
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}

		payment.Status = status
		settled = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

func (r *gormRepository) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", status).Error
}
