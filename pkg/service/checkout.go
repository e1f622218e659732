package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutResult struct {
	CartID     string            `json:"cart_id"`
	UserID     string            `json:"user_id"`
	Total      decimal.Decimal   `json:"total"`
	Items      []models.LineItem `json:"items"`
	PaymentRef string            `json:"payment_ref"`
}

type CheckoutService struct {
	db       *gorm.DB
	payments PaymentAuthorizer
	events   events.Publisher
	logger   *zap.Logger
}

func NewCheckoutService(db *gorm.DB, payments PaymentAuthorizer, pub events.Publisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{db: db, payments: payments, events: pub, logger: logger}
}

// Checkout totals the cart at current catalog prices, authorizes payment and
// clears the cart's items, all inside one transaction. The cart row itself is
// kept and no order is created. An empty userID skips the ownership check.
func (s *CheckoutService) Checkout(ctx context.Context, cartID, userID string) (*CheckoutResult, error) {
	var result *CheckoutResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the cart so concurrent checkouts of it serialize
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", cartID).First(&cart).Error; err != nil {
			return translate(err, "lock cart")
		}
		if userID != "" && cart.UserID != userID {
			return fmt.Errorf("cart %s: %w", cartID, ErrForbidden)
		}

		items, err := lineItems(tx, cartID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Subtotal())
		}

		receipt, err := s.payments.Authorize(ctx, PaymentRequest{CartID: cartID, UserID: cart.UserID, Amount: total})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		result = &CheckoutResult{
			CartID:     cartID,
			UserID:     cart.UserID,
			Total:      total,
			Items:      items,
			PaymentRef: receipt.Reference,
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error("Checkout failed", zap.String("cart_id", cartID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	s.logger.Info("Checkout completed",
		zap.String("cart_id", cartID),
		zap.String("user_id", result.UserID),
		zap.String("total", result.Total.StringFixed(2)),
		zap.Int("item_count", len(result.Items)))

	s.events.Publish(events.Event{
		Action:   events.ActionCheckoutCompleted,
		EntityID: cartID,
		Data: map[string]interface{}{
			"user_id":     result.UserID,
			"total":       result.Total.StringFixed(2),
			"payment_ref": result.PaymentRef,
		},
	})

	return result, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrForbidden, ErrEmptyCart, ErrPaymentDeclined} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
