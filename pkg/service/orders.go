package service

import (
	"context"
	"fmt"

	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	UserID      string             `json:"user_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

type UpdateOrderInput struct {
	TotalAmount *decimal.Decimal    `json:"total_amount"`
	Status      *models.OrderStatus `json:"status"`
}

type OrderService struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewOrderService(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{db: db, events: pub, logger: logger}
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.UserID == "" {
		return nil, invalid("user_id is required")
	}
	if in.Status == "" {
		in.Status = models.OrderStatusPending
	}
	if err := validateOrder(&in.TotalAmount, &in.Status); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		TotalAmount: in.TotalAmount,
		Status:      in.Status,
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, translate(err, "create order")
	}

	s.events.Publish(events.Event{
		Action:   events.ActionOrderCreated,
		EntityID: order.ID,
		Data:     map[string]interface{}{"user_id": order.UserID, "total_amount": order.TotalAmount.StringFixed(2)},
	})

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err, "get order")
	}
	return &order, nil
}

// List returns orders newest first, optionally restricted to one user.
func (s *OrderService) List(ctx context.Context, userID string, page Page) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Order{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	if err := page.apply(query).Order("created_at DESC, id").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	if err := validateOrder(in.TotalAmount, in.Status); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return translate(err, "get order")
		}

		updates := map[string]interface{}{}
		setIf(updates, "total_amount", in.TotalAmount)
		setIf(updates, "status", in.Status)
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return translate(err, "update order")
		}
		return translate(tx.Where("id = ?", id).First(&order).Error, "reload order")
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Action:   events.ActionOrderUpdated,
		EntityID: id,
		Data:     map[string]interface{}{"status": string(order.Status)},
	})
	return &order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete order")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}

	s.events.Publish(events.Event{Action: events.ActionOrderDeleted, EntityID: id})
	return nil
}

func validateOrder(total *decimal.Decimal, status *models.OrderStatus) error {
	if total != nil {
		if total.IsNegative() {
			return invalid("total_amount must not be negative")
		}
		*total = total.Round(2)
	}
	if status != nil && !status.Valid() {
		return invalid("unknown status %q", *status)
	}
	return nil
}
