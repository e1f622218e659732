package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewCartService(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *CartService {
	return &CartService{db: db, events: pub, logger: logger}
}

func (s *CartService) Create(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, invalid("user_id is required")
	}
	err := s.db.WithContext(ctx).Select("id").Where("id = ?", userID).First(&models.User{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrInvalidReference)
	}
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	cart := &models.Cart{ID: uuid.NewString(), UserID: userID}
	if err := s.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, translate(err, "create cart")
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		return nil, translate(err, "get cart")
	}
	return &cart, nil
}

// Delete removes the cart and, by cascade, its items. It does not check
// whether the items were checked out.
func (s *CartService) Delete(ctx context.Context, cartID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return translate(err, "delete cart items")
		}
		result := tx.Delete(&models.Cart{}, "id = ?", cartID)
		if result.Error != nil {
			return translate(result.Error, "delete cart")
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
		}
		return nil
	})
	return err
}

// AddItem inserts a new line item. Stock is not checked; a missing product
// surfaces as ErrInvalidReference through the foreign key.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}
	if err := s.cartExists(ctx, s.db, cartID); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, translate(err, "add cart item")
	}
	return item, nil
}

// ListItems joins the cart's items with the products' current names and prices.
func (s *CartService) ListItems(ctx context.Context, cartID string) ([]models.LineItem, error) {
	if err := s.cartExists(ctx, s.db, cartID); err != nil {
		return nil, err
	}
	return lineItems(s.db.WithContext(ctx), cartID)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}

	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
			return translate(err, "get cart item")
		}
		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return translate(err, "update cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return &item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	if result.Error != nil {
		return translate(result.Error, "remove cart item")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

func (s *CartService) cartExists(ctx context.Context, db *gorm.DB, cartID string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", cartID).Count(&count).Error; err != nil {
		return fmt.Errorf("check cart: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	return nil
}

func lineItems(db *gorm.DB, cartID string) ([]models.LineItem, error) {
	items := []models.LineItem{}
	err := db.Table("cart_items").
		Select("cart_items.id AS item_id, cart_items.product_id, products.name AS product_name, products.price, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.created_at, cart_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}
