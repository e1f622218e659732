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

// ProductCache is a read-through cache keyed by product id. Any error from
// GetProduct is treated as a miss.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type CreateProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    *string         `json:"category_id"`
	BrandID       *string         `json:"brand_id"`
}

type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	CategoryID    *string          `json:"category_id"`
	BrandID       *string          `json:"brand_id"`
}

type ProductService struct {
	db     *gorm.DB
	cache  ProductCache
	events events.Publisher
	logger *zap.Logger
}

// NewProductService accepts a nil cache.
func NewProductService(db *gorm.DB, cache ProductCache, pub events.Publisher, logger *zap.Logger) *ProductService {
	return &ProductService{db: db, cache: cache, events: pub, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validateProduct(&in.Price, &in.StockQuantity); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, translate(err, "create product")
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	// Try cache first
	if s.cache != nil {
		if cached, err := s.cache.GetProduct(ctx, id); err == nil {
			return cached, nil
		}
	}

	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err, "get product")
	}

	// Update cache
	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, &product); err != nil {
			s.logger.Warn("Failed to cache product", zap.String("product_id", id), zap.Error(err))
		}
	}
	return &product, nil
}

func (s *ProductService) List(ctx context.Context, page Page) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	if err := page.apply(query).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	if err := validateProduct(in.Price, in.StockQuantity); err != nil {
		return nil, err
	}

	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			return translate(err, "get product")
		}

		updates := map[string]interface{}{}
		setIf(updates, "name", in.Name)
		setIf(updates, "description", in.Description)
		setIf(updates, "price", in.Price)
		setIf(updates, "stock_quantity", in.StockQuantity)
		setIf(updates, "category_id", in.CategoryID)
		setIf(updates, "brand_id", in.BrandID)
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return translate(err, "update product")
		}
		return translate(tx.Where("id = ?", id).First(&product).Error, "reload product")
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.events.Publish(events.Event{Action: events.ActionProductUpdated, EntityID: id})
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	s.invalidate(ctx, id)
	s.events.Publish(events.Event{Action: events.ActionProductDeleted, EntityID: id})
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.String("product_id", id), zap.Error(err))
	}
}

// validateProduct also rounds price to the column's two places so responses
// match what every driver stores.
func validateProduct(price *decimal.Decimal, stock *int) error {
	if price != nil {
		if price.IsNegative() {
			return invalid("price must not be negative")
		}
		*price = price.Round(2)
	}
	if stock != nil && *stock < 0 {
		return invalid("stock_quantity must not be negative")
	}
	return nil
}
