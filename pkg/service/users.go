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

type CreateUserInput struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UpdateUserInput leaves every nil field unchanged.
type UpdateUserInput struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   *string `json:"password" binding:"omitempty,min=6,max=72"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

type UserService struct {
	db         *gorm.DB
	bcryptCost int
	events     events.Publisher
	logger     *zap.Logger
}

func NewUserService(db *gorm.DB, bcryptCost int, pub events.Publisher, logger *zap.Logger) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost, events: pub, logger: logger}
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.emailTaken(ctx, s.db, email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	hashed, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         uuid.NewString(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      email,
		Password:   hashed,
		Phone:      in.Phone,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err, "create user")
	}

	s.events.Publish(events.Event{
		Action:   events.ActionUserCreated,
		EntityID: user.ID,
		Data:     map[string]interface{}{"email": user.Email},
	})

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, page Page) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.WithContext(ctx).Model(&models.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if err := page.apply(query).Order("created_at, id").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Update applies only the supplied fields. A new password is re-hashed; an
// absent one keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return translate(err, "get user")
		}

		updates := map[string]interface{}{}
		setIf(updates, "first_name", in.FirstName)
		setIf(updates, "last_name", in.LastName)
		setIf(updates, "phone", in.Phone)
		setIf(updates, "address", in.Address)
		setIf(updates, "city", in.City)
		setIf(updates, "postal_code", in.PostalCode)
		setIf(updates, "country", in.Country)
		if in.Email != nil {
			email := normalizeEmail(*in.Email)
			taken, err := s.emailTaken(ctx, tx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("email %s: %w", email, ErrConflict)
			}
			updates["email"] = email
		}
		if in.Password != nil {
			hashed, err := HashPassword(*in.Password, s.bcryptCost)
			if err != nil {
				return err
			}
			updates["password"] = hashed
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return translate(err, "update user")
		}
		return translate(tx.Where("id = ?", id).First(&user).Error, "reload user")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and, by cascade, their carts. A user with orders
// is refused with ErrConflict.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("user_id = ?", id).Count(&orders).Error; err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if orders > 0 {
			return fmt.Errorf("user %s still has %d orders: %w", id, orders, ErrConflict)
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				return fmt.Errorf("user %s is still referenced: %w", id, ErrConflict)
			}
			return translate(result.Error, "delete user")
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(events.Event{Action: events.ActionUserDeleted, EntityID: id})
	return nil
}

func (s *UserService) emailTaken(ctx context.Context, db *gorm.DB, email, exceptID string) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func setIf[T any](updates map[string]interface{}, column string, value *T) {
	if value != nil {
		updates[column] = *value
	}
}
