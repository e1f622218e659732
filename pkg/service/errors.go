package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidReference   = errors.New("referenced record does not exist")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrCheckoutFailed     = errors.New("checkout failed")
)

// translate wraps a gorm error with the matching domain error.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", what, ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
	// Keeps the offset far from integer overflow; later pages are empty anyway.
	maxPage = 1_000_000
)

// Page selects a window of a list; zero values mean the first default-sized page.
type Page struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (p Page) normalize() Page {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > maxPage:
		p.Page = maxPage
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = defaultPageSize
	case p.PageSize > maxPageSize:
		p.PageSize = maxPageSize
	}
	return p
}

func (p Page) apply(query *gorm.DB) *gorm.DB {
	p = p.normalize()
	return query.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}
