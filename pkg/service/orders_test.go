package service

import (
	"context"
	"testing"

	"github.com/example/punkfits/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCRUDWithPartialUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "orders@example.com", "password1")

	order, err := f.orders.Create(ctx, CreateOrderInput{UserID: u.ID, TotalAmount: decimal.RequireFromString("25.00")})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	completed := models.OrderStatusCompleted
	updated, err := f.orders.Update(ctx, order.ID, UpdateOrderInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.True(t, decimal.RequireFromString("25.00").Equal(updated.TotalAmount))

	corrected := decimal.RequireFromString("20.00")
	updated, err = f.orders.Update(ctx, order.ID, UpdateOrderInput{TotalAmount: &corrected})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.True(t, corrected.Equal(updated.TotalAmount))

	list, total, err := f.orders.List(ctx, u.ID, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	list, _, err = f.orders.List(ctx, "someone-else", Page{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, f.orders.Delete(ctx, order.ID))
	assert.ErrorIs(t, f.orders.Delete(ctx, order.ID), ErrNotFound)
	_, err = f.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "v@example.com", "password1")

	_, err := f.orders.Create(ctx, CreateOrderInput{TotalAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.orders.Create(ctx, CreateOrderInput{UserID: u.ID, TotalAmount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.orders.Create(ctx, CreateOrderInput{UserID: u.ID, Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bogus := models.OrderStatus("teleported")
	_, err = f.orders.Update(ctx, "missing", UpdateOrderInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.orders.Update(ctx, "missing", UpdateOrderInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}
