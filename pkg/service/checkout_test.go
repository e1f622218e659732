package service

import (
	"context"
	"testing"

	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cartWith(t *testing.T, f *fixture, lines map[*models.Product]int) (*models.User, *models.Cart) {
	t.Helper()
	ctx := context.Background()
	u := f.user(t, "buyer@example.com", "password1")
	cart, err := f.carts.Create(ctx, u.ID)
	require.NoError(t, err)
	for p, qty := range lines {
		_, err := f.carts.AddItem(ctx, cart.ID, p.ID, qty)
		require.NoError(t, err)
	}
	return u, cart
}

func TestCheckoutTotalsExactlyAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ten := f.product(t, "Ten", "10.00")
	five := f.product(t, "Five", "5.00")
	u, cart := cartWith(t, f, map[*models.Product]int{ten: 2, five: 1})

	res, err := f.checkout.Checkout(ctx, cart.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.00").Equal(res.Total), "total=%s", res.Total)
	assert.Equal(t, "25.00", res.Total.StringFixed(2))
	assert.Len(t, res.Items, 2)
	assert.Equal(t, u.ID, res.UserID)
	assert.NotEmpty(t, res.PaymentRef)

	items, err := f.carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// cart row survives and no order is written
	_, err = f.carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	assert.Contains(t, f.pub.actions(), events.ActionCheckoutCompleted)
}

func TestCheckoutDecimalPrecision(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Dime", "0.10")
	u, cart := cartWith(t, f, map[*models.Product]int{p: 3})

	res, err := f.checkout.Checkout(context.Background(), cart.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.30").Equal(res.Total), "total=%s", res.Total)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	u, cart := cartWith(t, f, nil)

	res, err := f.checkout.Checkout(context.Background(), cart.ID, u.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, res)
	assert.NotContains(t, f.pub.actions(), events.ActionCheckoutCompleted)

	_, err = f.carts.Get(context.Background(), cart.ID)
	assert.NoError(t, err)
}

func TestCheckoutDeclinedPaymentLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Vinyl", "30.00")
	u, cart := cartWith(t, f, map[*models.Product]int{p: 1})

	declining := NewCheckoutService(f.db, declinePayments{}, f.pub, zap.NewNop())
	_, err := declining.Checkout(ctx, cart.ID, u.ID)
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	items, err := f.carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutMissingAndForeignCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Chain", "9.00")
	_, cart := cartWith(t, f, map[*models.Product]int{p: 1})
	other := f.user(t, "other@example.com", "password1")

	_, err := f.checkout.Checkout(ctx, "no-such-cart", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.checkout.Checkout(ctx, cart.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := f.checkout.Checkout(ctx, cart.ID, "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9).Equal(res.Total))
}
