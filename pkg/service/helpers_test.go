package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/example/punkfits/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

type declinePayments struct{}

func (declinePayments) Authorize(context.Context, PaymentRequest) (*PaymentReceipt, error) {
	return nil, errors.New("card declined")
}

type fixture struct {
	db       *gorm.DB
	pub      *recordingPublisher
	auth     *AuthService
	users    *UserService
	products *ProductService
	carts    *CartService
	checkout *CheckoutService
	orders   *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	logger := testutil.Logger(t)
	pub := &recordingPublisher{}
	authCfg := testutil.AuthConfig()

	return &fixture{
		db:       db,
		pub:      pub,
		auth:     NewAuthService(db, authCfg, pub, logger),
		users:    NewUserService(db, authCfg.BcryptCost, pub, logger),
		products: NewProductService(db, nil, pub, logger),
		carts:    NewCartService(db, pub, logger),
		checkout: NewCheckoutService(db, SimulatedPayments{}, pub, logger),
		orders:   NewOrderService(db, pub, logger),
	}
}

func (f *fixture) user(t *testing.T, email, password string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{
		FirstName: "Sid",
		LastName:  "Vicious",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) product(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), CreateProductInput{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
