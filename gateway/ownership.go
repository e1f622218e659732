package gateway

import (
	"github.com/example/punkfits/pkg/models"
	"github.com/gin-gonic/gin"
)

// self reports whether the caller may act on the account id. Without
// enforcement everyone may.
func (g *Gateway) self(c *gin.Context, id string) bool {
	if !g.config.Auth.Enforce {
		return true
	}
	return currentUser(c) == id
}

// ownCart loads the cart and checks the caller owns it. On false the
// response has been written.
func (g *Gateway) ownCart(c *gin.Context, cartID string) (*models.Cart, bool) {
	cart, err := g.services.Carts.Get(c.Request.Context(), cartID)
	if err != nil {
		g.respondError(c, err)
		return nil, false
	}
	if !g.self(c, cart.UserID) {
		forbidden(c, "cart belongs to another user")
		return nil, false
	}
	return cart, true
}

func (g *Gateway) ownOrder(c *gin.Context, orderID string) (*models.Order, bool) {
	order, err := g.services.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		g.respondError(c, err)
		return nil, false
	}
	if !g.self(c, order.UserID) {
		forbidden(c, "order belongs to another user")
		return nil, false
	}
	return order, true
}

// ownerFor resolves the user a create or list acts for: the requested id, or
// the token subject when none is given. A request naming someone else is
// refused.
func (g *Gateway) ownerFor(c *gin.Context, requested string) (string, bool) {
	if requested == "" {
		return currentUser(c), true
	}
	if !g.self(c, requested) {
		forbidden(c, "cannot act for another user")
		return "", false
	}
	return requested, true
}
