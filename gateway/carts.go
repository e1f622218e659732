package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createCartRequest struct {
	UserID string `json:"user_id"`
}

type cartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type cartItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Every route below except createCart acts on an existing cart, which must
// belong to the caller while auth is enforced.

func (g *Gateway) createCart(c *gin.Context) {
	var req createCartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	userID, ok := g.ownerFor(c, req.UserID)
	if !ok {
		return
	}

	cart, err := g.services.Carts.Create(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (g *Gateway) getCart(c *gin.Context) {
	cart, ok := g.ownCart(c, c.Param("cart_id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) deleteCart(c *gin.Context) {
	id := c.Param("cart_id")
	if _, ok := g.ownCart(c, id); !ok {
		return
	}
	if err := g.services.Carts.Delete(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (g *Gateway) addCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cartID := c.Param("cart_id")
	if _, ok := g.ownCart(c, cartID); !ok {
		return
	}

	item, err := g.services.Carts.AddItem(c.Request.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (g *Gateway) listCartItems(c *gin.Context) {
	cartID := c.Param("cart_id")
	if _, ok := g.ownCart(c, cartID); !ok {
		return
	}

	items, err := g.services.Carts.ListItems(c.Request.Context(), cartID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	var req cartItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cartID := c.Param("cart_id")
	if _, ok := g.ownCart(c, cartID); !ok {
		return
	}

	item, err := g.services.Carts.UpdateItemQuantity(c.Request.Context(), cartID, c.Param("item_id"), req.Quantity)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	cartID, itemID := c.Param("cart_id"), c.Param("item_id")
	if _, ok := g.ownCart(c, cartID); !ok {
		return
	}
	if err := g.services.Carts.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": itemID})
}
