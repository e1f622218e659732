package gateway

import (
	"net/http"

	"github.com/example/punkfits/pkg/service"
	"github.com/gin-gonic/gin"
)

type listOrdersQuery struct {
	service.Page
	UserID string `form:"user_id"`
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req service.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := g.ownerFor(c, req.UserID)
	if !ok {
		return
	}
	req.UserID = userID

	order, err := g.services.Orders.Create(c.Request.Context(), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, ok := g.ownOrder(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// listOrders defaults to the caller's orders. Without enforcement and without
// a token it lists every order.
func (g *Gateway) listOrders(c *gin.Context) {
	var q listOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := g.ownerFor(c, q.UserID)
	if !ok {
		return
	}

	orders, total, err := g.services.Orders.List(c.Request.Context(), userID, q.Page)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (g *Gateway) updateOrder(c *gin.Context) {
	var req service.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if _, ok := g.ownOrder(c, id); !ok {
		return
	}

	order, err := g.services.Orders.Update(c.Request.Context(), id, req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	id := c.Param("id")
	if _, ok := g.ownOrder(c, id); !ok {
		return
	}
	if err := g.services.Orders.Delete(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
