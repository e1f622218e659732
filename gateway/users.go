package gateway

import (
	"net/http"

	"github.com/example/punkfits/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) createUser(c *gin.Context) {
	var req service.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := g.services.Users.Create(c.Request.Context(), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (g *Gateway) getUser(c *gin.Context) {
	user, err := g.services.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) listUsers(c *gin.Context) {
	var page service.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}

	users, total, err := g.services.Users.List(c.Request.Context(), page)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (g *Gateway) updateUser(c *gin.Context) {
	id := c.Param("id")
	if !g.self(c, id) {
		forbidden(c, "cannot modify another user")
		return
	}

	var req service.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := g.services.Users.Update(c.Request.Context(), id, req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) deleteUser(c *gin.Context) {
	id := c.Param("id")
	if !g.self(c, id) {
		forbidden(c, "cannot delete another user")
		return
	}

	if err := g.services.Users.Delete(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (g *Gateway) listUserOrders(c *gin.Context) {
	var page service.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if !g.self(c, id) {
		forbidden(c, "cannot list another user's orders")
		return
	}
	if _, err := g.services.Users.Get(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}

	orders, total, err := g.services.Orders.List(c.Request.Context(), id, page)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}
