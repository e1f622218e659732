package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CartID string `json:"cart_id" binding:"required"`
	UserID string `json:"user_id"`
}

func (g *Gateway) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := req.UserID
	if subject := currentUser(c); subject != "" {
		if userID != "" && userID != subject {
			forbidden(c, "cannot check out for another user")
			return
		}
		userID = subject
	}

	result, err := g.services.Checkout.Checkout(c.Request.Context(), req.CartID, userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
