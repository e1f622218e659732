package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := g.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
