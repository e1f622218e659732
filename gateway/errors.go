package gateway

import (
	"errors"
	"net/http"

	"github.com/example/punkfits/pkg/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters only for errors wrapping more than one sentinel.
var errorTable = []errorMapping{
	{service.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
	{service.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
	{service.ErrInvalidReference, http.StatusBadRequest, "INVALID_REFERENCE"},
	{service.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{service.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_DECLINED"},
	{service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{service.ErrConflict, http.StatusConflict, "CONFLICT"},
}

func (g *Gateway) respondError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": err.Error(), "code": m.code})
			return
		}
	}

	code := "INTERNAL_ERROR"
	msg := "internal server error"
	if errors.Is(err, service.ErrCheckoutFailed) {
		code = "CHECKOUT_FAILED"
		msg = "checkout failed"
	}
	g.logger.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "code": code})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_INPUT"})
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg, "code": "FORBIDDEN"})
}
