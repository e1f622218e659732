package gateway

import (
	"net/http"

	"github.com/example/punkfits/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) createProduct(c *gin.Context) {
	var req service.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := g.services.Products.Create(c.Request.Context(), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (g *Gateway) getProduct(c *gin.Context) {
	product, err := g.services.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) listProducts(c *gin.Context) {
	var page service.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}

	products, total, err := g.services.Products.List(c.Request.Context(), page)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	var req service.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := g.services.Products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := g.services.Products.Delete(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
