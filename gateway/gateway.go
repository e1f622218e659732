package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/example/punkfits/docs"
	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/repository"
	"github.com/example/punkfits/pkg/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// AuditReader serves the audit trail; nil disables the audit route.
type AuditReader interface {
	GetAuditLogs(ctx context.Context, entityID string, limit int64) ([]*repository.AuditLog, error)
}

type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Products *service.ProductService
	Carts    *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Audit    AuditReader
	Ready    func(ctx context.Context) error
}

type Gateway struct {
	config   *config.Config
	services Services
	logger   *zap.Logger
	router   *gin.Engine
	server   *http.Server
}

func NewGateway(cfg *config.Config, logger *zap.Logger, services Services) *Gateway {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	g := &Gateway{
		config:   cfg,
		services: services,
		logger:   logger,
		router:   router,
	}
	g.SetupRoutes()
	return g
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/", g.welcome)

	// Health check
	g.router.GET("/health", g.health)

	// API v1 routes
	v1 := g.router.Group("/api/v1")
	auth := g.authMiddleware()
	{
		v1.POST("/login", g.login)

		// User routes
		v1.POST("/users", g.createUser)
		users := v1.Group("/users", auth)
		{
			users.GET("", g.listUsers)
			users.GET("/:id", g.getUser)
			users.PUT("/:id", g.updateUser)
			users.DELETE("/:id", g.deleteUser)
			users.GET("/:id/orders", g.listUserOrders)
		}

		// Product routes
		v1.GET("/products", g.listProducts)
		v1.GET("/products/:id", g.getProduct)
		products := v1.Group("/products", auth)
		{
			products.POST("", g.createProduct)
			products.PUT("/:id", g.updateProduct)
			products.DELETE("/:id", g.deleteProduct)
		}

		// Cart routes
		carts := v1.Group("/carts", auth)
		{
			carts.POST("", g.createCart)
			carts.GET("/:cart_id", g.getCart)
			carts.DELETE("/:cart_id", g.deleteCart)
			carts.POST("/:cart_id/items", g.addCartItem)
			carts.GET("/:cart_id/items", g.listCartItems)
			carts.PUT("/:cart_id/items/:item_id", g.updateCartItem)
			carts.DELETE("/:cart_id/items/:item_id", g.removeCartItem)
		}

		v1.POST("/checkout", auth, g.checkout)

		// Order routes
		orders := v1.Group("/orders", auth)
		{
			orders.POST("", g.createOrder)
			orders.GET("", g.listOrders)
			orders.GET("/:id", g.getOrder)
			orders.PUT("/:id", g.updateOrder)
			orders.DELETE("/:id", g.deleteOrder)
		}

		if g.services.Audit != nil {
			v1.GET("/audit/:entity_id", auth, g.listAuditLogs)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Start() error {
	addr := g.config.Gateway.Addr()
	g.server = &http.Server{
		Addr:              addr,
		Handler:           g.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.logger.Info("Gateway starting", zap.String("address", addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

func (g *Gateway) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the PunkFits API", "docs": "/swagger/index.html"})
}

func (g *Gateway) health(c *gin.Context) {
	if g.services.Ready != nil {
		if err := g.services.Ready(c.Request.Context()); err != nil {
			g.logger.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
