// Package gateway is the HTTP surface of the storefront. It only
// dispatches to the stores; every rule lives in the packages it calls.
package gateway

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/example/trendyshop/pkg/assist"
	"github.com/example/trendyshop/pkg/audit"
	"github.com/example/trendyshop/pkg/auth"
	"github.com/example/trendyshop/pkg/cart"
	"github.com/example/trendyshop/pkg/catalog"
	"github.com/example/trendyshop/pkg/checkout"
	"github.com/example/trendyshop/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps are the collaborators the gateway dispatches to.
type Deps struct {
	Catalog *catalog.Store
	Cart    *cart.Store
	Users   *auth.Store
	Assist  *assist.Service
	Settler checkout.Settler
	Audit   *audit.Log // nil when the audit trail is not configured
}

type Gateway struct {
	config  *config.Config
	logger  *zap.Logger
	router  *gin.Engine
	catalog *catalog.Store
	cart    *cart.Store
	users   *auth.Store
	assist  *assist.Service
	settler checkout.Settler
	audit   *audit.Log

	mu      sync.Mutex
	session *checkout.Session
}

func NewGateway(cfg *config.Config, logger *zap.Logger, deps Deps) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config:  cfg,
		logger:  logger,
		router:  router,
		catalog: deps.Catalog,
		cart:    deps.Cart,
		users:   deps.Users,
		assist:  deps.Assist,
		settler: deps.Settler,
		audit:   deps.Audit,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := g.router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", g.login)
			authGroup.POST("/logout", g.logout)
			authGroup.GET("/me", g.currentUser)
			authGroup.PUT("/me", g.updateProfile)
			authGroup.POST("/me/addresses", g.addAddress)
		}

		// Shop routes
		v1.GET("/products", g.listProducts)
		v1.GET("/products/:id", g.getProduct)
		v1.GET("/orders", g.orderHistory)

		// Cart routes
		cartGroup := v1.Group("/cart")
		{
			cartGroup.GET("", g.getCart)
			cartGroup.POST("/items", g.addToCart)
			cartGroup.PUT("/items/:productId", g.updateCartItem)
			cartGroup.DELETE("/items/:productId", g.removeCartItem)
			cartGroup.DELETE("", g.clearCart)
		}

		// Checkout routes
		co := v1.Group("/checkout")
		{
			co.POST("", g.startCheckout)
			co.GET("", g.checkoutState)
			co.POST("/address", g.selectAddress)
			co.POST("/payment", g.selectPayment)
			co.POST("/next", g.checkoutNext)
			co.POST("/back", g.checkoutBack)
			co.POST("/confirm", g.confirmCheckout)
		}

		// Assist routes
		assistGroup := v1.Group("/assist")
		{
			assistGroup.POST("/gift-guide", g.giftGuide)
			assistGroup.POST("/product-copy", g.productCopy)
			assistGroup.POST("/recommendations", g.recommendations)
		}

		// Admin routes
		admin := v1.Group("/admin", g.requireAdmin)
		{
			admin.GET("/products", g.adminListProducts)
			admin.POST("/products", g.createProduct)
			admin.PUT("/products/:id", g.updateProduct)
			admin.DELETE("/products/:id", g.deleteProduct)
			admin.POST("/products/:id/toggle-stock", g.toggleStock)
			admin.GET("/products/:id/audit", g.productAudit)
			admin.GET("/stats", g.adminStats)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
	g.logger.Info("Storefront starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Router exposes the handler for tests.
func (g *Gateway) Router() http.Handler {
	return g.router
}

func (g *Gateway) requireAdmin(c *gin.Context) {
	user := g.users.Current()
	if !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
