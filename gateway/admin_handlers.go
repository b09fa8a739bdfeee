package gateway

import (
	"net/http"

	"github.com/example/trendyshop/pkg/catalog"
	"github.com/example/trendyshop/pkg/models"
	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	Subcategory    *string  `json:"subcategory"`
	Price          *float64 `json:"price"`
	DiscountPrice  *float64 `json:"discountPrice"`
	OldPrice       *float64 `json:"oldPrice"`
	Stock          *int     `json:"stock"`
	Brand          *string  `json:"brand"`
	Tags           []string `json:"tags"`
	Images         []string `json:"images"`
	IsFeatured     *bool    `json:"isFeatured"`
	DeliveryCharge *float64 `json:"deliveryCharge"`
}

func (r *productRequest) input() catalog.Input {
	return catalog.Input{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		Price:          r.Price,
		DiscountPrice:  r.DiscountPrice,
		OldPrice:       r.OldPrice,
		Stock:          r.Stock,
		Brand:          r.Brand,
		Tags:           r.Tags,
		Images:         r.Images,
		IsFeatured:     r.IsFeatured,
		DeliveryCharge: r.DeliveryCharge,
	}
}

func (g *Gateway) adminListProducts(c *gin.Context) {
	query := c.Query("q")
	sortBy := c.DefaultQuery("sort", catalog.SortNewest)

	products := g.catalog.Search(query, c.Query("category"), sortBy)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

func (g *Gateway) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == nil || *req.Name == "" || req.Price == nil || *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
		return
	}

	product := g.catalog.Add(c.Request.Context(), req.input())
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	product, ok := g.catalog.Update(c.Request.Context(), c.Param("id"), req.input())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	if !g.catalog.Delete(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// toggleStock flips a product between out-of-stock and a restock of ten
// units, mirroring the inventory console's quick action.
func (g *Gateway) toggleStock(c *gin.Context) {
	id := c.Param("id")
	product, ok := g.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	newStock := 0
	if product.Stock == 0 {
		newStock = 10
	}
	updated, _ := g.catalog.Update(c.Request.Context(), id, catalog.Input{Stock: &newStock})
	c.JSON(http.StatusOK, gin.H{"product": updated})
}

// productAudit lists the newest audit entries for a product.
func (g *Gateway) productAudit(c *gin.Context) {
	if g.audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit trail is not configured"})
		return
	}

	entries, err := g.audit.Recent(c.Request.Context(), c.Param("id"), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audit trail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (g *Gateway) adminStats(c *gin.Context) {
	products := g.catalog.List()

	var active, outOfStock, featured int
	var inventoryValue float64
	for _, p := range products {
		if p.Status == models.StatusActive {
			active++
		} else {
			outOfStock++
		}
		if p.IsFeatured {
			featured++
		}
		inventoryValue += p.Price * float64(p.Stock)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts":  len(products),
		"active":         active,
		"outOfStock":     outOfStock,
		"featured":       featured,
		"inventoryValue": inventoryValue,
	})
}
