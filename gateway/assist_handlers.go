package gateway

import (
	"errors"
	"net/http"

	"github.com/example/trendyshop/pkg/assist"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) giftGuide(c *gin.Context) {
	featured := g.catalog.Featured(4)

	text, err := g.assist.GiftGuide(c.Request.Context(), featured)
	if errors.Is(err, assist.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "gift guide is already being generated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

type productCopyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (g *Gateway) productCopy(c *gin.Context) {
	var req productCopyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a product name first"})
		return
	}

	copyResult, err := g.assist.ProductCopy(c.Request.Context(), req.Name)
	if errors.Is(err, assist.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "copy is already being generated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"description": copyResult.Description,
		"tags":        copyResult.Tags,
	})
}

type recommendationsRequest struct {
	Query string `json:"query" binding:"required"`
}

func (g *Gateway) recommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids, err := g.assist.Recommendations(c.Request.Context(), req.Query, g.catalog.List())
	if errors.Is(err, assist.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "recommendations are already being generated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}
