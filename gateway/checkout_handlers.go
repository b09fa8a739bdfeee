package gateway

import (
	"errors"
	"net/http"

	"github.com/example/trendyshop/pkg/checkout"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) startCheckout(c *gin.Context) {
	user := g.users.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	session, err := checkout.NewSession(g.cart, g.settler, user.ID, user.DefaultAddressID(), g.logger.Named("checkout"))
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	g.renderCheckout(c, session)
}

func (g *Gateway) currentSession() *checkout.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (g *Gateway) checkoutState(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}
	g.renderCheckout(c, session)
}

type selectAddressRequest struct {
	AddressID string `json:"addressId" binding:"required"`
}

func (g *Gateway) selectAddress(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}

	var req selectAddressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !g.users.HasAddress(req.AddressID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address does not belong to your profile"})
		return
	}

	session.SelectAddress(req.AddressID)
	g.renderCheckout(c, session)
}

type selectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

func (g *Gateway) selectPayment(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}

	var req selectPaymentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.SelectPayment(req.Method)
	g.renderCheckout(c, session)
}

func (g *Gateway) checkoutNext(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}

	if err := session.Next(); err != nil {
		if errors.Is(err, checkout.ErrNoAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please select a delivery address"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g.renderCheckout(c, session)
}

func (g *Gateway) checkoutBack(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}

	if err := session.Back(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g.renderCheckout(c, session)
}

func (g *Gateway) confirmCheckout(c *gin.Context) {
	session := g.currentSession()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}

	order, err := session.Confirm(c.Request.Context())
	switch {
	case errors.Is(err, checkout.ErrSettlementInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "payment already in progress"})
		return
	case errors.Is(err, checkout.ErrNoAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please select a delivery address"})
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty"})
		return
	case errors.Is(err, checkout.ErrNotAtReview), errors.Is(err, checkout.ErrCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"message": "Order placed successfully",
	})
}

func (g *Gateway) renderCheckout(c *gin.Context, session *checkout.Session) {
	step := session.Step()
	c.JSON(http.StatusOK, gin.H{
		"step":          step.String(),
		"stepNumber":    int(step),
		"addressId":     session.AddressID(),
		"paymentMethod": session.PaymentMethod(),
		"itemCount":     g.cart.Count(),
		"quote":         session.Quote(),
	})
}
