package gateway

import (
	"net/http"

	"github.com/example/trendyshop/pkg/auth"
	"github.com/example/trendyshop/pkg/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password"` // accepted unchecked
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := g.users.Login(c.Request.Context(), req.Email, req.Name)

	// A checkout started by the previous user must not survive the switch.
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (g *Gateway) logout(c *gin.Context) {
	g.users.Logout(c.Request.Context())

	// A stale checkout session is useless without a user.
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (g *Gateway) currentUser(c *gin.Context) {
	user := g.users.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type profileRequest struct {
	Name         *string `json:"name"`
	Mobile       *string `json:"mobile"`
	ProfileImage *string `json:"profileImage"`
}

func (g *Gateway) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := g.users.UpdateProfile(c.Request.Context(), auth.ProfileInput{
		Name:         req.Name,
		Mobile:       req.Mobile,
		ProfileImage: req.ProfileImage,
	})
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type addressRequest struct {
	Type      string `json:"type"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (g *Gateway) addAddress(c *gin.Context) {
	var req addressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "Home"
	}

	addr, ok := g.users.AddAddress(c.Request.Context(), models.Address{
		Type:      req.Type,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		IsDefault: req.IsDefault,
	})
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": addr})
}
