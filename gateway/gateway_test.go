package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/trendyshop/pkg/assist"
	"github.com/example/trendyshop/pkg/auth"
	"github.com/example/trendyshop/pkg/cart"
	"github.com/example/trendyshop/pkg/catalog"
	"github.com/example/trendyshop/pkg/config"
	"github.com/example/trendyshop/pkg/models"
	"github.com/example/trendyshop/pkg/snapshot"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAdminEmail   = "admin@example.com"
	testShopperEmail = "shopper@example.com"
)

type instantSettler struct{}

func (instantSettler) Settle(_ context.Context, order models.Order) (models.Order, error) {
	order.PaymentStatus = "Paid"
	return order, nil
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	logger := zap.NewNop()
	snap := snapshot.NewMemoryStore()

	catalogStore := catalog.NewStore(snap, nil, logger)
	catalogStore.Load(context.Background())

	cartStore := cart.NewStore(catalogStore, snap, logger)
	userStore := auth.NewStore(testAdminEmail, snap, logger)
	assistService := assist.NewService(context.Background(), &config.GeminiConfig{}, logger)

	g := NewGateway(&config.Config{}, logger, Deps{
		Catalog: catalogStore,
		Cart:    cartStore,
		Users:   userStore,
		Assist:  assistService,
		Settler: instantSettler{},
	})
	g.SetupRoutes()
	return g
}

func do(t *testing.T, g *Gateway, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.Router().ServeHTTP(rec, req)

	var payload map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func login(t *testing.T, g *Gateway, email string) {
	t.Helper()
	rec, _ := do(t, g, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": "anything"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	g := newTestGateway(t)
	rec, payload := do(t, g, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", payload["status"])
}

func TestAuthFlow(t *testing.T) {
	g := newTestGateway(t)

	t.Run("me before login is unauthorized", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodGet, "/api/v1/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login rejects a malformed email", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login then me", func(t *testing.T) {
		login(t, g, testShopperEmail)
		rec, payload := do(t, g, http.MethodGet, "/api/v1/auth/me", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		user := payload["user"].(map[string]interface{})
		assert.Equal(t, testShopperEmail, user["email"])
		assert.Equal(t, models.RoleUser, user["role"])
	})

	t.Run("logout clears the session", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodPost, "/api/v1/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec, _ = do(t, g, http.MethodGet, "/api/v1/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListAndGetProducts(t *testing.T) {
	g := newTestGateway(t)

	rec, payload := do(t, g, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(len(catalog.SeedProducts())), payload["total"])
	assert.NotEmpty(t, payload["categories"])

	rec, payload = do(t, g, http.MethodGet, "/api/v1/products/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, payload["product"])

	rec, _ = do(t, g, http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	g := newTestGateway(t)

	rec, payload := do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), payload["count"])

	t.Run("quantity defaults to one", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p2"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), payload["count"])
	})

	t.Run("unknown product is a silent no-op", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "ghost"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), payload["count"])
	})

	t.Run("update and remove", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPut, "/api/v1/cart/items/p1", gin.H{"quantity": 5})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(6), payload["count"])

		rec, payload = do(t, g, http.MethodDelete, "/api/v1/cart/items/p1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), payload["count"])
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodDelete, "/api/v1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), payload["count"])
	})
}

func TestOrderHistory(t *testing.T) {
	g := newTestGateway(t)

	rec, _ := do(t, g, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, g, testShopperEmail)
	rec, payload := do(t, g, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), payload["total"])
}

func TestCheckoutFlow(t *testing.T) {
	g := newTestGateway(t)

	t.Run("requires a login", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	login(t, g, testShopperEmail)

	t.Run("rejects an empty cart", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "your cart is empty", payload["error"])
	})

	do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1", "quantity": 2})

	rec, addrPayload := do(t, g, http.MethodPost, "/api/v1/auth/me/addresses", gin.H{
		"street": "1 Main St", "city": "Pune", "zip": "411001",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	addressID := addrPayload["address"].(map[string]interface{})["id"].(string)

	t.Run("starts at the address step with defaults preselected", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "address", payload["step"])
		assert.Equal(t, addressID, payload["addressId"])
		assert.Equal(t, "UPI", payload["paymentMethod"])
	})

	t.Run("rejects an address outside the profile", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodPost, "/api/v1/checkout/address", gin.H{"addressId": "stranger"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("walks forward to review", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "payment", payload["step"])

		rec, payload = do(t, g, http.MethodPost, "/api/v1/checkout/payment", gin.H{"method": "Cash on Delivery"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cash on Delivery", payload["paymentMethod"])

		rec, payload = do(t, g, http.MethodPost, "/api/v1/checkout/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "review", payload["step"])
	})

	t.Run("confirm places the order and clears everything", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout/confirm", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Order placed successfully", payload["message"])

		order := payload["order"].(map[string]interface{})
		assert.Equal(t, "Paid", order["paymentStatus"])
		assert.Equal(t, addressID, order["addressId"])

		rec, cartPayload := do(t, g, http.MethodGet, "/api/v1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), cartPayload["count"])

		rec, _ = do(t, g, http.MethodGet, "/api/v1/checkout", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLogin_DiscardsPreviousCheckoutSession(t *testing.T) {
	g := newTestGateway(t)
	login(t, g, testShopperEmail)
	do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1"})

	rec, _ := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	login(t, g, "other@example.com")
	rec, _ = do(t, g, http.MethodGet, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirm_RejectsCartEmptiedMidCheckout(t *testing.T) {
	g := newTestGateway(t)
	login(t, g, testShopperEmail)
	do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1"})
	do(t, g, http.MethodPost, "/api/v1/auth/me/addresses", gin.H{
		"street": "1 Main St", "city": "Pune", "zip": "411001",
	})

	rec, _ := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, g, http.MethodPost, "/api/v1/checkout/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, g, http.MethodPost, "/api/v1/checkout/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, g, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "your cart is empty", payload["error"])
}

func TestAddToCart_NegativeQuantityIsIgnored(t *testing.T) {
	g := newTestGateway(t)

	rec, payload := do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1", "quantity": -5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), payload["count"])
}

func TestCheckoutNext_BlockedWithoutAddress(t *testing.T) {
	g := newTestGateway(t)
	login(t, g, testShopperEmail)
	do(t, g, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "p1"})

	rec, _ := do(t, g, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := do(t, g, http.MethodPost, "/api/v1/checkout/next", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please select a delivery address", payload["error"])
}

func TestAdminEndpoints(t *testing.T) {
	g := newTestGateway(t)

	t.Run("forbidden when logged out", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodGet, "/api/v1/admin/products", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("forbidden for a plain user", func(t *testing.T) {
		login(t, g, testShopperEmail)
		rec, _ := do(t, g, http.MethodGet, "/api/v1/admin/products", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	login(t, g, testAdminEmail)

	t.Run("create validates name and price", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/admin/products", gin.H{"name": "No Price"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name and price are required", payload["error"])
	})

	var created string
	t.Run("create fills defaults", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/admin/products", gin.H{"name": "Nova Tracker", "price": 1299})
		require.Equal(t, http.StatusCreated, rec.Code)

		product := payload["product"].(map[string]interface{})
		created = product["id"].(string)
		assert.Equal(t, catalog.DefaultBrand, product["brand"])
		assert.Equal(t, models.StatusOutOfStock, product["status"])
	})

	t.Run("toggle-stock restocks and depletes", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/admin/products/"+created+"/toggle-stock", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		product := payload["product"].(map[string]interface{})
		assert.Equal(t, float64(10), product["stock"])
		assert.Equal(t, models.StatusActive, product["status"])

		rec, payload = do(t, g, http.MethodPost, "/api/v1/admin/products/"+created+"/toggle-stock", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		product = payload["product"].(map[string]interface{})
		assert.Equal(t, float64(0), product["stock"])
	})

	t.Run("update missing product is not found", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodPut, "/api/v1/admin/products/missing", gin.H{"price": 10})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("stats reflect the catalog", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodGet, "/api/v1/admin/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(len(catalog.SeedProducts())+1), payload["totalProducts"])
	})

	t.Run("audit trail reports unavailable when not configured", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodGet, "/api/v1/admin/products/"+created+"/audit", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("delete removes the product", func(t *testing.T) {
		rec, _ := do(t, g, http.MethodDelete, "/api/v1/admin/products/"+created, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = do(t, g, http.MethodDelete, "/api/v1/admin/products/"+created, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAssistEndpoints(t *testing.T) {
	g := newTestGateway(t)

	t.Run("gift guide always returns text", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/assist/gift-guide", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, payload["text"])
	})

	t.Run("product copy requires a name", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/assist/product-copy", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "please enter a product name first", payload["error"])
	})

	t.Run("recommendations degrade to an empty list", func(t *testing.T) {
		rec, payload := do(t, g, http.MethodPost, "/api/v1/assist/recommendations", gin.H{"query": "a gift for dad"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []interface{}{}, payload["productIds"])
	})
}
