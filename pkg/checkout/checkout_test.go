package checkout

import (
	"context"
	"testing"

	"github.com/example/trendyshop/pkg/cart"
	"github.com/example/trendyshop/pkg/models"
	"github.com/example/trendyshop/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalog struct {
	products map[string]models.Product
}

func (s *stubCatalog) Get(id string) (models.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// stubSettler settles instantly unless block is set.
type stubSettler struct {
	entered chan struct{}
	block   chan struct{}
}

func (s *stubSettler) Settle(_ context.Context, order models.Order) (models.Order, error) {
	if s.entered != nil {
		close(s.entered)
		s.entered = nil
	}
	if s.block != nil {
		<-s.block
	}
	order.PaymentStatus = "Paid"
	return order, nil
}

func newTestCart(t *testing.T, price float64, qty int) *cart.Store {
	t.Helper()
	cat := &stubCatalog{products: map[string]models.Product{
		"p1": {ID: "p1", Name: "Smart Lamp", Price: price, Stock: 10},
	}}
	c := cart.NewStore(cat, snapshot.NewMemoryStore(), zap.NewNop())
	if qty > 0 {
		c.Add(context.Background(), "p1", qty)
	}
	return c
}

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		shipping float64
	}{
		{"above threshold is free", 5000, 0},
		{"at threshold pays the flat fee", 4999, 99},
		{"just above threshold is free", 4999.01, 0},
		{"small order pays the flat fee", 1000, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteFor(tt.subtotal)
			assert.Equal(t, tt.subtotal, q.Subtotal)
			assert.Equal(t, tt.shipping, q.Shipping)
			assert.Equal(t, tt.subtotal+tt.shipping, q.Total)
		})
	}
}

func TestNewSession_RequiresNonEmptyCart(t *testing.T) {
	c := newTestCart(t, 500, 0)
	_, err := NewSession(c, &stubSettler{}, "u1", "", zap.NewNop())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewSession_PreselectsDefaults(t *testing.T) {
	c := newTestCart(t, 500, 1)
	s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, StepAddress, s.Step())
	assert.Equal(t, "a1", s.AddressID())
	assert.Equal(t, DefaultPaymentMethod, s.PaymentMethod())
}

func TestNext_GatedByAddressSelection(t *testing.T) {
	c := newTestCart(t, 500, 1)
	s, err := NewSession(c, &stubSettler{}, "u1", "", zap.NewNop())
	require.NoError(t, err)

	// Advancing without a selection is blocked and keeps the state.
	assert.ErrorIs(t, s.Next(), ErrNoAddress)
	assert.Equal(t, StepAddress, s.Step())

	s.SelectAddress("a1")
	require.NoError(t, s.Next())
	assert.Equal(t, StepPayment, s.Step())

	// Payment to review is unconditional.
	require.NoError(t, s.Next())
	assert.Equal(t, StepReview, s.Step())

	assert.ErrorIs(t, s.Next(), ErrAlreadyAtLastStep)
}

func TestBack_AlwaysAllowedAndKeepsSelections(t *testing.T) {
	c := newTestCart(t, 500, 1)
	s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
	require.NoError(t, err)

	s.SelectPayment("Cash on Delivery")
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.Equal(t, StepReview, s.Step())

	require.NoError(t, s.Back())
	assert.Equal(t, StepPayment, s.Step())
	require.NoError(t, s.Back())
	assert.Equal(t, StepAddress, s.Step())

	// Back at the first step is a no-op.
	require.NoError(t, s.Back())
	assert.Equal(t, StepAddress, s.Step())

	assert.Equal(t, "a1", s.AddressID())
	assert.Equal(t, "Cash on Delivery", s.PaymentMethod())
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("only valid at review", func(t *testing.T) {
		c := newTestCart(t, 500, 1)
		s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
		require.NoError(t, err)

		_, err = s.Confirm(ctx)
		assert.ErrorIs(t, err, ErrNotAtReview)
	})

	t.Run("re-checks the address guard", func(t *testing.T) {
		c := newTestCart(t, 500, 1)
		s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, s.Next())
		require.NoError(t, s.Next())

		s.SelectAddress("")
		_, err = s.Confirm(ctx)
		assert.ErrorIs(t, err, ErrNoAddress)
	})

	t.Run("re-checks the cart is still non-empty", func(t *testing.T) {
		c := newTestCart(t, 500, 1)
		s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, s.Next())
		require.NoError(t, s.Next())

		c.Clear(ctx)
		_, err = s.Confirm(ctx)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("settles, clears the cart and completes", func(t *testing.T) {
		c := newTestCart(t, 500, 3)
		s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, s.Next())
		require.NoError(t, s.Next())

		order, err := s.Confirm(ctx)
		require.NoError(t, err)

		assert.Equal(t, "Paid", order.PaymentStatus)
		assert.Equal(t, "a1", order.AddressID)
		assert.Equal(t, "u1", order.UserID)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 3, order.Items[0].Quantity)
		// Subtotal 1500 is under the free-shipping threshold.
		assert.Equal(t, 99.0, order.ShippingFee)
		assert.Equal(t, 1599.0, order.TotalAmount)

		assert.Equal(t, 0, c.Len())

		_, err = s.Confirm(ctx)
		assert.ErrorIs(t, err, ErrCompleted)
	})

	t.Run("free shipping above the threshold", func(t *testing.T) {
		c := newTestCart(t, 5000, 1)
		s, err := NewSession(c, &stubSettler{}, "u1", "a1", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, s.Next())
		require.NoError(t, s.Next())

		order, err := s.Confirm(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, order.ShippingFee)
		assert.Equal(t, 5000.0, order.TotalAmount)
	})
}

func TestConfirm_SingleSettlementInFlight(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t, 500, 1)

	settler := &stubSettler{
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	s, err := NewSession(c, settler, "u1", "a1", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	entered := settler.entered
	done := make(chan error, 1)
	go func() {
		_, err := s.Confirm(ctx)
		done <- err
	}()

	<-entered
	_, err = s.Confirm(ctx)
	assert.ErrorIs(t, err, ErrSettlementInFlight)

	close(settler.block)
	require.NoError(t, <-done)
	assert.Equal(t, 0, c.Len())
}
