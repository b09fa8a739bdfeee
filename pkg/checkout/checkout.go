// Package checkout drives the three-step checkout flow: Address →
// Payment → Review, with a terminal confirm. Forward transitions are
// gated, backward transitions always succeed and keep selections.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/trendyshop/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Step int

const (
	StepAddress Step = iota + 1
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// DefaultPaymentMethod is pre-selected so Payment → Review is never gated.
const DefaultPaymentMethod = "UPI"

var (
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrNoAddress          = errors.New("checkout: no delivery address selected")
	ErrNotAtReview        = errors.New("checkout: confirm is only valid at the review step")
	ErrAlreadyAtLastStep  = errors.New("checkout: already at the review step")
	ErrSettlementInFlight = errors.New("checkout: settlement already in progress")
	ErrCompleted          = errors.New("checkout: session already completed")
)

// Cart is the slice of the cart store the session needs.
type Cart interface {
	Items() []models.CartItem
	Total() float64
	Len() int
	Clear(ctx context.Context)
}

// Settler runs the settlement step. The default simulator cannot fail;
// the error return exists so a real payment integration has a failure
// branch to land in.
type Settler interface {
	Settle(ctx context.Context, order models.Order) (models.Order, error)
}

type Session struct {
	mu            sync.Mutex
	step          Step
	addressID     string
	paymentMethod string
	userID        string
	cart          Cart
	settler       Settler
	settling      bool
	completed     bool
	logger        *zap.Logger
}

// NewSession starts a checkout for the current cart. The machine is only
// reachable with a non-empty cart. defaultAddressID pre-selects the
// user's default address and may be empty.
func NewSession(c Cart, settler Settler, userID, defaultAddressID string, logger *zap.Logger) (*Session, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}
	return &Session{
		step:          StepAddress,
		addressID:     defaultAddressID,
		paymentMethod: DefaultPaymentMethod,
		userID:        userID,
		cart:          c,
		settler:       settler,
		logger:        logger,
	}, nil
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) AddressID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addressID
}

func (s *Session) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

func (s *Session) SelectAddress(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addressID = id
}

func (s *Session) SelectPayment(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if method != "" {
		s.paymentMethod = method
	}
}

// Next advances one step. Address → Payment requires a selected address;
// a blocked transition leaves the state unchanged.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return ErrCompleted
	}
	switch s.step {
	case StepAddress:
		if s.addressID == "" {
			return ErrNoAddress
		}
		s.step = StepPayment
	case StepPayment:
		s.step = StepReview
	default:
		return ErrAlreadyAtLastStep
	}
	return nil
}

// Back moves one step toward Address and never loses selections. At
// Address it is a no-op.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return ErrCompleted
	}
	if s.step > StepAddress {
		s.step--
	}
	return nil
}

// Quote prices the session's cart.
func (s *Session) Quote() Quote {
	return QuoteFor(s.cart.Total())
}

// Confirm re-checks the address guard, runs settlement, then clears the
// cart. Only one settlement may be in flight at a time.
func (s *Session) Confirm(ctx context.Context) (models.Order, error) {
	s.mu.Lock()
	if s.completed {
		s.mu.Unlock()
		return models.Order{}, ErrCompleted
	}
	if s.step != StepReview {
		s.mu.Unlock()
		return models.Order{}, ErrNotAtReview
	}
	if s.addressID == "" {
		s.mu.Unlock()
		return models.Order{}, ErrNoAddress
	}
	// The cart may have been emptied since the session started.
	if s.cart.Len() == 0 {
		s.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}
	if s.settling {
		s.mu.Unlock()
		return models.Order{}, ErrSettlementInFlight
	}
	s.settling = true

	quote := QuoteFor(s.cart.Total())
	order := models.Order{
		ID:            uuid.New().String(),
		UserID:        s.userID,
		Items:         s.cart.Items(),
		TotalAmount:   quote.Total,
		ShippingFee:   quote.Shipping,
		Status:        models.OrderPending,
		PaymentStatus: "Unpaid",
		PaymentMethod: s.paymentMethod,
		AddressID:     s.addressID,
		CreatedAt:     time.Now(),
	}
	s.mu.Unlock()

	settled, err := s.settler.Settle(ctx, order)

	s.mu.Lock()
	s.settling = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("Settlement failed", zap.String("order_id", order.ID), zap.Error(err))
		return models.Order{}, err
	}
	s.completed = true
	s.mu.Unlock()

	s.cart.Clear(ctx)
	s.logger.Info("Order placed",
		zap.String("order_id", settled.ID),
		zap.Float64("total", settled.TotalAmount))
	return settled, nil
}
