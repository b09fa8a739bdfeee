// Package cart holds the session cart. Operations are total: invalid
// input is normalized or silently ignored, never surfaced as an error.
// Every mutation mirrors the cart to the persisted snapshot.
package cart

import (
	"context"
	"sync"

	"github.com/example/trendyshop/pkg/models"
	"github.com/example/trendyshop/pkg/snapshot"
	"go.uber.org/zap"
)

// ProductFinder resolves a product id against the catalog.
type ProductFinder interface {
	Get(id string) (models.Product, bool)
}

// Line is a cart item joined with its product for rendering. Orphaned
// items (deleted products) never appear as lines.
type Line struct {
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	Price     float64        `json:"price"`
	LineTotal float64        `json:"lineTotal"`
}

type Store struct {
	mu      sync.Mutex
	items   []models.CartItem
	catalog ProductFinder
	snap    snapshot.Store
	logger  *zap.Logger
}

func NewStore(catalog ProductFinder, snap snapshot.Store, logger *zap.Logger) *Store {
	return &Store{
		catalog: catalog,
		snap:    snap,
		logger:  logger,
	}
}

// Load restores the cart from the snapshot. Missing or malformed blobs
// leave the cart empty.
func (s *Store) Load(ctx context.Context) {
	var items []models.CartItem
	ok, err := snapshot.GetJSON(ctx, s.snap, snapshot.KeyCart, &items)
	if err != nil {
		s.logger.Warn("Ignoring malformed cart snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add puts quantity units of the product in the cart, capturing the
// current catalog price on first add. Unknown product ids and
// non-positive quantities are ignored, so stored quantities stay > 0.
func (s *Store) Add(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		return
	}
	product, ok := s.catalog.Get(productID)
	if !ok {
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// Remove drops the matching item; no-op when absent.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// UpdateQuantity replaces the item's quantity. A quantity of zero or
// below behaves exactly like Remove, so the cart never stores qty <= 0.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx)
}

// Items returns a copy of the stored items, orphans included.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price*quantity over stored items, recomputed on
// every read.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the total number of units across items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Lines joins items against the catalog for rendering, filtering out
// items whose product has been deleted.
func (s *Store) Lines() []Line {
	items := s.Items()
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		product, ok := s.catalog.Get(item.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Product:   product,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.Price * float64(item.Quantity),
		})
	}
	return lines
}

func (s *Store) persist(ctx context.Context) {
	items := s.Items()
	if err := snapshot.PutJSON(ctx, s.snap, snapshot.KeyCart, items); err != nil {
		s.logger.Warn("Failed to persist cart snapshot", zap.Error(err))
	}
}
