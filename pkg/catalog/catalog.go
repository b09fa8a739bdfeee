// Package catalog is the in-memory product store. It is the source of
// truth during a session; every mutation is mirrored to the persisted
// snapshot and, when a recorder is attached, to the audit trail.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/example/trendyshop/pkg/models"
	"github.com/example/trendyshop/pkg/snapshot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Defaults applied when a field is omitted on create.
const (
	DefaultCategory  = "Lifestyle"
	DefaultBrand     = "Trendy Gadgets"
	PlaceholderImage = "https://picsum.photos/seed/new/600/600"
)

// Recorder receives audit records for admin mutations. Implementations
// must be safe for concurrent use; nil disables auditing.
type Recorder interface {
	Record(action, productID string, data map[string]interface{})
}

// Input carries the fields of a create or update request. Nil pointers
// (and nil slices) mean "not provided".
type Input struct {
	Name           *string
	Description    *string
	Category       *string
	Subcategory    *string
	Price          *float64
	DiscountPrice  *float64
	OldPrice       *float64
	Stock          *int
	Brand          *string
	Tags           []string
	Images         []string
	IsFeatured     *bool
	DeliveryCharge *float64
}

type Store struct {
	mu       sync.RWMutex
	products []models.Product
	snap     snapshot.Store
	recorder Recorder
	logger   *zap.Logger
}

func NewStore(snap snapshot.Store, recorder Recorder, logger *zap.Logger) *Store {
	return &Store{
		snap:     snap,
		recorder: recorder,
		logger:   logger,
	}
}

// Load restores the catalog from the snapshot. A missing or malformed
// blob falls back to the seed catalog.
func (s *Store) Load(ctx context.Context) {
	var products []models.Product
	ok, err := snapshot.GetJSON(ctx, s.snap, snapshot.KeyProducts, &products)
	if err != nil {
		s.logger.Warn("Ignoring malformed products snapshot", zap.Error(err))
	}
	if err != nil || !ok {
		products = SeedProducts()
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	if !ok {
		s.persist(ctx)
	}
}

// Add fills omitted fields with defaults, derives the status from stock,
// stamps timestamps, generates an id and prepends the record.
func (s *Store) Add(ctx context.Context, in Input) models.Product {
	now := time.Now()
	p := models.Product{
		ID:             uuid.New().String(),
		Name:           strOr(in.Name, ""),
		Description:    strOr(in.Description, ""),
		Category:       strOr(in.Category, DefaultCategory),
		Subcategory:    strOr(in.Subcategory, ""),
		Price:          floatOr(in.Price, 0),
		DiscountPrice:  floatOr(in.DiscountPrice, 0),
		OldPrice:       floatOr(in.OldPrice, 0),
		Stock:          intOr(in.Stock, 0),
		Brand:          strOr(in.Brand, DefaultBrand),
		Tags:           in.Tags,
		Images:         in.Images,
		Rating:         0,
		ReviewsCount:   0,
		IsFeatured:     in.IsFeatured != nil && *in.IsFeatured,
		DeliveryCharge: floatOr(in.DeliveryCharge, 0),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImage}
	}
	p.Status = models.StatusForStock(p.Stock)

	s.mu.Lock()
	s.products = append([]models.Product{p}, s.products...)
	s.mu.Unlock()

	s.persist(ctx)
	s.record("create_product", p.ID, map[string]interface{}{"name": p.Name, "price": p.Price})
	return p
}

// Update shallow-merges the provided fields into the record and refreshes
// updatedAt. The bool reports whether the id was found; a miss changes
// nothing.
func (s *Store) Update(ctx context.Context, id string, in Input) (models.Product, bool) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Product{}, false
	}

	p := &s.products[idx]
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Subcategory != nil {
		p.Subcategory = *in.Subcategory
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		p.DiscountPrice = *in.DiscountPrice
	}
	if in.OldPrice != nil {
		p.OldPrice = *in.OldPrice
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
		p.Status = models.StatusForStock(p.Stock)
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.DeliveryCharge != nil {
		p.DeliveryCharge = *in.DeliveryCharge
	}
	p.UpdatedAt = time.Now()
	updated := *p
	s.mu.Unlock()

	s.persist(ctx)
	s.record("update_product", id, map[string]interface{}{"name": updated.Name})
	return updated, true
}

// Delete removes the record by id. Hard delete; cart items referencing the
// id are left in place and filtered by consumers.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
	s.record("delete_product", id, nil)
	return true
}

func (s *Store) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.products[idx], true
	}
	return models.Product{}, false
}

// List returns a copy of the catalog in store order (newest first).
func (s *Store) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	s.mu.RUnlock()

	if err := snapshot.PutJSON(ctx, s.snap, snapshot.KeyProducts, products); err != nil {
		s.logger.Warn("Failed to persist products snapshot", zap.Error(err))
	}
}

func (s *Store) record(action, id string, data map[string]interface{}) {
	if s.recorder == nil {
		return
	}
	go s.recorder.Record(action, id, data)
}

func strOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func floatOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
