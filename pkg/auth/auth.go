// Package auth holds the current user. Login is an upsert that accepts
// any credentials; there is no real authentication in this storefront.
package auth

import (
	"context"
	"sync"

	"github.com/example/trendyshop/pkg/models"
	"github.com/example/trendyshop/pkg/snapshot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileInput carries optional profile edits; nil means "not provided".
type ProfileInput struct {
	Name         *string
	Mobile       *string
	ProfileImage *string
}

type Store struct {
	mu         sync.RWMutex
	user       *models.User
	adminEmail string
	snap       snapshot.Store
	logger     *zap.Logger
}

func NewStore(adminEmail string, snap snapshot.Store, logger *zap.Logger) *Store {
	return &Store{
		adminEmail: adminEmail,
		snap:       snap,
		logger:     logger,
	}
}

// Load restores the logged-in user, if any. Missing or malformed blobs
// leave the store logged out.
func (s *Store) Load(ctx context.Context) {
	var user models.User
	ok, err := snapshot.GetJSON(ctx, s.snap, snapshot.KeyUser, &user)
	if err != nil {
		s.logger.Warn("Ignoring malformed user snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login upserts a user for the given email. The configured admin email
// gets the Admin role and the seeded work address; everyone else is a
// plain User with no addresses. The password is accepted unchecked.
func (s *Store) Login(ctx context.Context, email, name string) models.User {
	var user models.User
	if email == s.adminEmail {
		user = models.User{
			ID:     "admin1",
			Name:   "Admin User",
			Email:  email,
			Role:   models.RoleAdmin,
			Mobile: "9032957545",
			Addresses: []models.Address{
				{ID: "a1", Type: "Work", Street: "Gorsa", City: "Kakinada Dist", State: "AP", Zip: "533449", IsDefault: true},
			},
		}
	} else {
		if name == "" {
			name = "John Doe"
		}
		user = models.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Role:      models.RoleUser,
			Addresses: []models.Address{},
		}
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.persist(ctx)
	return user
}

// Logout clears the user and removes the snapshot key.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.snap.Delete(ctx, snapshot.KeyUser); err != nil {
		s.logger.Warn("Failed to delete user snapshot", zap.Error(err))
	}
}

// Current returns a copy of the logged-in user, or nil when logged out.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Addresses = make([]models.Address, len(s.user.Addresses))
	copy(u.Addresses, s.user.Addresses)
	return &u
}

// UpdateProfile merges the provided fields into the current user. No-op
// when logged out.
func (s *Store) UpdateProfile(ctx context.Context, in ProfileInput) (models.User, bool) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.User{}, false
	}
	if in.Name != nil {
		s.user.Name = *in.Name
	}
	if in.Mobile != nil {
		s.user.Mobile = *in.Mobile
	}
	if in.ProfileImage != nil {
		s.user.ProfileImage = *in.ProfileImage
	}
	updated := *s.user
	s.mu.Unlock()

	s.persist(ctx)
	return updated, true
}

// AddAddress appends an address with a generated id. The first address is
// always the default; later ones keep the flag they were given, so more
// than one default is possible by design.
func (s *Store) AddAddress(ctx context.Context, addr models.Address) (models.Address, bool) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.Address{}, false
	}
	addr.ID = uuid.New().String()
	if len(s.user.Addresses) == 0 {
		addr.IsDefault = true
	}
	s.user.Addresses = append(s.user.Addresses, addr)
	s.mu.Unlock()

	s.persist(ctx)
	return addr, true
}

// HasAddress reports whether the current user owns the address id.
func (s *Store) HasAddress(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	for _, a := range s.user.Addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) persist(ctx context.Context) {
	user := s.Current()
	if user == nil {
		return
	}
	if err := snapshot.PutJSON(ctx, s.snap, snapshot.KeyUser, user); err != nil {
		s.logger.Warn("Failed to persist user snapshot", zap.Error(err))
	}
}
