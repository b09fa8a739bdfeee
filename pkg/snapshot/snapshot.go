// Package snapshot is the persisted-store layer: three independently keyed
// JSON blobs ("products", "cart", "user") mirrored on every mutation and
// read once at startup. A missing key means "use defaults"; a malformed
// blob is reported as an error so callers can fall back instead of
// trusting it.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/trendyshop/pkg/config"
	"go.uber.org/zap"
)

// Well-known snapshot keys.
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyUser     = "user"
)

type Store interface {
	// Load returns the raw blob for key; ok is false when the key is absent.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PutJSON serializes v and stores it under key.
func PutJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %q: %w", key, err)
	}
	return s.Save(ctx, key, data)
}

// GetJSON loads key into dest. ok is false when the key is absent; a
// decode failure is returned as an error with dest untouched.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	data, ok, err := s.Load(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("malformed snapshot %q: %w", key, err)
	}
	return true, nil
}

// Open builds the configured backend.
func Open(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Snapshot.Backend {
	case "", "file":
		return NewFileStore(cfg.Snapshot.Dir)
	case "sqlite":
		return NewGormStore(cfg.Snapshot.Path)
	case "redis":
		return NewRedisStore(&cfg.Redis), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
