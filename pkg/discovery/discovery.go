// Package discovery registers the storefront endpoint in etcd so other
// tooling can find it. The server runs fine without etcd; main treats a
// failed connection as a warning.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/example/trendyshop/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type Registry struct {
	client *clientv3.Client
	config *config.EtcdConfig
	key    string
}

func NewRegistry(cfg *config.EtcdConfig) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &Registry{
		client: cli,
		config: cfg,
	}, nil
}

// Register publishes name -> host:port under a 30 second lease kept alive
// for the life of ctx.
func (r *Registry) Register(ctx context.Context, name, host string, port int) error {
	r.key = fmt.Sprintf("%s%s/%s:%d", r.config.Prefix, name, host, port)
	value := fmt.Sprintf("%s:%d", host, port)

	lease, err := r.client.Grant(ctx, 30)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	if _, err := r.client.Put(ctx, r.key, value, clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return fmt.Errorf("failed to keep alive: %w", err)
	}
	go func() {
		for range ch {
		}
	}()

	return nil
}

func (r *Registry) Deregister(ctx context.Context) error {
	if r.key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.client.Delete(ctx, r.key)
	return err
}

func (r *Registry) Close() error {
	return r.client.Close()
}
