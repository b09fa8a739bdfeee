package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/trendyshop/gateway"
	"github.com/example/trendyshop/pkg/assist"
	"github.com/example/trendyshop/pkg/audit"
	"github.com/example/trendyshop/pkg/auth"
	"github.com/example/trendyshop/pkg/cart"
	"github.com/example/trendyshop/pkg/catalog"
	"github.com/example/trendyshop/pkg/checkout"
	"github.com/example/trendyshop/pkg/config"
	"github.com/example/trendyshop/pkg/discovery"
	"github.com/example/trendyshop/pkg/snapshot"
	"go.uber.org/zap"
)

func main() {
	// Load config
	configPath := "config/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting storefront",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("snapshot_backend", cfg.Snapshot.Backend))

	ctx := context.Background()

	// Persisted snapshot store
	snap, err := snapshot.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open snapshot store", zap.Error(err))
	}
	defer snap.Close()

	// Optional audit trail
	var auditLog *audit.Log
	var recorder catalog.Recorder
	if cfg.MongoDB.URI != "" {
		auditLog, err = audit.New(&cfg.MongoDB, logger.Named("audit"))
		if err != nil {
			logger.Warn("Failed to connect to MongoDB, continuing without audit trail", zap.Error(err))
		} else {
			recorder = auditLog
		}
	}

	// Stores
	catalogStore := catalog.NewStore(snap, recorder, logger.Named("catalog"))
	catalogStore.Load(ctx)

	cartStore := cart.NewStore(catalogStore, snap, logger.Named("cart"))
	cartStore.Load(ctx)

	userStore := auth.NewStore(cfg.Shop.AdminEmail, snap, logger.Named("auth"))
	userStore.Load(ctx)

	// Settlement
	settler, err := checkout.NewActorSettler(cfg.Checkout.SettlementLatency, cfg.Checkout.SettlementTimeout, logger)
	if err != nil {
		logger.Fatal("Failed to start settlement actor", zap.Error(err))
	}
	defer settler.Close()

	// Copy generation
	assistService := assist.NewService(ctx, &cfg.Gemini, logger.Named("assist"))

	// Service registration
	var registry *discovery.Registry
	if len(cfg.Etcd.Endpoints) > 0 {
		registry, err = discovery.NewRegistry(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service registration", zap.Error(err))
		} else if err := registry.Register(ctx, cfg.Server.Name, cfg.Server.Host, cfg.Server.Port); err != nil {
			logger.Warn("Failed to register service", zap.Error(err))
		}
	}

	// Gateway
	gw := gateway.NewGateway(cfg, logger, gateway.Deps{
		Catalog: catalogStore,
		Cart:    cartStore,
		Users:   userStore,
		Assist:  assistService,
		Settler: settler,
		Audit:   auditLog,
	})
	gw.SetupRoutes()

	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Storefront started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	if registry != nil {
		registry.Deregister(ctx)
		registry.Close()
	}
	if auditLog != nil {
		auditLog.Close(ctx)
	}

	logger.Info("Storefront stopped")
}
