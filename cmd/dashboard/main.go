package main

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"DeliveryDashboard/internal/api"
	"DeliveryDashboard/internal/catalog"
	"DeliveryDashboard/internal/config"
	"DeliveryDashboard/internal/dashboard"
	"DeliveryDashboard/internal/kv"
	"DeliveryDashboard/internal/notify"
	"DeliveryDashboard/internal/session"
	"DeliveryDashboard/pkg/kit"
)

const service = "dashboard"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := kv.Open(openCtx, cfg.Storage.Driver, cfg.Storage.DSN)
	cancel()
	if err != nil {
		logger.Fatal("open storage failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	if c, ok := store.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cat := catalog.NewStore(store, catalog.StoreDeps{
		Key:       cfg.Storage.RestaurantsKey,
		Log:       logger.Named("catalog"),
		Metrics:   catalog.NewMetrics(reg),
		SearchTTL: cfg.SearchCacheTTL,
	})
	if err := loadCatalog(ctx, cat, cfg.ResetOnCorrupt, logger); err != nil {
		logger.Fatal("load catalog failed", zap.Error(err))
	}

	sess, err := session.New(ctx, store, cfg.Storage.AdminKey, cfg.Admin.Password, logger.Named("session"))
	if err != nil {
		logger.Fatal("restore admin session failed", zap.Error(err))
	}
	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD is empty, admin login is disabled")
	}

	hub := notify.NewHub(logger.Named("notify"))

	d := &dashboard.Dispatcher{
		Catalog: cat,
		Session: sess,
		Perms: dashboard.Permissions{
			Create: cfg.Admin.CanAdd,
			Edit:   cfg.Admin.CanEdit,
			Delete: cfg.Admin.CanDelete,
		},
		Render: hub,
		Log:    logger.Named("dispatch"),
	}

	s := &api.Server{
		Dispatcher:   d,
		Session:      sess,
		Tokens:       session.NewTokenMaker(cfg.Admin.TokenSecret),
		TokenTTL:     cfg.Admin.SessionTimeout,
		Storage:      store,
		SettingsKey:  cfg.Storage.SettingsKey,
		Live:         hub,
		Notifier:     hub,
		LoginLimiter: kit.NewIPRateLimiter(cfg.Admin.LoginLimitPerMin, time.Minute),
		Log:          logger,
	}

	h := api.NewHandler(s, api.HTTPDeps{
		Log:            logger,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	err = kit.RunHTTPServer(ctx, cfg.ListenAddr, h, logger, kit.ServerOptions{
		ShutdownTimeout: cfg.ShutdownTimeout,
		OnShutdown:      []func(){hub.Close},
	})
	if err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
	logger.Info("http server stopped")
}

// loadCatalog loads the persisted catalog. A corrupt catalog is fatal unless
// resetOnCorrupt is set, in which case the seed replaces it.
func loadCatalog(ctx context.Context, cat *catalog.Store, resetOnCorrupt bool, logger *zap.Logger) error {
	rs, err := cat.Load(ctx)
	if errors.Is(err, catalog.ErrStorageCorrupt) && resetOnCorrupt {
		logger.Warn("stored catalog is corrupt, resetting to seed", zap.Error(err))
		rs, err = cat.Reset(ctx)
	}
	if err != nil {
		return err
	}

	logger.Info("catalog loaded", zap.Int("restaurants", len(rs)))
	return nil
}
