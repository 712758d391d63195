package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rakibulhaque/trendibay-backend/api/routes"
	authsvc "github.com/rakibulhaque/trendibay-backend/internal/auth"
	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/internal/checkout"
	"github.com/rakibulhaque/trendibay-backend/internal/orders"
	"github.com/rakibulhaque/trendibay-backend/internal/users"
	"github.com/rakibulhaque/trendibay-backend/internal/wishlist"
	pkgauth "github.com/rakibulhaque/trendibay-backend/pkg/auth"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth/session"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/metrics"
	"github.com/rakibulhaque/trendibay-backend/pkg/migrate"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
	"github.com/rakibulhaque/trendibay-backend/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("trendibay-api", "dev", "info", os.Stderr).Fatal("load config", err)
	}

	logg := logger.New(cfg.App.Name, cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	client, err := db.NewClient(cfg.DB, cfg.IsDev())
	if err != nil {
		logg.Fatal("connect postgres", err)
	}
	defer client.Close()

	cache := redis.NewClient(cfg.Redis)
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.MaybeRunDev(ctx, cfg, client, logg); err != nil {
		logg.Fatal("startup migrations", err)
	}

	issuer, err := pkgauth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		logg.Fatal("build token issuer", err)
	}
	sessions, err := session.NewManager(cache)
	if err != nil {
		logg.Fatal("build session manager", err)
	}
	hasher := security.NewHasher(cfg.Password)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(promRegistry)
	orderMetrics := metrics.NewOrderMetrics(promRegistry)

	userRepo := users.NewRepository(client.Gorm())
	catalogRepo := catalog.NewRepository(client.Gorm())
	cartRepo := cart.NewRepository(client.Gorm())
	wishlistRepo := wishlist.NewRepository(client.Gorm())
	ordersRepo := orders.NewRepository(client.Gorm())
	intentRepo := checkout.NewIntentRepository(client.Gorm())

	authService, err := authsvc.NewService(userRepo, hasher, issuer, sessions)
	if err != nil {
		logg.Fatal("build auth service", err)
	}
	if cfg.Auth.BootstrapAdminEmail != "" {
		if err := authService.BootstrapAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminSecret); err != nil {
			logg.Fatal("bootstrap admin", err)
		}
	}
	usersService, err := users.NewService(userRepo)
	if err != nil {
		logg.Fatal("build users service", err)
	}
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Fatal("build catalog service", err)
	}
	cartService, err := cart.NewService(cartRepo, catalogRepo, cache, cfg.Checkout.CartCacheTTL)
	if err != nil {
		logg.Fatal("build cart service", err)
	}
	wishlistService, err := wishlist.NewService(wishlistRepo, catalogRepo)
	if err != nil {
		logg.Fatal("build wishlist service", err)
	}
	ordersService, err := orders.NewService(ordersRepo, orderMetrics)
	if err != nil {
		logg.Fatal("build orders service", err)
	}
	checkoutService, err := checkout.NewService(client, cartRepo, catalogRepo, ordersRepo, intentRepo, cache, cfg.Checkout, checkoutMetrics)
	if err != nil {
		logg.Fatal("build checkout service", err)
	}

	handler := routes.New(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           client,
		Redis:        cache,
		Issuer:       issuer,
		Sessions:     sessions,
		Auth:         authService,
		Users:        usersService,
		Catalog:      catalogService,
		Cart:         cartService,
		Wishlist:     wishlistService,
		Checkout:     checkoutService,
		Orders:       ordersService,
		PromRegistry: promRegistry,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      handler,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.WithField("addr", server.Addr).Info("api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("serve http", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown", err)
	}
	logg.Info("api stopped")
}
