package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oakhollow/orderdesk-backend/api/routes"
	authsvc "github.com/oakhollow/orderdesk-backend/internal/auth"
	cartsvc "github.com/oakhollow/orderdesk-backend/internal/cart"
	catalogsvc "github.com/oakhollow/orderdesk-backend/internal/catalog"
	draftsvc "github.com/oakhollow/orderdesk-backend/internal/drafts"
	membersvc "github.com/oakhollow/orderdesk-backend/internal/memberships"
	ordersvc "github.com/oakhollow/orderdesk-backend/internal/orders"
	productsvc "github.com/oakhollow/orderdesk-backend/internal/products"
	profilesvc "github.com/oakhollow/orderdesk-backend/internal/profiles"
	storesvc "github.com/oakhollow/orderdesk-backend/internal/stores"
	"github.com/oakhollow/orderdesk-backend/internal/users"
	"github.com/oakhollow/orderdesk-backend/pkg/auth/session"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
	"github.com/oakhollow/orderdesk-backend/pkg/metrics"
	"github.com/oakhollow/orderdesk-backend/pkg/migrate"
	"github.com/oakhollow/orderdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = db.DriverSQLite
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	profileRepo := profilesvc.NewRepository(dbClient.DB())
	membershipRepo := membersvc.NewRepository(dbClient.DB())
	productRepo := productsvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())
	storeRepo := storesvc.NewRepository(dbClient.DB())

	catalogCache, err := catalogsvc.NewCache(redisClient, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog cache", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orderStats := metrics.NewOrderMetrics(registry)

	authService, err := authsvc.NewService(userRepo, profileRepo, membershipRepo, sessions, dbClient, cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(productRepo, catalogCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo, catalogCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	draftService, err := draftsvc.NewService(redisClient, cfg.Drafts)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo, dbClient, cartStore, draftService, productRepo, logg, orderStats)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	storeService, err := storesvc.NewService(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	memberService, err := membersvc.NewService(membershipRepo, userRepo, profileRepo, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create membership service", err)
		os.Exit(1)
	}

	profileService, err := profilesvc.NewService(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	readyChecks := map[string]func() error{
		"database": func() error { return dbClient.Ping(context.Background()) },
		"redis":    func() error { return redisClient.Ping(context.Background()) },
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		readyChecks,
		redisClient,
		sessions,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		routes.Services{
			Auth:     authService,
			Catalog:  catalogService,
			Cart:     cartService,
			Orders:   orderService,
			Drafts:   draftService,
			Products: productService,
			Stores:   storeService,
			Members:  memberService,
			Profiles: profileService,
		},
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-done
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
