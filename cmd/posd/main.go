package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/auth"
	cartservice "github.com/crissancio/saas-tenant-pos/internal/cart/service"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/cache"
	catalogservice "github.com/crissancio/saas-tenant-pos/internal/catalog/service"
	catalogstore "github.com/crissancio/saas-tenant-pos/internal/catalog/store"
	checkoutservice "github.com/crissancio/saas-tenant-pos/internal/checkout/service"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
	clientservice "github.com/crissancio/saas-tenant-pos/internal/client/service"
	"github.com/crissancio/saas-tenant-pos/internal/httpapi"
	"github.com/crissancio/saas-tenant-pos/internal/notification/consumer"
	notifstore "github.com/crissancio/saas-tenant-pos/internal/notification/store"
	"github.com/crissancio/saas-tenant-pos/internal/sale/publisher"
	salerepo "github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	saleservice "github.com/crissancio/saas-tenant-pos/internal/sale/service"
	"github.com/crissancio/saas-tenant-pos/pkg/config"
	"github.com/crissancio/saas-tenant-pos/pkg/logger"
	"github.com/crissancio/saas-tenant-pos/pkg/shutdown"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "posd",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	// Notifications are in-app and transient, so they live in memory in
	// both modes. In live mode the Kafka consumer feeds this store.
	notifications := notifstore.NewMemoryStore()

	var (
		productStore   catalogstore.ProductStore
		catalogCache   cache.CatalogCache
		clientRegistry registry.Registry
		saleRepo       salerepo.SaleRepository
		userStore      auth.UserStore
		notifier       saleservice.Notifier
	)

	switch cfg.Mode {
	case config.ModeLive:
		db, err := catalogstore.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Error("mongodb connection failed", "error", err)
			os.Exit(1)
		}
		if err := catalogstore.CreateIndexes(ctx, db); err != nil {
			log.Error("failed to create product indexes", "error", err)
			os.Exit(1)
		}
		if err := registry.CreateIndexes(ctx, db); err != nil {
			log.Error("failed to create client indexes", "error", err)
			os.Exit(1)
		}
		productStore = catalogstore.NewMongoStore(db)
		userStore = auth.NewMongoUserStore(db)

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		catalogCache = cache.NewRedisCache(rdb)

		if cfg.ClientRegistryURL != "" {
			clientRegistry = registry.NewHTTPRegistry(cfg.ClientRegistryURL, func() string {
				return cfg.ClientRegistryToken
			})
		} else {
			clientRegistry = registry.NewMongoRegistry(db)
		}

		cred := &salerepo.Credentials{
			Host:              cfg.Postgres.Host,
			Port:              cfg.Postgres.Port,
			User:              cfg.Postgres.User,
			Password:          cfg.Postgres.Password,
			DBName:            cfg.Postgres.DBName,
			MigrationsDirPath: cfg.Postgres.MigrationsDirPath,
		}
		repo, err := salerepo.NewRepository(cred)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		if err := repo.RunMigrations(cred); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		saleRepo = repo

		poller := publisher.NewOutboxPoller(saleRepo, cfg.SaleTopic, cfg.KafkaBrokers...)
		g.Go(func() error {
			poller.Run(ctx)
			return poller.Close()
		})

		cons := consumer.NewConsumer(notifications, cfg.SaleTopic, cfg.KafkaBrokers...)
		g.Go(func() error {
			cons.Run(ctx)
			return cons.Close()
		})

	default:
		memProducts := catalogstore.NewMemoryStore()
		memClients := registry.NewMemoryRegistry()
		memUsers := auth.NewMemoryUserStore()
		seedDemoData(log, memProducts, memClients, memUsers)

		productStore = memProducts
		catalogCache = cache.NewMemoryCache()
		clientRegistry = memClients
		saleRepo = salerepo.NewMemoryRepository()
		userStore = memUsers
		notifier = notifications
	}
	defer saleRepo.Close()

	catalogService := catalogservice.NewCatalogService(productStore, catalogCache)
	clientService := clientservice.NewClientService(clientRegistry)
	sessions := cartservice.NewSessions()
	saleService := saleservice.NewSaleService(saleRepo, catalogService, notifier)
	checkout := checkoutservice.NewOrchestrator(sessions, clientService, saleService)
	authService := auth.NewService(userStore, []byte(cfg.JWTSecret), cfg.TokenTTL)

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authService),
		Products:      httpapi.NewProductHandler(catalogService),
		Clients:       httpapi.NewClientHandler(clientService),
		Cart:          httpapi.NewCartHandler(sessions, catalogService),
		Checkout:      httpapi.NewCheckoutHandler(checkout),
		Sales:         httpapi.NewSaleHandler(saleService),
		Notifications: httpapi.NewNotificationHandler(notifications),
	}, authService.Verify, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g.Go(func() error {
		log.Info("POS server starting", "port", cfg.HTTPPort, "mode", string(cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}
