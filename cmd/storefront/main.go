package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/takkat/storefront/internal/admin"
	cartcache "github.com/takkat/storefront/internal/cart/cache"
	cartrepo "github.com/takkat/storefront/internal/cart/repository"
	cartservice "github.com/takkat/storefront/internal/cart/service"
	catalogrepo "github.com/takkat/storefront/internal/catalog/repository"
	checkout "github.com/takkat/storefront/internal/checkout/service"
	"github.com/takkat/storefront/internal/config"
	h "github.com/takkat/storefront/internal/http"
	"github.com/takkat/storefront/internal/logger"
	"github.com/takkat/storefront/internal/mailer"
	"github.com/takkat/storefront/internal/mongodb"
	orderrepo "github.com/takkat/storefront/internal/orders/repository"
	"github.com/takkat/storefront/internal/pricing"
)

func main() {
	cfg := config.Load()
	logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	if err := cartrepo.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to create cart indexes", "error", err)
		os.Exit(1)
	}
	if err := orderrepo.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to create order indexes", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// The cart service degrades gracefully without the cache.
		slog.Warn("redis unavailable at startup", "error", err)
	}

	cartRepository := cartrepo.NewMongoRepository(db)
	cartCache := cartcache.NewRedisCache(redisClient)
	cartService := cartservice.NewCartService(cartRepository, cartCache)

	orderRepository := orderrepo.NewMongoRepository(db)
	catalogRepository := catalogrepo.NewMongoRepository(db)

	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		FromName: cfg.MailFromName,
		SiteURL:  cfg.SiteURL,
	})

	checkoutService := checkout.NewCheckoutService(
		cartService, orderRepository, smtpMailer, pricing.DefaultDiscountCodes())

	adminAuth := admin.NewAuth(admin.NewMongoAdminRepository(db), cfg.JWTSecret)
	orderConsole := admin.NewOrderConsole(orderRepository)

	router := h.NewRouter(h.RouterConfig{
		Carts:           cartService,
		Checkout:        checkoutService,
		Orders:          orderRepository,
		Catalog:         h.NewCatalogHandler(catalogRepository, cfg.RequestTimeout),
		Admin:           h.NewAdminHandler(adminAuth, orderConsole, cfg.RequestTimeout),
		AdminMiddleware: adminAuth.Middleware,
		RequestTimeout:  cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		slog.Warn("failed to close redis client", "error", err)
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		slog.Warn("failed to disconnect mongodb", "error", err)
	}

	slog.Info("server exited")
}
