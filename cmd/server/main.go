package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/egorv/homebook/internal/catalog"
	"github.com/egorv/homebook/internal/checkout"
	"github.com/egorv/homebook/internal/credentials"
	"github.com/egorv/homebook/internal/httpapi"
	"github.com/egorv/homebook/internal/pricing"
	"github.com/egorv/homebook/internal/store"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	CatalogDBPath   string
	MigrationsPath  string
	PaymentDelay    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "homebook.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		PaymentDelay:    getDurationEnv("PAYMENT_DELAY", checkout.DefaultProcessingDelay),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s value %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func main() {
	cfg := loadConfig()

	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("failed to open catalog database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run catalog migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	catalogSvc := catalog.NewCatalogService(repo, catalog.NewRedisCache(redisClient))

	pricer := pricing.NewNormalizer()
	cart, history := store.New(pricer)
	processor := &checkout.SimulatedProcessor{Delay: cfg.PaymentDelay}
	pipeline := checkout.NewPipeline(cart, history, pricer, processor)

	router := httpapi.NewRouter(
		httpapi.NewCatalogHandler(catalogSvc, cfg.RequestTimeout),
		httpapi.NewCartHandler(cart, catalogSvc, cfg.RequestTimeout),
		httpapi.NewCheckoutHandler(pipeline),
		httpapi.NewOrdersHandler(history),
		httpapi.NewProfileHandler(credentials.NewRedisStore(redisClient), cfg.RequestTimeout),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "homebook"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("homebook server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
