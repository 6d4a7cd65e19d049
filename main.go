package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"airport-booking/internal/auth"
	"airport-booking/internal/catalog"
	"airport-booking/internal/catalog/catalog_api"
	catalog_db "airport-booking/internal/catalog/db"
	"airport-booking/internal/config"
	"airport-booking/internal/database/migrations"
	"airport-booking/internal/flights"
	flights_db "airport-booking/internal/flights/db"
	"airport-booking/internal/flights/flight_api"
	"airport-booking/internal/kafka"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
	"airport-booking/internal/order"
	order_db "airport-booking/internal/order/db"
	"airport-booking/internal/order/order_api"
	"airport-booking/internal/order/qr"
)

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	log.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	models.RegisterModels(bunDB)

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
		}
		log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	} else {
		log.Warn("DATABASE", "Redis disabled, token claims will be verified on every request")
	}

	return bunDB, redisClient
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Airport Booking Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	log.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	if redisClient != nil {
		defer redisClient.Close()
	}

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Database.MigrationsDir,
			AutoMigrate:   true,
		})
		if err := runner.RunMigrations(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Migrations applied")
	}

	var publisher order.EventPublisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topics.OrderCreated}); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.OrderCreated)
		defer producer.Close()
		publisher = producer
		log.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		log.Warn("KAFKA", "Kafka disabled, order events will not be published")
	}

	catalogService := catalog.NewService(&catalog_db.DB{Bun: bunDB})
	flightService := flights.NewService(&flights_db.DB{Bun: bunDB})
	orderService := order.NewOrderService(
		&order_db.DB{Bun: bunDB},
		publisher,
		qr.NewGenerator(os.Getenv("QR_SECRET_KEY")),
	)

	catalogHandler := catalog_api.NewHandler(catalogService, log)
	flightHandler := flight_api.NewHandler(flightService, log)
	orderHandler := order_api.NewHandler(orderService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	claimsCache := auth.NewClaimsCache(redisClient)
	requireAdmin := auth.RequireRole(cfg.Auth.AdminRole)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.Issuer, claimsCache))
		log.Info("AUTH", "OIDC middleware applied to API routes")

		r.Route("/api", func(r chi.Router) {
			catalogHandler.RegisterRoutes(r, requireAdmin)
			log.Info("ROUTER", "Catalog routes registered under /api")

			flightHandler.RegisterRoutes(r, requireAdmin)
			log.Info("ROUTER", "Route and flight routes registered under /api")

			orderHandler.RegisterRoutes(r)
			log.Info("ROUTER", "Order routes registered under /api/orders")
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Airport Booking Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "Airport Booking Service shutdown complete")
	}
}
