package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-pos-service/config"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/listener"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/sequence"
	"github.com/fekuna/omnipos-pos-service/internal/server"
	"github.com/fekuna/omnipos-pos-service/internal/store/memory"
	"github.com/fekuna/omnipos-pos-service/pkg/broker"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/middleware"
	"github.com/fekuna/omnipos-pos-service/pkg/search"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     !cfg.Server.IsProduction(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	var infra server.Infra

	// 3. Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis (cache, rate limit and idempotency run in-process)", zap.Error(err))
		} else {
			defer redisClient.Close()
			infra.Redis = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 4. Initialize Storage
	var repos server.Repositories
	switch cfg.Server.StoreDriver {
	case "memory":
		store := memory.NewStore()
		seedDevAdmin(store, cfg, appLogger)
		repos = server.MemoryRepositories(store)
		appLogger.Warn("Using in-memory store, data is lost on restart")
	default:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

		repos = server.PostgresRepositories(db)
		if infra.Redis == nil {
			infra.Sequence = sequence.NewPostgresGenerator(db)
		}
	}
	if infra.Redis != nil {
		infra.Sequence = sequence.NewRedisGenerator(infra.Redis)
	}

	// 5. Initialize Elasticsearch
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		} else {
			infra.Search = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Initialize Kafka producer
	var consumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		defer producer.Close()
		infra.Publisher = event.NewKafkaPublisher(producer, appLogger)

		consumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.GoodsReceivedTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.EventsTopic))
	}

	// 7. Initialize UseCases
	ucs := server.NewUseCases(repos, infra, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if consumer != nil {
		go listener.NewInventoryListener(consumer, ucs.Inventory, appLogger).Start(ctx)
	}

	// 8. Start HTTP Server
	httpServer := &http.Server{
		Addr:         normalizePort(cfg.Server.HTTPPort),
		Handler:      server.NewRouter(cfg, repos, ucs, infra, appLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 9. Start gRPC Server
	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// seedDevAdmin gives the in-memory store one admin account and logs a
// token for it, since there is no identity service to log in against.
func seedDevAdmin(store *memory.Store, cfg *config.Config, log logger.ZapLogger) {
	admin := model.User{
		BaseModel: model.BaseModel{ID: uuid.NewString(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:      "Admin",
		Email:     "admin@omnipos.local",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	store.AddUser(admin)

	token, err := auth.IssueToken(cfg.JWT.SecretKey, admin.ID, 24*time.Hour)
	if err != nil {
		log.Error("Failed to issue dev token", zap.Error(err))
		return
	}
	log.Info("Seeded in-memory admin", zap.String("user_id", admin.ID), zap.String("token", token))
}
