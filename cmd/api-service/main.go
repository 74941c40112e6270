package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/events"
	"github.com/cuongbtq/job-board/internal/api/handler"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/cuongbtq/job-board/internal/api/router"
	"github.com/cuongbtq/job-board/internal/api/seed"
	"github.com/cuongbtq/job-board/internal/api/storage"
	"github.com/cuongbtq/job-board/internal/config"
	"github.com/cuongbtq/job-board/shared/logger"
	"github.com/cuongbtq/job-board/shared/postgresql"
	"github.com/cuongbtq/job-board/shared/rabbitmq"
	"github.com/cuongbtq/job-board/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// backend is the data layer chosen by board.data_source.
type backend struct {
	jobs     listing.Store
	apps     intake.Store
	notifier intake.Notifier
	health   map[string]handler.HealthChecker
	closers  []func() error
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	seedJobs := flag.Bool("seed", false, "Insert the demo job collection on startup (postgres only)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *seedJobs {
		cfg.Board.Seed = true
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
		slog.String("data_source", cfg.Board.DataSource),
		slog.String("session_store", cfg.Auth.SessionStore),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := listing.NewRegistry(listing.Options{
		ItemsPerPage: cfg.Board.ItemsPerPage,
		PageDelta:    cfg.Board.PageDelta,
		Logger:       appLogger.Logger,
	}, cfg.Board.BrowseSessionTTL)
	go registry.Run(ctx, cfg.Board.SweepInterval)

	be, err := initBackend(ctx, cfg, registry, appLogger.Logger)
	if err != nil {
		return err
	}
	defer be.close()

	authService, err := initAuth(cfg, be, appLogger.Logger)
	if err != nil {
		return err
	}

	intakeService := intake.New(&intake.Config{
		Store:    be.apps,
		Notifier: be.notifier,
		Logger:   appLogger.Logger,
	})

	// Initialize router
	r := initRouter(cfg, &handler.Dependencies{
		Logger:       appLogger.Logger,
		Jobs:         be.jobs,
		Registry:     registry,
		Intake:       intakeService,
		Auth:         authService,
		ItemsPerPage: cfg.Board.ItemsPerPage,
		PageDelta:    cfg.Board.PageDelta,
		ServiceName:  cfg.App.Name,
		HealthChecks: be.health,
	})

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		appLogger.Error("Server failed to start", slog.Any("error", err))
		return err
	}

	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initBackend wires the job and application stores and the notifier for the
// configured data source.
func initBackend(ctx context.Context, cfg *config.Config, registry *listing.Registry, logger *slog.Logger) (*backend, error) {
	be := &backend{health: make(map[string]handler.HealthChecker)}

	if cfg.Board.DataSource == config.DataSourceMemory {
		source := listing.NewMemorySource(seed.Jobs(time.Now()))
		be.jobs = source
		be.apps = intake.NewMemoryStore()
		be.notifier = events.NewLocalNotifier(source, registry, logger)
		logger.Info("Using in-memory job board")
		return be, nil
	}

	dbClient, err := initPostgreSQL(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	be.closers = append(be.closers, dbClient.Close)
	be.health["postgres"] = dbClient
	logger.Info("Database connection established")

	store := storage.NewStorage(dbClient, logger)
	if err := store.Migrate(ctx); err != nil {
		be.close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if cfg.Board.Seed {
		if err := store.Seed(ctx, seed.Jobs(time.Now())); err != nil {
			be.close()
			return nil, fmt.Errorf("failed to seed jobs: %w", err)
		}
	}

	rabbitClient, err := initRabbitMQ(&cfg.RabbitMQ, logger)
	if err != nil {
		be.close()
		return nil, fmt.Errorf("failed to initialize RabbitMQ: %w", err)
	}
	be.closers = append(be.closers, rabbitClient.Close)
	be.health["rabbitmq"] = rabbitClient
	logger.Info("RabbitMQ connection established")

	be.jobs = store
	be.apps = store
	be.notifier = events.NewBrokerNotifier(rabbitClient, logger)
	return be, nil
}

// initAuth builds the credential directory, seeded with the demo accounts,
// and the session store.
func initAuth(cfg *config.Config, be *backend, logger *slog.Logger) (*auth.Service, error) {
	directory := auth.NewDirectory(cfg.Auth.BcryptCost)
	if err := directory.SeedDemoUsers(); err != nil {
		return nil, fmt.Errorf("failed to seed demo users: %w", err)
	}

	var sessions auth.SessionStore
	switch cfg.Auth.SessionStore {
	case config.SessionStoreRedis:
		redisClient, err := redis.NewClient(&redis.Config{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		be.closers = append(be.closers, redisClient.Close)
		be.health["redis"] = redisClient
		sessions = auth.NewRedisSessionStore(redisClient.GetClient(), cfg.Auth.KeyPrefix, cfg.Auth.SessionTTL)
	default:
		sessions = auth.NewMemorySessionStore(cfg.Auth.KeyPrefix, cfg.Auth.SessionTTL)
	}

	return auth.New(&auth.Config{
		Directory:         directory,
		Sessions:          sessions,
		Logger:            logger,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	}), nil
}

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	dbConfig := &postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}

	return postgresql.NewClient(dbConfig, logger)
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		QueueName:          cfg.Queue.Name,
		QueueDurable:       cfg.Queue.Durable,
		QueueAutoDelete:    cfg.Queue.AutoDelete,
		QueueExclusive:     cfg.Queue.Exclusive,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		ConnectionTimeout:  cfg.Connection.ConnectionTimeout,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(cfg *config.Config, deps *handler.Dependencies) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps, cfg.Server.AllowedOrigins)
}
