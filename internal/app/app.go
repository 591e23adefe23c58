package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/config"
	cronpkg "whoof-notifications/internal/infrastructure/cron"
	infradb "whoof-notifications/internal/infrastructure/db"
	"whoof-notifications/internal/infrastructure/kafka"
	"whoof-notifications/internal/infrastructure/postgres"
	"whoof-notifications/internal/infrastructure/push"
	infraredis "whoof-notifications/internal/infrastructure/redis"
	"whoof-notifications/internal/infrastructure/smtp"
	"whoof-notifications/internal/service"
	transporthttp "whoof-notifications/internal/transport/http"
	"whoof-notifications/pkg/jwt"
)

// App represents the application
type App struct {
	config       *config.Config
	httpServer   *http.Server
	consumer     *kafka.Consumer
	recordPruner *cronpkg.RecordPruner
	dbPool       *pgxpool.Pool
	redisClient  *goredis.Client
}

// New creates a new application
func New() (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Configuration loaded successfully")

	// Every hour-based gate runs in this one timezone
	location, err := time.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Service.Timezone, err)
	}
	now := func() time.Time { return time.Now().In(location) }

	// Initialize PostgreSQL connection pool
	ctx := context.Background()
	dbPool, err := infradb.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	fmt.Println("Connected to PostgreSQL")

	// Initialize Redis
	redisClient, err := infraredis.NewRedisClient(&cfg.Redis)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	fmt.Println("Connected to Redis")

	// Initialize repositories
	recordRepo := postgres.NewSendRecordRepository(dbPool)
	progressRepo := postgres.NewChallengeProgressRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)
	billingRepo := postgres.NewBillingRepository(dbPool)

	segmentCache := infraredis.NewSegmentCache(redisClient, cfg.Policy.Segmentation.CacheTTL)
	eventDedup := infraredis.NewEventDedup(redisClient, cfg.Stripe.DedupTTL)

	// Static product content
	templateCatalog := catalog.Default()
	calendar := catalog.DefaultCalendar()

	// Delivery channels
	pushChannel := push.NewClient(&cfg.Push)
	emailChannel, err := smtp.NewClient(&cfg.SMTP, activityRepo)
	if err != nil {
		dbPool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize SMTP client: %w", err)
	}
	channel := service.NewChannelRouter(pushChannel, emailChannel)

	// Initialize services
	segments := service.NewSegmenter(activityRepo, segmentCache, service.DefaultAllowMatrix(), cfg.Policy.Segmentation, now)
	guard := service.NewThrottleGuard(recordRepo, cfg.Policy.Throttle, now)
	dispatcher := service.NewDispatcher(templateCatalog, segments, guard, channel, cfg.Push.Timeout, now)
	tracker := service.NewProgressTracker(calendar, progressRepo, now)
	notifier := service.NewProgressNotifier(dispatcher)
	trigger := service.NewContextualTrigger(dispatcher, cfg.Policy.Contextual)
	billing := service.NewBillingProcessor(billingRepo, eventDedup, now)
	fmt.Println("Services initialized")

	// Kafka consumer feeds challenge progress from activity events
	consumer := kafka.NewConsumer(&cfg.Kafka, calendar, tracker, notifier, now)

	// Send record pruner
	recordPruner := cronpkg.NewRecordPruner(recordRepo, cfg.Retention.PruneInterval, cfg.Retention.SendRecordTTL, now)

	// HTTP transport
	tokens := jwt.NewTokenManager(cfg.Auth.JWTSecret, 24*time.Hour, cfg.Auth.Issuer)
	handler := transporthttp.NewHandler(dispatcher, tracker, notifier, trigger)
	webhookHandler := transporthttp.NewWebhookHandler(billing, cfg.Stripe.WebhookSecret)
	router := transporthttp.NewRouter(&cfg.HTTP, handler, webhookHandler, tokens)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		config:       cfg,
		httpServer:   httpServer,
		consumer:     consumer,
		recordPruner: recordPruner,
		dbPool:       dbPool,
		redisClient:  redisClient,
	}, nil
}

// Run starts the application
func (a *App) Run() error {
	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start send record pruner
	if err := a.recordPruner.Start(); err != nil {
		return fmt.Errorf("failed to start record pruner: %w", err)
	}

	// Start Kafka consumer in a goroutine
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	go func() {
		if err := a.consumer.Start(consumerCtx); err != nil {
			fmt.Printf("Kafka consumer error: %v\n", err)
		}
	}()

	// Start HTTP server in a goroutine
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
			quit <- syscall.SIGTERM
		}
	}()

	fmt.Printf("%s started on %s\n", a.config.Service.Name, a.config.HTTP.Addr)
	fmt.Println("Press Ctrl+C to shutdown...")

	// Wait for interrupt signal
	<-quit
	fmt.Println("\nShutting down server...")

	// Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
	defer cancelShutdown()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("HTTP server shutdown error: %v\n", err)
	}

	// Stop Kafka consumer
	cancelConsumer()

	// Stop record pruner
	a.recordPruner.Stop()

	// Close connections
	a.redisClient.Close()
	a.dbPool.Close()

	fmt.Println("Server shutdown complete")
	return nil
}
