package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/psds-microservice/issue-service/internal/cache"
	"github.com/psds-microservice/issue-service/internal/config"
	"github.com/psds-microservice/issue-service/internal/database"
	"github.com/psds-microservice/issue-service/internal/handler"
	"github.com/psds-microservice/issue-service/internal/kafka"
	"github.com/psds-microservice/issue-service/internal/router"
	"github.com/psds-microservice/issue-service/internal/service"
	"github.com/psds-microservice/issue-service/internal/store"
)

// API приложение: HTTP сервер поверх mongo + redis (режим api).
type API struct {
	cfg         *config.Config
	httpSrv     *http.Server
	mongoClient *mongo.Client
	cache       *cache.Cache
	producer    *kafka.Producer
}

// NewAPI собирает приложение: store, кеш, продюсер событий, движок, роутер.
func NewAPI(ctx context.Context, cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	mongoClient, err := database.Connect(ctx, cfg.Mongo.URL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.EnsureIndexes(ctx, mongoClient, cfg.Mongo.Database); err != nil {
		database.Disconnect(context.Background(), mongoClient)
		return nil, fmt.Errorf("database: %w", err)
	}
	issueStore := store.NewIssueStore(database.IssueCollection(mongoClient, cfg.Mongo.Database))

	// Кеш best-effort: если redis недоступен на старте, сервис работает
	// напрямую через store, Get/Set кеша превращаются в промахи.
	snapshotCache := cache.New(cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err := snapshotCache.Open(ctx); err != nil {
		log.Printf("cache: open %s: %v (continuing without cache)", cfg.Cache.RedisURL, err)
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicIssue)

	engine := service.NewIssueService(issueStore, snapshotCache, producer, cfg.Cache.StrictOwnership)
	issueHandler := handler.NewIssueHandler(engine)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(issueHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:         cfg,
		httpSrv:     httpSrv,
		mongoClient: mongoClient,
		cache:       snapshotCache,
		producer:    producer,
	}, nil
}

// Run запускает HTTP сервер, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Swagger UI:    %s/swagger", base)
	log.Printf("  Health:        %s/health", base)
	log.Printf("  Ready:         %s/ready", base)
	log.Printf("  Issue API:     %s/issue/", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Printf("kafka: close: %v", err)
	}
	if err := a.cache.Close(); err != nil {
		log.Printf("cache: close: %v", err)
	}
	database.Disconnect(shutdownCtx, a.mongoClient)
	return nil
}
