package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playercare/internal/cache"
	"playercare/internal/config"
	"playercare/internal/events"
	"playercare/internal/repository"
	"playercare/internal/service"
	"playercare/internal/transport/rest"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	llmConfig := config.DefaultLLMConfig()
	log.Printf("LLM Config:")
	log.Printf("  Classify: %s", llmConfig.Models.Classify)
	log.Printf("  Reply:    %s", llmConfig.Models.Reply)
	if llmConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (classification uses keyword fallback)")
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatal("Failed to load rules:", err)
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// NATS connection (optional; outcome events are best-effort)
	var nc *nats.Conn
	if conn, err := nats.Connect(cfg.NATSURL); err != nil {
		log.Printf("Warning: NATS unavailable, outcome events disabled: %v", err)
	} else {
		nc = conn
		defer nc.Close()
		log.Println("Connected to NATS")
	}

	// Initialize repositories and caches
	ticketRepo := repository.NewTicketRepo(db)
	playerRepo := repository.NewPlayerRepo(db)
	sessionCache := cache.NewSessionCache(rdb)
	publisher := events.NewPublisher(nc)

	// Initialize services
	generator := service.NewGeneratorService(llmConfig)
	sentiment := service.NewSentimentAnalyzer(rules)
	classifier := service.NewClassifierService(rules, sentiment, generator)
	compensation := service.NewCompensationService(rules)
	resolution := service.NewResolutionService(rules, ticketRepo, publisher)
	parser := service.NewReplyParser()
	support := service.NewSupportService(classifier, sentiment, compensation, generator, parser)

	// Keep the generation model warm while the server runs
	warmer := service.NewWarmer(5*time.Minute, generator.Ping)
	warmer.Start(ctx)
	defer warmer.Stop()

	container := &rest.Container{
		SupportService:      support,
		ClassifierService:   classifier,
		CompensationService: compensation,
		ResolutionService:   resolution,
		TicketRepo:          ticketRepo,
		PlayerRepo:          playerRepo,
		SessionCache:        sessionCache,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/support/analyze")
		log.Println("  POST /v1/support/classify")
		log.Println("  POST /v1/support/compensation")
		log.Println("  POST /v1/support/resolve")
		log.Println("  POST /v1/support/reply")
		log.Println("  POST /v1/support/reply/parse")
		log.Println("  GET  /v1/tickets/{ticketId}")
		log.Println("  GET  /v1/players/{playerId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
