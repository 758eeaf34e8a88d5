package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsepoll/internal/cache"
	"pulsepoll/internal/config"
	"pulsepoll/internal/repository"
	"pulsepoll/internal/service"
	"pulsepoll/internal/transport/rest"
	"pulsepoll/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

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

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	insightCache := cache.NewInsightCache(rdb, cfg.InsightTTL)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	patternSvc := service.NewPatternService()
	forecastSvc := service.NewForecastService(responseRepo)
	aggregationSvc := service.NewAggregationService()
	attentionSvc := service.NewAttentionService(surveyRepo, responseRepo)
	insightSvc := service.NewInsightService(surveyRepo, responseRepo, patternSvc, forecastSvc, aggregationSvc, attentionSvc, insightCache)
	responseSvc := service.NewResponseService(surveyRepo, responseRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		Config:           cfg,
		AuthService:      authSvc,
		ResponseService:  responseSvc,
		InsightService:   insightSvc,
		ForecastService:  forecastSvc,
		AttentionService: attentionSvc,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/surveys/{surveyId}/responses")
		log.Println("  GET  /v1/surveys/{surveyId}/analytics")
		log.Println("  GET  /v1/surveys/{surveyId}/patterns")
		log.Println("  GET  /v1/surveys/{surveyId}/forecast")
		log.Println("  GET  /v1/surveys/{surveyId}/attention")
		log.Println("  GET  /v1/surveys/{surveyId}/insights")
		log.Println("  GET  /v1/attention")
		log.Println("  WS   /v1/ws/surveys/{surveyId}/dashboard")

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
