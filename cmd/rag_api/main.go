package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingapi "docuchat/internal/booking_service/api"
	bookingstore "docuchat/internal/booking_service/store"
	chatapi "docuchat/internal/chat_service/api"
	"docuchat/internal/chat_service/booking"
	chatservice "docuchat/internal/chat_service/service"
	chatstore "docuchat/internal/chat_service/store"
	"docuchat/internal/config"
	"docuchat/internal/database/kafka"
	"docuchat/internal/database/milvus"
	"docuchat/internal/database/minio"
	"docuchat/internal/database/mysql"
	"docuchat/internal/database/redis"
	docapi "docuchat/internal/document_service/api"
	docservice "docuchat/internal/document_service/service"
	docstore "docuchat/internal/document_service/store"
	"docuchat/internal/embedding"
	"docuchat/internal/llm"
	"docuchat/internal/models"
	"docuchat/internal/rag/storages/vectorstore"
	"docuchat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("rag_api")
	appLogger.Info("Starting RAG API service...")

	// 3. Initialize storage backends
	db, err := mysql.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer mysql.Close()

	if err := db.AutoMigrate(&models.Document{}, &models.TextChunk{}, &models.Booking{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
	appLogger.Info("Database migration completed")

	rdb, err := redis.GetClient(&cfg.Databases.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	milvusClient, err := milvus.GetClient(context.Background(), &cfg.Databases.Milvus)
	if err != nil {
		log.Fatalf("Failed to connect to Milvus: %v", err)
	}
	defer milvusClient.Close()

	if err := milvusClient.EnsureCollection(context.Background()); err != nil {
		log.Fatalf("Failed to ensure Milvus collection: %v", err)
	}

	// 4. Optional backends: raw file archival and domain events
	var archiver docservice.Archiver
	if cfg.Databases.MinIO.Enabled {
		minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		archiver = docstore.NewArchiveStore(minioClient, cfg.Databases.MinIO.Bucket)
	}

	var events *kafka.EventPublisher
	if cfg.Databases.Kafka.Enabled {
		kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka: %v", err)
		}
		defer kafkaClient.Close()
		events = kafka.NewEventPublisher(kafkaClient)
	}

	// 5. Model clients
	embedder, err := embedding.NewOllamaModel(cfg.Embedding.Ollama.Model, cfg.Embedding.Ollama.BaseURL)
	if err != nil {
		log.Fatalf("Failed to create embedding client: %v", err)
	}
	generator := llm.NewOllama(
		cfg.LLM.Ollama.Model,
		cfg.LLM.Ollama.BaseURL,
		time.Duration(cfg.Chat.GenTimeoutSec)*time.Second,
		logger.New("ollama_generator"),
	)

	vectors, err := vectorstore.NewMilvusStore(milvusClient, cfg.Databases.Milvus.Collection, logger.New("vectorstore"))
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}

	// 6. Wire stores, services and handlers
	documentStore := docstore.NewDocumentStore(db)
	bookingStore := bookingstore.NewBookingStore(db)
	conversationStore := chatstore.NewConversationStore(
		rdb,
		time.Duration(cfg.Chat.HistoryTTL)*time.Second,
		time.Duration(cfg.Chat.BookingTTL)*time.Second,
	)

	// EventSink interfaces are per-package; a nil *EventPublisher must not
	// leak into them as a non-nil interface value.
	var docEvents docservice.EventSink
	var bookingEvents booking.EventSink
	if events != nil {
		docEvents = events
		bookingEvents = events
	}

	documentService := docservice.NewService(documentStore, embedder, vectors, archiver, docEvents, logger.New("document_service"))
	documentHandler := docapi.NewHandler(documentService, &cfg.Chunking)

	bookingFlow := booking.NewFlow(conversationStore, bookingStore, bookingEvents, logger.New("booking_flow"))
	chatService := chatservice.NewService(
		conversationStore,
		bookingFlow,
		embedder,
		vectors,
		generator,
		cfg.Chat.MaxHistory,
		cfg.Chat.TopK,
		logger.New("chat_service"),
	)
	chatHandler := chatapi.NewHandler(chatService, logger.New("chat_api"))
	bookingHandler := bookingapi.NewHandler(bookingStore, logger.New("booking_api"))
	appLogger.Info("Dependencies injected")

	// 7. Setup Gin router
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"mysql": "ok", "redis": "ok", "milvus": "ok"}
		healthy := true
		if err := mysql.HealthCheck(ctx); err != nil {
			checks["mysql"] = err.Error()
			healthy = false
		}
		if err := redis.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
		if err := milvusClient.HealthCheck(ctx); err != nil {
			checks["milvus"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": checks})
	})

	apiGroup := router.Group("/api")
	{
		docapi.RegisterRoutes(apiGroup, documentHandler)
		chatapi.RegisterRoutes(apiGroup, chatHandler)
		bookingapi.RegisterRoutes(apiGroup, bookingHandler)
	}

	// 8. Start HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Forced shutdown: %v", err))
	}
	appLogger.Info("Server gracefully stopped")
}
