package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homematch/internal/chunker"
	"homematch/internal/config"
	"homematch/internal/handler"
	"homematch/internal/parser"
	"homematch/internal/service"
	"homematch/internal/store"
	"homematch/internal/utils"
	"homematch/internal/vectorstore"
	"homematch/internal/vectorstore/local"
	"homematch/internal/vectorstore/pgvector"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("HomeMatch Listing Search")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	logger := utils.NewLogger()

	// Initialize OpenAI client
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI, logger)
	if cfg.OpenAI.Enabled {
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
		log.Printf("   - Chat Temperature: %.2f", cfg.OpenAI.ChatTemperature)
	} else {
		log.Println("⚠️  OpenAI is disabled - listing generation and search will not work")
		log.Println("   Set OPENAI_API_KEY environment variable to enable them")
	}

	// Initialize vector index backend
	var index vectorstore.Store
	switch cfg.Index.Backend {
	case "postgres":
		pgStore, err := pgvector.NewStore(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		index = pgStore
		log.Println("✅ Using PostgreSQL pgvector index")
	default:
		index = local.NewStore(cfg.Index.Dir)
		log.Printf("✅ Using local vector index at %s", cfg.Index.Dir)
	}
	defer index.Close()

	// Initialize services
	textChunker := chunker.New(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap)
	searchService := service.NewSearchService(textChunker, openaiClient, index, logger)
	generator := service.NewGenerator(openaiClient, cfg.OpenAI.ChatTemperature, logger)
	summarizer := service.NewSummarizer(openaiClient, cfg.OpenAI.ChatTemperature)
	files := store.NewFileStore(cfg.Listings.File)
	listingService := service.NewListingService(generator, parser.New(logger), files, searchService, logger)

	log.Println("✅ Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService, summarizer, cfg.Search.DefaultTopK, cfg.Search.MaxTopK, logger)
	listingHandler := handler.NewListingHandler(listingService, logger)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		ready, _ := index.Ready(c.Request.Context())
		c.JSON(200, gin.H{
			"status":      "healthy",
			"service":     "homematch",
			"version":     Version,
			"ai_enabled":  cfg.OpenAI.Enabled,
			"index_ready": ready,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/listings/generate", listingHandler.Generate)
		apiV1.GET("/listings", listingHandler.List)
		apiV1.POST("/search", searchHandler.Search)
	}

	// Serve the embedded frontend
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
