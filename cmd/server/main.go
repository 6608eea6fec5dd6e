package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopassist/backend/config"
	httpDelivery "github.com/shopassist/backend/internal/delivery/http"
	"github.com/shopassist/backend/internal/infrastructure/cache"
	"github.com/shopassist/backend/internal/infrastructure/catalogapi"
	"github.com/shopassist/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopAssist Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storefront API: %s", cfg.Catalog.BaseURL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	apiClient := catalogapi.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL)
	apiClient.SetPageSize(cfg.Catalog.PageSize)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		apiClient.SetDebug(true)
		log.Printf("Storefront API client debug mode enabled")
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(apiClient)
	matcherService := usecase.NewMatcherService(usecase.MatcherConfig{
		MaxResults:         cfg.Assistant.MaxResults,
		EnableDebugLogging: cfg.Assistant.EnableDebugLogging,
	})
	classifierService := usecase.NewClassifierService(matcherService)
	assistantService := usecase.NewAssistantService(
		catalogService,
		matcherService,
		classifierService,
		apiClient,
		memoryCache,
		usecase.AssistantConfig{
			ReviewCacheTTL:     cfg.Cache.TTL,
			EnableDebugLogging: cfg.Assistant.EnableDebugLogging,
		},
	)

	// Load the catalog snapshot without blocking startup. Until it arrives
	// the assistant answers over an empty catalog.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := catalogService.Refresh(ctx); err != nil {
			log.Printf("Initial catalog load failed (assistant starts with an empty catalog): %v", err)
			return
		}
		log.Printf("Catalog snapshot loaded: %d products", catalogService.Size())
	}()

	// Create HTTP handler with dependencies
	sessions := httpDelivery.NewSessionStore()
	handler := httpDelivery.NewHandler(assistantService, catalogService, sessions)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
