package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brandforge/brandforge-golang/internal/ai"
	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/compliance"
	"github.com/brandforge/brandforge-golang/internal/database"
	"github.com/brandforge/brandforge-golang/internal/handlers"
	"github.com/brandforge/brandforge-golang/internal/publish"
	"github.com/brandforge/brandforge-golang/internal/routes"
	"github.com/brandforge/brandforge-golang/internal/store"
	"github.com/brandforge/brandforge-golang/internal/wizard"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Brand Guideline / Option Catalog ---
	var cat *catalog.Catalog
	if path := os.Getenv("GUIDELINE_CONFIG"); path != "" {
		cat, err = catalog.Load(path)
		if err != nil {
			log.Fatalf("Failed to load guideline config: %v", err)
		}
	} else {
		cat, err = catalog.New(catalog.DefaultGuideline())
		if err != nil {
			log.Fatalf("Built-in guideline is invalid: %v", err)
		}
		log.Println("GUIDELINE_CONFIG not set, using built-in guideline")
	}

	// 3. --- AI Service Initialization ---
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Fatal("CRITICAL ERROR: GEMINI_API_KEY environment variable is not set.")
	}
	aiService, err := ai.NewAIService(geminiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI Service: %v", err)
	}

	// 4. --- Catalog Service Client ---
	catalogURL := os.Getenv("CATALOG_SERVICE_URL")
	if catalogURL == "" {
		log.Fatal("CRITICAL ERROR: CATALOG_SERVICE_URL environment variable is not set.")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:        db,
		AIService: aiService,
		Catalog:   cat,
		Drafts:    &store.DraftStore{DB: db},
		Reducer:   &wizard.Reducer{Catalog: cat},
		Validator: &compliance.Validator{Catalog: cat},
		Gate:      &publish.Gate{Catalog: publish.NewHTTPCatalogClient(catalogURL)},
	}

	// --- Background Worker ---
	// Abandoned wizard sessions pile up; sweep in_progress drafts that have
	// not been touched for 72 hours.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background worker started: sweeping abandoned drafts...")

		for range ticker.C {
			n, err := app.Drafts.ExpireAbandoned(context.Background(), 72*time.Hour)
			if err != nil {
				log.Printf("Draft sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Draft sweep removed %d abandoned drafts", n)
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Println("Starting BrandForge API server on port 8080...")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
