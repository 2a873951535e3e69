package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vibematch/backend/internal/adapters/openai"
	"github.com/vibematch/backend/internal/adapters/rest"
	"github.com/vibematch/backend/internal/adapters/spotify"
	"github.com/vibematch/backend/internal/adapters/sqlite"
	"github.com/vibematch/backend/internal/adapters/suno"
	"github.com/vibematch/backend/internal/adapters/youtube"
	"github.com/vibematch/backend/internal/assets"
	"github.com/vibematch/backend/internal/cache"
	"github.com/vibematch/backend/internal/core/ports"
	"github.com/vibematch/backend/internal/core/services"
	"github.com/vibematch/backend/internal/worker"
)

func main() {
	// 1. Configuration. A local .env is optional; real deployments set
	// the environment directly. Crash early on missing required config.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: could not load .env: %v", err)
	}

	completion := buildCompletionProvider()

	youtubeKey := os.Getenv("YOUTUBE_API_KEY")
	if youtubeKey == "" {
		log.Fatal("FATAL: YOUTUBE_API_KEY environment variable is required")
	}

	sunoBaseURL := os.Getenv("SUNO_BASE_URL")
	if sunoBaseURL == "" {
		log.Fatal("FATAL: SUNO_BASE_URL environment variable is required")
	}

	cacheDir := os.Getenv("MEDIA_CACHE_DIR")
	if cacheDir == "" {
		cacheDir = "media_cache"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "vibematch.db"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// 2. Driven adapters and process-lifetime stores.
	store, err := assets.NewStore(cacheDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize asset store: %v", err)
	}

	repo, err := sqlite.NewAdapter(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	searchCache := cache.NewSearchCache()
	searchClient := youtube.NewSearchClient(youtubeKey, "")
	mediaFetcher := youtube.NewMediaFetcher()
	sunoClient := suno.NewClient(sunoBaseURL, os.Getenv("SUNO_API_KEY"))
	downloader := suno.NewDownloader()
	prefSource := spotify.NewClient()

	pool := worker.NewPool(100)
	pool.Start(2)
	defer pool.Stop()

	// 3. Core services.
	recommender := services.NewRecommender(completion, 60*time.Second)
	beats := services.NewBeatService(sunoClient, downloader, store, pool)
	search := services.NewSearchService(searchCache, searchClient, repo)
	media := services.NewMediaService(store, mediaFetcher)

	// 4. Driving adapter.
	handler := rest.NewHandler(recommender, beats, search, media, prefSource)

	// 5. Serve with graceful shutdown.
	log.Printf("VibeMatch API listening on %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

// buildCompletionProvider picks the AI backend at construction time:
// Azure when fully configured, plain OpenAI otherwise. Nothing past this
// point knows which one it got.
func buildCompletionProvider() ports.CompletionProvider {
	azureKey := os.Getenv("AZURE_OPENAI_API_KEY")
	azureEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	azureDeployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")

	if azureKey != "" && azureEndpoint != "" && azureDeployment != "" {
		apiVersion := os.Getenv("AZURE_OPENAI_API_VERSION")
		if apiVersion == "" {
			apiVersion = "2024-02-15-preview"
		}
		log.Println("Using Azure OpenAI completion backend")
		return openai.NewAzureClient(azureEndpoint, azureKey, azureDeployment, apiVersion)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("FATAL: either Azure OpenAI or OPENAI_API_KEY must be configured")
	}
	log.Println("Using OpenAI completion backend")
	return openai.NewClient(apiKey, os.Getenv("OPENAI_MODEL"), os.Getenv("OPENAI_BASE_URL"))
}
