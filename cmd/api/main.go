package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alquimia/internal/config"
	"alquimia/internal/credits"
	"alquimia/internal/events"
	"alquimia/internal/generation"
	"alquimia/internal/llm"
	"alquimia/internal/media"
	"alquimia/internal/render"
	"alquimia/internal/server"
	"alquimia/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	ctx := context.Background()
	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	var uploader media.Uploader
	if cfg.Media.Bucket != "" && cfg.Media.Region != "" {
		uploader, err = media.NewUploader(ctx, media.Config{
			Bucket:         cfg.Media.Bucket,
			Region:         cfg.Media.Region,
			Endpoint:       cfg.Media.Endpoint,
			PublicURL:      cfg.Media.PublicURL,
			KeyPrefix:      cfg.Media.KeyPrefix,
			ForcePathStyle: cfg.Media.ForcePathStyle,
		})
		if err != nil {
			log.Fatalf("failed to init media uploader: %v", err)
		}
	} else {
		uploader, err = media.NewLocalUploader("")
		if err != nil {
			log.Fatalf("failed to init local media storage: %v", err)
		}
		log.Println("media uploader: using local temp storage (S3 config missing)")
	}

	var client llm.Client
	var model string
	switch cfg.Provider {
	case "gemini":
		client = llm.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, 60*time.Second, nil)
		model = cfg.Gemini.Model
		log.Println("chat transport ready: Gemini")
	default:
		client = llm.NewOpenRouterClient(cfg.OpenRouter.APIKey, cfg.PublicURL)
		model = cfg.OpenRouter.Model
		log.Println("chat transport ready: OpenRouter")
	}
	if err := client.Ready(); err != nil {
		log.Fatalf("AI provider not configured: %v", err)
	}

	service := generation.NewService(client, model)

	var renderer render.Renderer
	switch {
	case cfg.RenderProvider == "vertex" && cfg.Vertex.ProjectID != "":
		renderer = render.NewVertexImagen(render.VertexImagenConfig{
			ProjectID:          cfg.Vertex.ProjectID,
			Location:           cfg.Vertex.Location,
			Model:              cfg.Vertex.Model,
			APIKey:             cfg.Vertex.APIKey,
			ServiceAccount:     cfg.Vertex.ServiceAccount,
			ServiceAccountJSON: cfg.Vertex.ServiceAccountJSON,
		}, uploader)
		log.Println("renderer ready: Vertex Imagen")
	case cfg.Gemini.APIKey != "":
		renderer = render.NewGeminiRenderer(cfg.Gemini.APIKey, cfg.Gemini.ImageModel, 60*time.Second)
		log.Println("renderer ready: Gemini image output")
	default:
		log.Println("renderer disabled: no image provider configured")
	}

	eventBroker := events.NewBroker()

	handler := server.Handler{
		Service:  service,
		Store:    store,
		Credits:  credits.NewGate(store),
		Uploader: uploader,
		Renderer: renderer,
		Events:   eventBroker,
	}

	staticFS := http.FileServer(http.Dir("web"))
	srv := server.New(cfg.Port, handler, staticFS)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("shutting down server...")
		if err := srv.Close(); err != nil {
			log.Printf("server close error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
