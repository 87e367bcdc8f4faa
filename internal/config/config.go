package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration values.
type Config struct {
	Port        string
	PublicURL   string
	DatabaseURL string

	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig
	Vertex     VertexConfig

	// Provider selects the chat backend: "openrouter" (default) or "gemini".
	Provider string
	// RenderProvider selects the preview renderer: "gemini" (default) or "vertex".
	RenderProvider string

	Media MediaConfig
}

// OpenRouterConfig holds the OpenRouter chat transport settings.
type OpenRouterConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds the Google AI Studio settings.
type GeminiConfig struct {
	APIKey     string
	Model      string
	ImageModel string
}

// VertexConfig holds the Vertex AI Imagen settings.
type VertexConfig struct {
	ProjectID          string
	Location           string
	Model              string
	APIKey             string
	ServiceAccount     string
	ServiceAccountJSON string
}

// MediaConfig describes S3/media related configuration.
type MediaConfig struct {
	Bucket         string
	Region         string
	Endpoint       string
	PublicURL      string
	KeyPrefix      string
	ForcePathStyle bool
}

// FromEnv loads configuration from environment variables and applies defaults.
func FromEnv() Config {
	cfg := Config{
		Port:        getenv("APP_PORT", "8080"),
		PublicURL:   os.Getenv("APP_PUBLIC_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		OpenRouter: OpenRouterConfig{
			APIKey: os.Getenv("OPENROUTER_API_KEY"),
			Model:  os.Getenv("OPENROUTER_MODEL"),
		},
		Gemini: GeminiConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			Model:      os.Getenv("GEMINI_MODEL"),
			ImageModel: os.Getenv("GEMINI_IMAGE_MODEL"),
		},
		Vertex: VertexConfig{
			ProjectID:          os.Getenv("VERTEX_PROJECT_ID"),
			Location:           getenv("VERTEX_LOCATION", "us-central1"),
			Model:              getenv("VERTEX_IMAGE_MODEL", "imagegeneration@006"),
			APIKey:             os.Getenv("VERTEX_API_KEY"),
			ServiceAccount:     os.Getenv("VERTEX_SERVICE_ACCOUNT"),
			ServiceAccountJSON: os.Getenv("VERTEX_SERVICE_ACCOUNT_JSON"),
		},
		Provider:       strings.ToLower(getenv("AI_PROVIDER", "openrouter")),
		RenderProvider: strings.ToLower(getenv("RENDER_PROVIDER", "gemini")),
		Media: MediaConfig{
			Bucket:         os.Getenv("S3_BUCKET"),
			Region:         os.Getenv("S3_REGION"),
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicURL:      os.Getenv("S3_PUBLIC_URL"),
			KeyPrefix:      strings.Trim(os.Getenv("S3_KEY_PREFIX"), "/"),
			ForcePathStyle: getenvBool("S3_FORCE_PATH_STYLE", false),
		},
	}

	if cfg.Port == "" {
		log.Fatal("APP_PORT cannot be empty")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}

	return parsed
}
