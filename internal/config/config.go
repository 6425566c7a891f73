package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Ai        AIConfig
	Directory DirectoryConfig
	Ingest    IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelSampleRatio    float64
	ShutdownTimeout    time.Duration
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	LLMModel      string
	GeminiAPIKey  string
	GeminiBaseURL string
	OllamaBaseURL string
	Temperature   float64
	MaxTokens     int

	// StreamIdleTimeout ends a chat reply when the provider sends nothing
	// for this long.
	StreamIdleTimeout time.Duration
}

type DirectoryConfig struct {
	NBAStatsURL string
	Season      string
	TTL         time.Duration
	RedisKey    string
}

type IngestConfig struct {
	BaseURL string
	Year    string
	Season  string
	Delay   time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OtelSampleRatio:    getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
			ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getEnvAsDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-2.5-flash"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1024),

			StreamIdleTimeout: getEnvAsDuration("CHAT_STREAM_IDLE_TIMEOUT", 30*time.Second),
		},
		Directory: DirectoryConfig{
			NBAStatsURL: getEnv("NBA_STATS_URL", "https://stats.nba.com/stats"),
			Season:      getEnv("NBA_SEASON", "2025-26"),
			TTL:         getEnvAsDuration("DIRECTORY_TTL", 30*24*time.Hour),
			RedisKey:    getEnv("DIRECTORY_REDIS_KEY", "directory:nba_players"),
		},
		Ingest: IngestConfig{
			BaseURL: getEnv("BBREF_BASE_URL", "https://www.basketball-reference.com"),
			Year:    getEnv("BBREF_YEAR", "2026"),
			Season:  getEnv("NBA_SEASON", "2025-26"),
			Delay:   getEnvAsDuration("INGEST_DELAY", 3*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
