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
	Security  SecurityConfig
	Providers ProviderConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	PublicConfigTTL    time.Duration
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "mysql"
	Connection string
}

type SecurityConfig struct {
	EncryptionKey string
	JwtSecret     string
}

// ProviderConfig holds the base URLs and shared HTTP timeout for the LLM adapters
type ProviderConfig struct {
	OpenAIBaseURL     string
	GeminiBaseURL     string
	AnthropicBaseURL  string
	PerplexityBaseURL string
	HTTPTimeout       time.Duration
}

type RateLimitConfig struct {
	ChatLimit      int
	ChatWindow     time.Duration
	SettingsLimit  int
	SettingsWindow time.Duration
}

type TracingConfig struct {
	Enabled      bool
	OtlpEndpoint string
	ServiceName  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/gateway.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PublicConfigTTL:    getEnvAsSeconds("PUBLIC_CONFIG_TTL_SECONDS", 60),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Security: SecurityConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
			JwtSecret:     getEnv("JWT_SECRET", ""),
		},
		Providers: ProviderConfig{
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			HTTPTimeout:       getEnvAsSeconds("LLM_HTTP_TIMEOUT_SECONDS", 60),
		},
		RateLimit: RateLimitConfig{
			ChatLimit:      getEnvAsInt("CHAT_RATE_LIMIT", 10),
			ChatWindow:     getEnvAsSeconds("CHAT_RATE_WINDOW_SECONDS", 60),
			SettingsLimit:  getEnvAsInt("SETTINGS_RATE_LIMIT", 20),
			SettingsWindow: getEnvAsSeconds("SETTINGS_RATE_WINDOW_SECONDS", 60),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OtlpEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "portfolio-ai-gateway"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}
