package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Viewer  ViewerConfig
	Events  EventsConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string `validate:"required,numeric"`
	Environment        string `validate:"oneof=development production test"`
	LogFilePath        string `validate:"required"`
	WebsocketLogPath   string `validate:"required"`
	ChatLogPath        string `validate:"required"`
	CorsAllowedOrigins string
}

type BackendConfig struct {
	BaseURL string `validate:"required,url"`
	// Timeout of zero disables the client-side deadline.
	Timeout time.Duration `validate:"gte=0"`
}

type ViewerConfig struct {
	CacheTTL time.Duration `validate:"gte=0"`
}

type EventsConfig struct {
	TransitionTopic string `validate:"required"`
	NatsURL         string // empty disables NATS
	RedisURL        string // empty disables cross-instance fan-out
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
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
			WebsocketLogPath:   getEnv("WEBSOCKET_LOG_PATH", "logs/websocket.log"),
			ChatLogPath:        getEnv("CHAT_LOG_PATH", "logs/chat.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", "http://localhost:5000"),
			Timeout: time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		Viewer: ViewerConfig{
			CacheTTL: time.Duration(getEnvAsInt("PDF_CACHE_TTL_MINUTES", 30)) * time.Minute,
		},
		Events: EventsConfig{
			TransitionTopic: getEnv("SESSION_TRANSITION_TOPIC", "session.transitions"),
			NatsURL:         getEnv("NATS_URL", ""),
			RedisURL:        getEnv("REDIS_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate checks the loaded values before anything is wired.
func (c *Config) Validate() error {
	v := validator.New()
	for name, section := range map[string]interface{}{
		"app":     c.App,
		"backend": c.Backend,
		"viewer":  c.Viewer,
		"events":  c.Events,
	} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("invalid %s config: %w", name, err)
		}
	}
	return nil
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
