package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Progress ProgressConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	MediaDir           string
	ExchangeTopicName  string
	MaxUploadMB        int
}

type BackendConfig struct {
	Provider string // "http" or "mock"
	BaseURL  string
	Timeout  time.Duration

	// Extra wait before the generate call is issued. Observed in one variant
	// of the original flow; off unless explicitly configured.
	DispatchDelay time.Duration
}

type ProgressConfig struct {
	TickInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			MediaDir:           getEnv("MEDIA_DIR", "./media"),
			ExchangeTopicName:  getEnv("EXCHANGE_TOPIC_NAME", "EXCHANGE_GENERATE"),
			MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 10),
		},
		Backend: BackendConfig{
			Provider:      getEnv("BACKEND_PROVIDER", "http"),
			BaseURL:       getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
			Timeout:       getEnvAsDuration("BACKEND_TIMEOUT", 120*time.Second),
			DispatchDelay: getEnvAsDuration("BACKEND_DISPATCH_DELAY", 0),
		},
		Progress: ProgressConfig{
			TickInterval: getEnvAsDuration("PROGRESS_TICK_INTERVAL", 150*time.Millisecond),
		},
	}
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
