package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all chatdoctor configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Auth   AuthConfig
	LLM    LLMConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr     string
	LogLevel string // "debug", "info", "warn", "error"
}

// DataConfig holds reference data and model artifact locations.
type DataConfig struct {
	Dir       string // directory with the four reference CSV files
	ModelPath string // trained decision-tree artifact
	AuditPath string // NDJSON diagnosis trail, empty disables auditing
}

// AuthConfig holds the account store and token settings. Auth endpoints are
// disabled when DatabaseURL is empty.
type AuthConfig struct {
	DatabaseURL string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// LLMConfig holds the optional conversational-advice settings. The narrator
// falls back to template text when APIKey is empty.
type LLMConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Addr:     getenv("CHATDOCTOR_ADDR", ":8080"),
			LogLevel: getenv("CHATDOCTOR_LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Dir:       getenv("CHATDOCTOR_DATA_DIR", "chatdata/input"),
			ModelPath: getenv("CHATDOCTOR_MODEL_PATH", "trained_model/model.json"),
			AuditPath: os.Getenv("CHATDOCTOR_AUDIT_PATH"),
		},
		Auth: AuthConfig{
			DatabaseURL: os.Getenv("CHATDOCTOR_DATABASE_URL"),
			JWTSecret:   os.Getenv("CHATDOCTOR_JWT_SECRET"),
			AccessTTL:   getenvDuration("CHATDOCTOR_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:  getenvDuration("CHATDOCTOR_REFRESH_TTL", 24*time.Hour),
		},
		LLM: LLMConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getenv("OPENAI_MODEL", "gpt-4o-mini"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	// Accept either a Go duration string or a plain number of seconds.
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
