package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPanelConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	BackendURL     string
	BackendTimeout time.Duration

	SessionSecret string
	IDScheme      string
	SnowflakeNode int64
	MaxImageBytes int64

	OTLPEndpoint string

	SheetstubAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

const (
	IDSchemeMillis    = "millis"
	IDSchemeSnowflake = "snowflake"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:        getenv("APP_SERVICE", "vitrine"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    getenv("ENVIRONMENT", "development"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		BackendURL:     strings.TrimRight(strings.TrimSpace(getenv("BACKEND_URL", "http://localhost:8081/api/v1/catalog")), "/"),
		BackendTimeout: getenvDuration("BACKEND_TIMEOUT", 15*time.Second),
		SessionSecret:  strings.TrimSpace(getenv("SESSION_SECRET", "vitrine-dev-session-secret")),
		IDScheme:       normalizeIDScheme(getenv("ID_SCHEME", IDSchemeMillis)),
		SnowflakeNode:  getenvInt64("SNOWFLAKE_NODE", 1),
		MaxImageBytes:  getenvInt64("MAX_IMAGE_BYTES", 5<<20),
		OTLPEndpoint:   getenv("OTLP_ENDPOINT", "localhost:4317"),
		SheetstubAddr:  getenv("SHEETSTUB_ADDR", ":8081"),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "sheetstub"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 2)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 10)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 300)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 60)),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func normalizeIDScheme(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case IDSchemeSnowflake:
		return IDSchemeSnowflake
	default:
		return IDSchemeMillis
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// getenvDuration accepts Go durations ("15s") or plain seconds ("15").
func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
