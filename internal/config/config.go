package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultCatalogURL = "https://fakestoreapi.com/products"

type Config struct {
	ServerPort int    `validate:"min=1,max=65535"`
	DBPath     string `validate:"required"`

	CatalogURL     string        `validate:"required,url"`
	CatalogTimeout time.Duration `validate:"min=0"`

	LogLevel  string `validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `validate:"omitempty,oneof=json text"`

	KafkaBrokers []string `validate:"dive,hostname_port"`

	ESURL      string `validate:"omitempty,url"`
	ESUser     string
	ESPassword string
	ESIndex    string `validate:"required_with=ESURL"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("notice: .env file not found, using system environment variables", "error", err)
	}

	cfg := &Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		DBPath:     EnvDefault("DB_PATH", "./data/mydb.db"),

		CatalogURL:     EnvDefault("CATALOG_URL", DefaultCatalogURL),
		CatalogTimeout: EnvDurationDefault("CATALOG_TIMEOUT", 0),

		LogLevel:  strings.ToLower(EnvDefault("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(EnvDefault("LOG_FORMAT", "json")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
