package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_PORT", "DB_PATH", "CATALOG_URL", "CATALOG_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"KAFKA_BROKERS", "ES_URL", "ES_USER", "ES_PASSWORD", "ES_INDEX",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./data/mydb.db", cfg.DBPath)
	assert.Equal(t, DefaultCatalogURL, cfg.CatalogURL)
	assert.Zero(t, cfg.CatalogTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.ESURL)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/cart.db")
	t.Setenv("CATALOG_URL", "http://catalog.local/products")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, kafka2:9092,")
	t.Setenv("ES_URL", "http://es:9200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/cart.db", cfg.DBPath)
	assert.Equal(t, "http://catalog.local/products", cfg.CatalogURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://es:9200", cfg.ESURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad catalog url", key: "CATALOG_URL", val: "not a url"},
		{name: "bad log format", key: "LOG_FORMAT", val: "xml"},
		{name: "port out of range", key: "SERVER_PORT", val: "70000"},
		{name: "bad broker", key: "KAFKA_BROKERS", val: "kafka"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV(" a ,, b "))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_DUR", "nope")
	assert.Equal(t, 5, EnvIntDefault("X_INT", 5))
	assert.Equal(t, time.Second, EnvDurationDefault("X_DUR", time.Second))
	assert.Equal(t, "def", EnvDefault("X_MISSING_KEY", "def"))
}
