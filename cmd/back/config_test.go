package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("loglevel: -4\n"))
	require.NoError(t, err)

	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, ":4000", cfg.Host)
	assert.Equal(t, 10*time.Second, cfg.TimeOut)
	assert.Equal(t, "hardcover-fiction", cfg.BooksList)
	assert.Equal(t, "/", cfg.VHostRBMQ)
}

func TestParseConfigExpandsEnv(t *testing.T) {
	t.Setenv("BOOKS_API_KEY", "from-env")

	cfg, err := ParseConfig([]byte(`
books_api_key: ${BOOKS_API_KEY}
timeout: 3s
store: redis
addr_cache: localhost:6379
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.BooksAPIKey)
	assert.Equal(t, 3*time.Second, cfg.TimeOut)
	assert.Equal(t, StoreRedis, cfg.Store)
}

func TestParseConfigKeepsDollarInSecrets(t *testing.T) {
	t.Setenv("word", "EXPANDED")
	t.Setenv("DB_PASS", "pg-secret")

	cfg, err := ParseConfig([]byte(`
password_rbmq: "pa$word"
password_cache: "s3cr$t!"
dsn: "postgres://app:${DB_PASS}@db/tweets?x=$1"
`))
	require.NoError(t, err)
	assert.Equal(t, "pa$word", cfg.PasswordRBMQ)
	assert.Equal(t, "s3cr$t!", cfg.PasswordCache)
	assert.Equal(t, "postgres://app:pg-secret@db/tweets?x=$1", cfg.DSN)
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "postgres without dsn", yaml: "store: postgres"},
		{name: "redis without addr", yaml: "store: redis"},
		{name: "unknown store", yaml: "store: sqlite"},
		{name: "negative timeout", yaml: "timeout: -1s"},
		{name: "broken yaml", yaml: "store: [memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: \":8080\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Host)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
