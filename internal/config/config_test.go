package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
session:
  secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "todos", cfg.Mongo.Database)
	assert.Equal(t, 86400, cfg.Session.MaxAge)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 300, cfg.Cache.TTL)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
listen: "127.0.0.1:8080"
mongo:
  uri: "mongodb://db:27017"
  database: taskboard
session:
  secret: test-secret
  max_age: 3600
cache:
  backend: redis
  redis_url: "redis:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "taskboard", cfg.Mongo.Database)
	assert.Equal(t, 3600, cfg.Session.MaxAge)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisURL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing session secret",
			content: `listen: ":3000"`,
			wantErr: "session secret is required",
		},
		{
			name: "empty mongo database",
			content: `
mongo:
  database: ""
session:
  secret: test-secret
`,
			wantErr: "mongo database name is required",
		},
		{
			name: "redis backend without url",
			content: `
session:
  secret: test-secret
cache:
  backend: redis
`,
			wantErr: "redis_url is required",
		},
		{
			name: "unknown cache backend",
			content: `
session:
  secret: test-secret
cache:
  backend: memcached
`,
			wantErr: "unknown cache backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
