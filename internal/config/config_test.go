package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ProviderGemini, cfg.Reasoning.Provider)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, "lifeassist.yaml", `
log:
  level: debug
  format: json
server:
  addr: ":9090"
reasoning:
  provider: openai
  model: qwen2.5-7b
  base_url: "localhost:1234, localhost:5678"
  timeout: 45s
store:
  driver: redis
  redis_url: redis://localhost:6379/0
  redis_ttl: 24h
`)
	t.Setenv("LIFEASSIST_ADDR", ":7070")
	t.Setenv("LIFEASSIST_TIMEOUT", "10s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Log.Format)
	assert.Equal(t, ":7070", cfg.Server.Addr, "env wins over file")
	assert.Equal(t, ProviderOpenAI, cfg.Reasoning.Provider)
	assert.Equal(t, 10*time.Second, cfg.Reasoning.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Store.RedisTTL)
	assert.Equal(t, 4096, cfg.Assistant.MaxInputSize, "defaults survive a partial file")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_GeminiAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-gemini-env")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-gemini-env", cfg.Reasoning.APIKey)

	t.Setenv("LIFEASSIST_API_KEY", "explicit")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Reasoning.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "server: [unclosed"))
	assert.Error(t, err)

	t.Setenv("LIFEASSIST_TIMEOUT", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Reasoning.Provider = "openai"
	cfg.Store.Driver = "postgres"
	cfg.Store.EncryptionKey = "not-base64!"
	cfg.Assistant.Concurrency = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"log.level", "reasoning.model", "store.postgres_dsn", "store.encryption_key", "assistant.concurrency"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestStoreConfig_Keys(t *testing.T) {
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	encoded := base64.StdEncoding.EncodeToString(key)

	none, err := StoreConfig{}.Keys()
	require.NoError(t, err)
	assert.Nil(t, none)

	keys, err := StoreConfig{EncryptionKey: encoded, FallbackKeys: []string{encoded}}.Keys()
	require.NoError(t, err)
	assert.Equal(t, key, keys.ActiveKey)
	assert.Len(t, keys.FallbackKeys, 1)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "LIFEASSIST_MODEL=from-dotenv\n")
	t.Setenv("LIFEASSIST_MODEL", "")
	os.Unsetenv("LIFEASSIST_MODEL")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("LIFEASSIST_MODEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Reasoning.Model)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
