package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateSecrets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := secretsDir
	secretsDir = dir
	t.Cleanup(func() { secretsDir = old })
	return dir
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateSecrets(t)
	unsetEnv(t, "DEEPSEEK_API_KEY", "STORAGE_BACKEND", "DATA_DIR", "DEFAULT_MAX_PARTICIPANTS", "DEEPSEEK_API_URL", "AI_TIMEOUT", "GENERATE_RATE_LIMIT")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.StorageBackend)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 10, cfg.DefaultMaxParticipants)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.AIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, 30, cfg.GenerateRateLimit)
	assert.False(t, cfg.AI().Configured())
}

func TestLoadConfigSecretFallback(t *testing.T) {
	dir := isolateSecrets(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai_api_key"), []byte("  sk-secret\n"), 0o600))
	unsetEnv(t, "DEEPSEEK_API_KEY")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.AIAPIKey)
	assert.True(t, cfg.AI().Configured())
}

func TestLoadConfigEnvFile(t *testing.T) {
	isolateSecrets(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEFAULT_MAX_PARTICIPANTS=4\n"), 0o600))
	// godotenv не перезаписывает существующие переменные
	unsetEnv(t, "DEFAULT_MAX_PARTICIPANTS")
	t.Cleanup(func() { os.Unsetenv("DEFAULT_MAX_PARTICIPANTS") })

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.DefaultMaxParticipants)
}

func TestLoadFile(t *testing.T) {
	isolateSecrets(t)
	unsetEnv(t, "DATA_DIR", "DEFAULT_MAX_PARTICIPANTS", "STORAGE_BACKEND")

	t.Run("YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storyctl.yml")
		require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/stories\ndefault_max_participants: 3\n"), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/stories", cfg.DataDir)
		assert.Equal(t, 3, cfg.DefaultMaxParticipants)
		assert.Equal(t, StorageFile, cfg.StorageBackend)
	})

	t.Run("Missing file falls back to env", func(t *testing.T) {
		t.Setenv("DATA_DIR", "/tmp/env-stories")
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-stories", cfg.DataDir)
	})
}

func TestValidate(t *testing.T) {
	base := Config{StorageBackend: StorageFile, DataDir: "data", AIClientType: "openai", DefaultMaxParticipants: 10}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.StorageBackend = "s3" }, wantErr: true},
		{name: "postgres without url", mutate: func(c *Config) { c.StorageBackend = StoragePostgres }, wantErr: true},
		{name: "unknown ai client", mutate: func(c *Config) { c.AIClientType = "bard" }, wantErr: true},
		{name: "zero participants", mutate: func(c *Config) { c.DefaultMaxParticipants = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: "http://a.test, http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetAllowedOrigins())
	assert.Nil(t, (&Config{}).GetAllowedOrigins())
}
