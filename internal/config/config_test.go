package config //nolint:testpackage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/levelforge/internal/llm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levelforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "cli", cfg.Model.Backend)
	assert.Equal(t, "ollama", cfg.Model.Executable)
	assert.Equal(t, "deepseek-r1", cfg.Model.Name)
	assert.Zero(t, cfg.Model.Timeout)
	assert.Equal(t, "../src/levels", cfg.Storage.LevelsDir)
	assert.Equal(t, 9, cfg.Generation.LevelNumber)
	assert.Equal(t, []string{"NOT", "AND", "OR", "NAND", "NOR", "XOR", "XNOR"}, cfg.Generation.PriorLevels)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  backend: http
  name: llama3
  endpoint: http://gpu-box:11434
  timeout: 5m
rate_limit:
  enabled: true
  requests_per_second: 0.5
  burst: 2
storage:
  backend: redis
  redis_addr: cache:6379
  redis_db: 2
logging:
  level: debug
  format: json
generation:
  level_number: 10
  prior_levels: [NOT, AND]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Model.Backend)
	assert.Equal(t, "llama3", cfg.Model.Name)
	assert.Equal(t, "http://gpu-box:11434", cfg.Model.Endpoint)
	assert.Equal(t, 5*time.Minute, cfg.Model.Timeout)
	assert.Equal(t, "ollama", cfg.Model.Executable, "unset keys keep their defaults")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Generation.LevelNumber)
	assert.Equal(t, []string{"NOT", "AND"}, cfg.Generation.PriorLevels)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "model: [unterminated"},
		{name: "unknown backend", body: "model:\n  backend: grpc\n"},
		{name: "http without endpoint", body: "model:\n  backend: http\n  endpoint: \"\"\n"},
		{name: "bad endpoint", body: "model:\n  backend: http\n  endpoint: not a url\n"},
		{name: "file storage without dir", body: "storage:\n  levels_dir: \"\"\n"},
		{name: "rate limit without rate", body: "rate_limit:\n  enabled: true\n  requests_per_second: 0\n"},
		{name: "level zero", body: "generation:\n  level_number: 0\n"},
		{name: "empty prior level", body: "generation:\n  prior_levels: [AND, \"\"]\n"},
		{name: "bad log level", body: "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoad_ValidationErrorsWrapSentinel(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  backend: s3\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEVELFORGE_MODEL", "qwen2.5-coder")
	t.Setenv("LEVELFORGE_MODEL_EXECUTABLE", "/opt/ollama/bin/ollama")
	t.Setenv("LEVELFORGE_MODEL_TIMEOUT", "90s")
	t.Setenv("LEVELFORGE_LEVELS_DIR", "/srv/game/src/levels")
	t.Setenv("LEVELFORGE_LEVEL", "11")
	t.Setenv("LEVELFORGE_TASK_QUEUE", "levels-gpu")

	cfg, err := Load(writeConfig(t, "model:\n  name: llama3\n"))
	require.NoError(t, err)

	assert.Equal(t, "qwen2.5-coder", cfg.Model.Name, "environment wins over the file")
	assert.Equal(t, "/opt/ollama/bin/ollama", cfg.Model.Executable)
	assert.Equal(t, 90*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "/srv/game/src/levels", cfg.Storage.LevelsDir)
	assert.Equal(t, 11, cfg.Generation.LevelNumber)
	assert.Equal(t, "levels-gpu", cfg.Temporal.TaskQueue)
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("LEVELFORGE_MODEL_TIMEOUT", "soon")
		_, err := Load("")
		require.Error(t, err)
	})
	t.Run("level", func(t *testing.T) {
		t.Setenv("LEVELFORGE_LEVEL", "nine")
		_, err := Load("")
		require.Error(t, err)
	})
}

func TestConfig_LLM(t *testing.T) {
	cfg := Default()
	cfg.Model.Timeout = time.Minute
	cfg.RateLimit.Enabled = true

	got := cfg.LLM()
	assert.Equal(t, llm.BackendCLI, got.Backend)
	assert.Equal(t, "ollama", got.Executable)
	assert.Equal(t, "deepseek-r1", got.Model)
	assert.Equal(t, time.Minute, got.Timeout)
	assert.True(t, got.RedactPrompts)
	assert.True(t, got.RateLimit.Enabled)
	assert.Equal(t, llm.DefaultBurstSize, got.RateLimit.Burst)
}
