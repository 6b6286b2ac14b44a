// Package config loads levelforge settings from YAML with environment
// overrides, and builds the loggers and clients they describe.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/levelforge/internal/llm"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Storage backends.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config is the complete levelforge configuration.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Temporal   TemporalConfig   `yaml:"temporal"`
	Generation GenerationConfig `yaml:"generation"`
}

// ModelConfig selects how the model is reached.
type ModelConfig struct {
	Backend       string        `yaml:"backend" validate:"oneof=cli http"`
	Executable    string        `yaml:"executable" validate:"required_if=Backend cli"`
	Name          string        `yaml:"name" validate:"required"`
	Endpoint      string        `yaml:"endpoint" validate:"required_if=Backend http,omitempty,url"`
	Timeout       time.Duration `yaml:"timeout" validate:"min=0"`
	RedactPrompts bool          `yaml:"redact_prompts"`
}

// RateLimitConfig spaces out model invocations.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst             int     `yaml:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// StorageConfig selects where accepted levels are written.
type StorageConfig struct {
	Backend       string `yaml:"backend" validate:"oneof=file redis memory"`
	LevelsDir     string `yaml:"levels_dir" validate:"required_if=Backend file"`
	RedisAddr     string `yaml:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"min=0"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// TemporalConfig locates the Temporal frontend and task queue.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port" validate:"required,hostname_port"`
	Namespace string `yaml:"namespace" validate:"required"`
	TaskQueue string `yaml:"task_queue" validate:"required"`
}

// GenerationConfig is the level requested by a bare invocation.
type GenerationConfig struct {
	LevelNumber int      `yaml:"level_number" validate:"min=1"`
	PriorLevels []string `yaml:"prior_levels" validate:"dive,required"`
}

// Default returns a configuration that runs "ollama run deepseek-r1" and
// writes level 9 to ../src/levels.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Backend:       string(llm.BackendCLI),
			Executable:    llm.DefaultExecutable,
			Name:          llm.DefaultModel,
			Endpoint:      llm.DefaultOllamaEndpoint,
			RedactPrompts: true,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: llm.DefaultRequestsPerSecond,
			Burst:             llm.DefaultBurstSize,
		},
		Storage: StorageConfig{
			Backend:   StorageFile,
			LevelsDir: "../src/levels",
			RedisAddr: "localhost:6379",
			KeyPrefix: "levelforge:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Temporal: TemporalConfig{
			HostPort:  "localhost:7233",
			Namespace: "default",
			TaskQueue: "level-generation",
		},
		Generation: GenerationConfig{
			LevelNumber: 9,
			PriorLevels: []string{"NOT", "AND", "OR", "NAND", "NOR", "XOR", "XNOR"},
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides replaces values with LEVELFORGE_* environment variables.
func (c *Config) applyEnvOverrides() error {
	strs := []struct {
		env string
		dst *string
	}{
		{"LEVELFORGE_MODEL_BACKEND", &c.Model.Backend},
		{"LEVELFORGE_MODEL_EXECUTABLE", &c.Model.Executable},
		{"LEVELFORGE_MODEL", &c.Model.Name},
		{"LEVELFORGE_OLLAMA_ENDPOINT", &c.Model.Endpoint},
		{"LEVELFORGE_STORAGE_BACKEND", &c.Storage.Backend},
		{"LEVELFORGE_LEVELS_DIR", &c.Storage.LevelsDir},
		{"LEVELFORGE_REDIS_ADDR", &c.Storage.RedisAddr},
		{"LEVELFORGE_REDIS_PASSWORD", &c.Storage.RedisPassword},
		{"LEVELFORGE_LOG_LEVEL", &c.Logging.Level},
		{"LEVELFORGE_LOG_FORMAT", &c.Logging.Format},
		{"LEVELFORGE_TEMPORAL_HOST", &c.Temporal.HostPort},
		{"LEVELFORGE_TEMPORAL_NAMESPACE", &c.Temporal.Namespace},
		{"LEVELFORGE_TASK_QUEUE", &c.Temporal.TaskQueue},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv("LEVELFORGE_MODEL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LEVELFORGE_MODEL_TIMEOUT: %w", err)
		}
		c.Model.Timeout = d
	}
	if v := os.Getenv("LEVELFORGE_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEVELFORGE_LEVEL: %w", err)
		}
		c.Generation.LevelNumber = n
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section's constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LLM converts the model and rate limit sections into a client configuration.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Backend:       llm.Backend(c.Model.Backend),
		Executable:    c.Model.Executable,
		Model:         c.Model.Name,
		Endpoint:      c.Model.Endpoint,
		Timeout:       c.Model.Timeout,
		RedactPrompts: c.Model.RedactPrompts,
		RateLimit: llm.RateLimitConfig{
			Enabled:           c.RateLimit.Enabled,
			RequestsPerSecond: c.RateLimit.RequestsPerSecond,
			Burst:             c.RateLimit.Burst,
		},
	}
}
