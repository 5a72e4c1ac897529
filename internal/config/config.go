// Package config loads the lifeassist configuration from a YAML file, a
// .env file and LIFEASSIST_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/persistence/middleware"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LIFEASSIST_"

// Reasoning providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Profile store drivers.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type LogConfig struct {
	Level  string         `yaml:"level"`
	Format logging.Format `yaml:"format"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type ReasoningConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	// BaseURL is the endpoint override; for the openai provider it may list
	// several endpoints separated by commas.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each reasoning call. Zero means no limit beyond the
	// caller's context.
	Timeout time.Duration `yaml:"timeout"`
}

type FlowsConfig struct {
	// Dir holds extra flow documents. Empty loads only the built-ins.
	Dir string `yaml:"dir"`
}

type StoreConfig struct {
	Driver      string        `yaml:"driver"`
	Path        string        `yaml:"path"`
	RedisURL    string        `yaml:"redis_url"`
	RedisTTL    time.Duration `yaml:"redis_ttl"`
	PostgresDSN string        `yaml:"postgres_dsn"`
	// EncryptionKey is a base64 AES-256 key. When set, sensitive profile
	// fields are encrypted at rest.
	EncryptionKey string   `yaml:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys"`
}

type AssistantConfig struct {
	MaxInputSize int `yaml:"max_input_size"`
	Concurrency  int `yaml:"concurrency"`
}

// Config is the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Flows     FlowsConfig     `yaml:"flows"`
	Store     StoreConfig     `yaml:"store"`
	Assistant AssistantConfig `yaml:"assistant"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: logging.FormatText},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Reasoning: ReasoningConfig{
			Provider: ProviderGemini,
			Timeout:  60 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			Path:   ".lifeassist/profiles",
		},
		Assistant: AssistantConfig{
			MaxInputSize: 4096,
			Concurrency:  4,
		},
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding the real environment. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = logging.Format(strings.ToLower(strings.TrimSpace(v)))
	}
	str("ADDR", &c.Server.Addr)
	str("PROVIDER", &c.Reasoning.Provider)
	str("MODEL", &c.Reasoning.Model)
	str("BASE_URL", &c.Reasoning.BaseURL)
	str("FLOWS_DIR", &c.Flows.Dir)
	str("STORE", &c.Store.Driver)
	str("STORE_PATH", &c.Store.Path)
	str("REDIS_URL", &c.Store.RedisURL)
	str("POSTGRES_DSN", &c.Store.PostgresDSN)
	str("ENCRYPTION_KEY", &c.Store.EncryptionKey)

	if c.Reasoning.APIKey == "" {
		if v, ok := lookup("GEMINI_API_KEY"); ok && c.Reasoning.Provider == ProviderGemini {
			c.Reasoning.APIKey = v
		}
	}
	str("API_KEY", &c.Reasoning.APIKey)

	return errors.Join(
		dur("TIMEOUT", &c.Reasoning.Timeout),
		dur("REDIS_TTL", &c.Store.RedisTTL),
		num("MAX_INPUT_SIZE", &c.Assistant.MaxInputSize),
	)
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	switch c.Reasoning.Provider {
	case ProviderGemini:
	case ProviderOpenAI:
		if c.Reasoning.Model == "" {
			errs = append(errs, errors.New("reasoning.model: required for the openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("reasoning.provider: unknown provider %q", c.Reasoning.Provider))
	}
	if c.Reasoning.Timeout < 0 {
		errs = append(errs, errors.New("reasoning.timeout: must not be negative"))
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path: required for the file driver"))
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			errs = append(errs, errors.New("store.redis_url: required for the redis driver"))
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("store.postgres_dsn: required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	if c.Store.EncryptionKey != "" {
		if _, err := c.Store.Keys(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Assistant.MaxInputSize <= 0 {
		errs = append(errs, errors.New("assistant.max_input_size: must be positive"))
	}
	if c.Assistant.Concurrency <= 0 {
		errs = append(errs, errors.New("assistant.concurrency: must be positive"))
	}

	return errors.Join(errs...)
}

// Keys decodes the encryption keys. It returns nil config when encryption is
// disabled.
func (s StoreConfig) Keys() (*middleware.EncryptionConfig, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	active, err := middleware.ParseKey(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	cfg := &middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range s.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	return cfg, nil
}
