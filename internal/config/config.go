// Package config loads the service configuration from a YAML file with
// environment overrides for secrets. A missing file is not an error; the
// defaults describe a fully working local setup.
package config

// #region imports
import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// #endregion

// #region types

// Config is the root configuration for the interview service.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Session    SessionConfig    `yaml:"session"`
	Archive    ArchiveConfig    `yaml:"archive"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GenerationConfig tunes the upstream chat-completion client.
type GenerationConfig struct {
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// SessionConfig tunes interview sessions and their ephemeral storage.
type SessionConfig struct {
	MaxQuestions int    `yaml:"max_questions"`
	TTLSeconds   int    `yaml:"ttl_seconds"`
	StoreBackend string `yaml:"store_backend"` // "memory" or "sqlite"
	StorePath    string `yaml:"store_path"`
}

// ArchiveConfig tunes the durable interview archive.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// #endregion

// #region defaults

// Default returns a configuration that works out of the box.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Generation: GenerationConfig{
			Model:          "gpt-4o-mini",
			MaxTokens:      512,
			Temperature:    0.7,
			TimeoutSeconds: 60,
		},
		Session: SessionConfig{
			MaxQuestions: 10,
			TTLSeconds:   3600,
			StoreBackend: "memory",
			StorePath:    "sessions.db",
		},
		Archive: ArchiveConfig{
			Path: "interviews.db",
		},
	}
}

// #endregion

// #region load

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path or a missing file yields defaults
// plus environment.
func Load(path string) (Config, error) {
	// Secrets live in .env during development; ignore a missing file.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Generation.BaseURL = v
	}
	if v := os.Getenv("INTERVIEW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// #endregion

// #region validation

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Session.MaxQuestions <= 0 {
		return fmt.Errorf("session.max_questions must be positive, got %d", c.Session.MaxQuestions)
	}
	if c.Session.TTLSeconds <= 0 {
		return fmt.Errorf("session.ttl_seconds must be positive, got %d", c.Session.TTLSeconds)
	}
	if c.Session.StoreBackend != "memory" && c.Session.StoreBackend != "sqlite" {
		return fmt.Errorf("session.store_backend must be memory or sqlite, got %q", c.Session.StoreBackend)
	}
	if c.Session.StoreBackend == "sqlite" && c.Session.StorePath == "" {
		return fmt.Errorf("session.store_path is required for the sqlite backend")
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation.model must not be empty")
	}
	if c.Generation.TimeoutSeconds <= 0 {
		return fmt.Errorf("generation.timeout_seconds must be positive, got %d", c.Generation.TimeoutSeconds)
	}
	if c.Archive.Path == "" {
		return fmt.Errorf("archive.path must not be empty")
	}
	return nil
}

// #endregion

// #region accessors

// SessionTTL returns the session TTL as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLSeconds) * time.Second
}

// GenerationTimeout returns the upstream call timeout as a duration.
func (c Config) GenerationTimeout() time.Duration {
	return time.Duration(c.Generation.TimeoutSeconds) * time.Second
}

// #endregion
