package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all socialpost configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Generation service
	LLM LLMConfig `yaml:"llm"`

	// Brand/post persistence
	Store StoreConfig `yaml:"store"`

	// Generation limits
	Generation GenerationConfig `yaml:"generation"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// StoreConfig selects where the brand collection is persisted.
type StoreConfig struct {
	Backend    string `yaml:"backend"` // file, sqlite, memory
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// GenerationConfig bounds what the CLI asks the model for.
type GenerationConfig struct {
	MaxPosts          int `yaml:"max_posts"`
	MaxCampaignDays   int `yaml:"max_campaign_days"`
	EnrichConcurrency int `yaml:"enrich_concurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Name:    "socialpost",
		Version: "1.0.0",

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    DefaultModel,
		},

		Store: StoreConfig{
			Backend:    BackendFile,
			Dir:        dataDir,
			SQLitePath: filepath.Join(dataDir, "socialpost.db"),
		},

		Generation: GenerationConfig{
			MaxPosts:          20,
			MaxCampaignDays:   14,
			EnrichConcurrency: 4,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".socialpost"
	}
	return filepath.Join(home, ".socialpost")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults when the file doesn't exist
		data = nil
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// GOOGLE_API_KEY first so GEMINI_API_KEY wins when both are set
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("SOCIALPOST_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if backend := os.Getenv("SOCIALPOST_STORE"); backend != "" {
		c.Store.Backend = backend
	}
	if dir := os.Getenv("SOCIALPOST_DATA_DIR"); dir != "" {
		c.Store.Dir = dir
		c.Store.SQLitePath = filepath.Join(dir, "socialpost.db")
	}
}

// GetLLMTimeout returns the generation request timeout as a duration. Zero
// means no application timeout; the transport default applies.
func (c *Config) GetLLMTimeout() time.Duration {
	if c.LLM.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ValidBackends lists all supported store backends.
var ValidBackends = []string{BackendFile, BackendSQLite, BackendMemory}

// Validate validates the configuration. It does not require an API key so that
// store-only commands work offline; see RequireAPIKey.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.Store.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, ValidBackends)
	}
	if c.Store.Backend == BackendFile && c.Store.Dir == "" {
		return fmt.Errorf("store.dir is required for the file backend")
	}
	if c.Store.Backend == BackendSQLite && c.Store.SQLitePath == "" {
		return fmt.Errorf("store.sqlite_path is required for the sqlite backend")
	}
	if c.Generation.MaxPosts < 1 || c.Generation.MaxCampaignDays < 1 {
		return fmt.Errorf("generation limits must be positive")
	}
	return nil
}

// RequireAPIKey reports a configuration error when no generation key is set.
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("generation API key not configured (set GEMINI_API_KEY or llm.api_key)")
	}
	return nil
}
