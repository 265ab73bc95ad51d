package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TWEETSMITH_MODEL.
const EnvPrefix = "TWEETSMITH"

// Config holds application configuration.
type Config struct {
	// OllamaURL is the base address of the local generation service.
	OllamaURL string `mapstructure:"ollama_url" json:"ollama_url"`

	// Model is the Ollama model used for rewrites.
	Model string `mapstructure:"model" json:"model"`

	// Temperature is the sampling temperature sent with every generation request.
	Temperature float64 `mapstructure:"temperature" json:"temperature"`

	// Bind and Port control where `tweetsmith serve` listens.
	Bind string `mapstructure:"bind" json:"bind"`
	Port int    `mapstructure:"port" json:"port"`

	// LogLevel is any level understood by logrus ("debug", "info", "warn", ...).
	LogLevel string `mapstructure:"log_level" json:"log_level"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `mapstructure:"db_max_open_conns" json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `mapstructure:"db_max_idle_conns" json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `mapstructure:"disabled_tools" json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OllamaURL:   "http://localhost:11434",
		Model:       "gemma3:4b",
		Temperature: 0.7,
		Bind:        "127.0.0.1",
		Port:        3000,
		LogLevel:    "info",
	}
}

// Load loads configuration from baseDir/config.json, then applies
// TWEETSMITH_* environment overrides. A missing file yields defaults.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tweetsmith.
func Load(baseDir string) (*Config, error) {
	v := newViper()

	configPath := filepath.Join(baseDir, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.DisabledTools = cleanStringSlice(cfg.DisabledTools)
	cfg.OllamaURL = strings.TrimRight(strings.TrimSpace(cfg.OllamaURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper returns a viper instance seeded with defaults and env bindings.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func newViper() *viper.Viper {
	d := DefaultConfig()
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("ollama_url", d.OllamaURL)
	v.SetDefault("model", d.Model)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("bind", d.Bind)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("db_max_open_conns", 0)
	v.SetDefault("db_max_idle_conns", 0)
	v.SetDefault("disabled_tools", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate reports configuration values that would make the service unusable.
func (c *Config) Validate() error {
	if c.OllamaURL == "" {
		return errors.New("ollama_url must not be empty")
	}
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be non-negative, got %v", c.Temperature)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// cleanStringSlice trims whitespace and removes empty entries and duplicates.
func cleanStringSlice(in []string) []string {
	seen := make(map[string]bool, len(in))
	result := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
