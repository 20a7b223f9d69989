package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath      = "BERITA_CONFIG"
	EnvLLMAPIKey       = "BERITA_LLM_API_KEY"
	EnvGroqAPIKey      = "GROQ_API_KEY"
	EnvLLMEndpoint     = "BERITA_LLM_ENDPOINT"
	EnvLLMModel        = "BERITA_LLM_MODEL"
	EnvAddr            = "BERITA_ADDR"
	EnvPolitenessDelay = "BERITA_POLITENESS_DELAY"
	EnvLogLevel        = "BERITA_LOG_LEVEL"
)

// Path returns the config file location: $BERITA_CONFIG when set,
// otherwise ~/.berita/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".berita", "config.yaml"), nil
}

// Load returns the defaults overlaid with the config file, if present, and
// then with environment variables.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile returns the defaults overlaid with the YAML file at path. A
// missing file is not an error. Returns error if the file exists but cannot
// be parsed.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides file settings with environment variables.
func (c *Config) applyEnv() error {
	if key := os.Getenv(EnvLLMAPIKey); key != "" {
		c.LLM.APIKey = key
	} else if key := os.Getenv(EnvGroqAPIKey); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	c.LLM.Endpoint = getEnv(EnvLLMEndpoint, c.LLM.Endpoint)
	c.LLM.Model = getEnv(EnvLLMModel, c.LLM.Model)
	c.Web.Addr = getEnv(EnvAddr, c.Web.Addr)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)

	if raw := os.Getenv(EnvPolitenessDelay); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPolitenessDelay, err)
		}
		c.Scraper.PolitenessDelay = d
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
