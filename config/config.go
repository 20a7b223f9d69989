// Package config loads settings for the berita binaries from
// ~/.berita/config.yaml and the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pevans/berita/enrich"
	"github.com/pevans/berita/scraper"
	"github.com/pevans/berita/session"
)

// SessionConfig configures the shared HTTP session.
type SessionConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
	Backoff   time.Duration `yaml:"backoff"`
}

// ScraperConfig configures the source adapters.
type ScraperConfig struct {
	PolitenessDelay time.Duration     `yaml:"politeness_delay"`
	WPRestDomains   []string          `yaml:"wp_rest_domains"`
	RSSDomains      []string          `yaml:"rss_domains"`
	Origins         map[string]string `yaml:"origins"`
}

// LLMConfig configures the summarization and classification API.
type LLMConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// WebConfig configures the web front end.
type WebConfig struct {
	Addr    string        `yaml:"addr"`
	TaskTTL time.Duration `yaml:"task_ttl"`
}

// Config is the complete configuration.
type Config struct {
	Session  SessionConfig `yaml:"session"`
	Scraper  ScraperConfig `yaml:"scraper"`
	LLM      LLMConfig     `yaml:"llm"`
	Web      WebConfig     `yaml:"web"`
	LogLevel string        `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	sess := session.DefaultOptions()
	return &Config{
		Session: SessionConfig{
			UserAgent: sess.UserAgent,
			Timeout:   sess.Timeout,
			Retries:   sess.Retries,
			Backoff:   sess.Backoff,
		},
		Scraper: ScraperConfig{
			PolitenessDelay: scraper.DefaultDelay,
			WPRestDomains:   append([]string(nil), scraper.DefaultWPRestDomains...),
			RSSDomains:      append([]string(nil), scraper.DefaultRSSDomains...),
		},
		LLM: LLMConfig{
			Endpoint: enrich.DefaultEndpoint,
			Model:    enrich.DefaultModel,
			Timeout:  enrich.DefaultTimeout,
		},
		Web: WebConfig{
			Addr:    ":8080",
			TaskTTL: 24 * time.Hour,
		},
		LogLevel: "info",
	}
}

// SessionOptions converts the session settings.
func (c *Config) SessionOptions(logger *slog.Logger) session.Options {
	return session.Options{
		UserAgent: c.Session.UserAgent,
		Timeout:   c.Session.Timeout,
		Retries:   c.Session.Retries,
		Backoff:   c.Session.Backoff,
		Logger:    logger,
	}
}

// ScraperConfig converts the adapter settings.
func (c *Config) ScraperConfig(logger *slog.Logger) scraper.Config {
	return scraper.Config{
		Delay:         c.Scraper.PolitenessDelay,
		WPRestDomains: c.Scraper.WPRestDomains,
		RSSDomains:    c.Scraper.RSSDomains,
		Origins:       c.Scraper.Origins,
		Logger:        logger,
	}
}

// LLMClientConfig converts the LLM settings.
func (c *Config) LLMClientConfig() enrich.LLMConfig {
	return enrich.LLMConfig{
		Endpoint: c.LLM.Endpoint,
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		Timeout:  c.LLM.Timeout,
	}
}

// NewLogger returns a text logger writing to w at the named level
// (debug, info, warn or error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
