package scraper

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// DefaultDelay is the politeness pause between listing pages of one source.
const DefaultDelay = 1 * time.Second

// DefaultWPRestDomains are the WordPress sites queried through
// /wp-json/wp/v2/posts.
var DefaultWPRestDomains = []string{
	"suarabaru.id",
	"suarajelata.com",
	"portalpantura.com",
	"brebesinfo.com",
	"korantegal.com",
	"brebesnews.co",
	"beritakota.id",
	"tribuntipikor.com",
	"editorindonesia.com",
}

// DefaultRSSDomains are the WordPress sites queried through their RSS2
// search feed.
var DefaultRSSDomains = []string{
	"pwmjateng.com",
	"umj.ac.id",
}

// Options configures a single adapter.
type Options struct {
	// Origin overrides the source's scheme and host, e.g.
	// "https://www.detik.com". Empty means the real site.
	Origin string
	// Delay is the pause between listing pages. Zero disables it.
	Delay  time.Duration
	Logger *slog.Logger
}

func (o Options) logger(source string) *slog.Logger {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("source", source)
}

// origin returns the configured origin or the fallback, parsed.
func (o Options) origin(fallback string) *url.URL {
	raw := o.Origin
	if raw == "" {
		raw = fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// Only reachable with a malformed override; fall back to the site.
		u, _ = url.Parse(fallback)
	}
	return u
}

// Config configures the full set of adapters built by Default.
type Config struct {
	// Delay is the politeness pause for every HTML adapter.
	Delay time.Duration
	// WPRestDomains and RSSDomains accept bare host names or full origins.
	WPRestDomains []string
	RSSDomains    []string
	// Origins overrides the origin of individual HTML adapters, keyed by site
	// identifier.
	Origins map[string]string
	Logger  *slog.Logger
}

// DefaultConfig returns the production source configuration.
func DefaultConfig() Config {
	return Config{
		Delay:         DefaultDelay,
		WPRestDomains: DefaultWPRestDomains,
		RSSDomains:    DefaultRSSDomains,
	}
}

// originOf turns "example.com" into "https://example.com"; full origins are
// kept as given.
func originOf(domain string) (*url.URL, error) {
	domain = strings.TrimSpace(domain)
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	u, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid domain %q: %w", domain, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid domain %q: missing host", domain)
	}
	return u, nil
}
