// Package scraper turns search results from Indonesian news sites into
// canonical articles. Each site is an Adapter; the HTML sites share one
// pagination loop and differ only in URLs, selectors and date dialect.
package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/session"
	"golang.org/x/time/rate"
)

// Adapter extracts articles matching a keyword from one source.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string
	// Extract emits at most max articles, each as soon as it is complete.
	// Listing failures and exhaustion end extraction without an error; only
	// context cancellation is returned.
	Extract(ctx context.Context, sess *session.Session, keyword string, max int, emit func(article.Article)) error
}

// Collect runs an adapter and returns everything it emitted.
func Collect(ctx context.Context, a Adapter, sess *session.Session, keyword string, max int) []article.Article {
	articles := []article.Article{}
	_ = a.Extract(ctx, sess, keyword, max, func(art article.Article) {
		articles = append(articles, art)
	})
	return articles
}

// Default returns every adapter in the fixed aggregation order.
func Default(cfg Config) []Adapter {
	opts := func(site string) Options {
		return Options{Origin: cfg.Origins[site], Delay: cfg.Delay, Logger: cfg.Logger}
	}
	return []Adapter{
		NewDetik(opts(article.SiteDetik)),
		NewKompas(opts(article.SiteKompas)),
		NewBeritaSatu(opts(article.SiteBeritaSatu)),
		NewPanturaPost(opts(article.SitePanturaPost)),
		NewINews(opts(article.SiteINews)),
		NewAntara(opts(article.SiteAntara)),
		NewTVOne(opts(article.SiteTVOne)),
		NewPolice(opts(article.SitePolice)),
		NewSuaraJelata(opts(article.SiteSuaraJelata)),
		NewEmsatuNews(opts(article.SiteEmsatuNews)),
		NewArahPantura(opts(article.SiteArahPantura)),
		NewWPRest(cfg.WPRestDomains, Options{Logger: cfg.Logger}),
		NewRSS(cfg.RSSDomains, Options{Logger: cfg.Logger}),
	}
}

// site is implemented by each HTML source.
type site interface {
	// listingURL returns the search page for keyword; pages start at 1.
	listingURL(keyword string, page int) string
	// items locates the repeated result entries on a listing page.
	items(doc *goquery.Document) *goquery.Selection
	// extract builds an article from one listing entry, fetching the detail
	// page as needed. ok is false when the entry has no usable link.
	extract(ctx context.Context, f *fetcher, item *goquery.Selection) (art article.Article, ok bool)
}

// htmlSource drives a site through listing pages until max articles have
// been emitted or the source runs dry.
type htmlSource struct {
	name   string
	site   site
	delay  time.Duration
	logger *slog.Logger
}

func newHTMLSource(name string, opts Options, s site) *htmlSource {
	return &htmlSource{
		name:   name,
		site:   s,
		delay:  opts.Delay,
		logger: opts.logger(name),
	}
}

func (h *htmlSource) Name() string { return h.name }

func (h *htmlSource) Extract(ctx context.Context, sess *session.Session, keyword string, max int, emit func(article.Article)) error {
	f := newFetcher(sess, h.delay, h.logger)
	scraped := 0

	for page := 1; scraped < max; page++ {
		listingURL := h.site.listingURL(keyword, page)
		h.logger.Info("fetching listing", "page", page, "url", listingURL)
		doc, err := f.fetch(ctx, listingURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if page > 1 && session.IsStatus(err, http.StatusNotFound) {
				h.logger.Info("no more listing pages", "page", page, "scraped", scraped)
				return nil
			}
			h.logger.Warn("listing fetch failed, stopping", "page", page, "error", err)
			return nil
		}

		items := h.site.items(doc)
		if items.Length() == 0 {
			h.logger.Info("no more articles", "page", page, "scraped", scraped)
			return nil
		}

		before := scraped
		items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
			if scraped >= max || ctx.Err() != nil {
				return false
			}
			art, ok := h.site.extract(ctx, f, item)
			if !ok {
				return true
			}
			emit(art)
			scraped++
			h.logger.Info("article extracted", "n", scraped, "title", truncate(art.Title, 60))
			return true
		})
		if err := ctx.Err(); err != nil {
			return err
		}
		if scraped == before {
			// Entries were present but none had a usable link; later pages
			// will not be different.
			h.logger.Warn("listing page yielded no articles, stopping", "page", page)
			return nil
		}
	}
	return nil
}

// fetcher paces every request an adapter makes, listing and detail alike.
type fetcher struct {
	sess   *session.Session
	pace   *rate.Limiter
	logger *slog.Logger
}

// newFetcher returns a fetcher whose first request goes out immediately and
// whose following requests are spaced by delay. A non-positive delay
// disables pacing.
func newFetcher(sess *session.Session, delay time.Duration, logger *slog.Logger) *fetcher {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &fetcher{
		sess:   sess,
		pace:   rate.NewLimiter(limit, 1),
		logger: logger,
	}
}

func (f *fetcher) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := f.pace.Wait(ctx); err != nil {
		return nil, err
	}
	return f.sess.Document(ctx, rawURL)
}

// document fetches a detail page. A nil return means the page could not be
// fetched or parsed; the caller keeps the article with empty content.
func (f *fetcher) document(ctx context.Context, rawURL string) *goquery.Document {
	doc, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.logger.Warn("detail fetch failed", "url", rawURL, "error", err)
		return nil
	}
	return doc
}

// withQuery returns base with path and an encoded query.
func withQuery(base *url.URL, path string, query url.Values) string {
	u := *base
	u.Path = path
	u.RawQuery = query.Encode()
	return u.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
