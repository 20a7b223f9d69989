package scraper

import (
	"context"
	"html"
	"log/slog"
	"net/url"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
	"github.com/pevans/berita/session"
)

// RSS searches WordPress sites through their RSS2 search feed
// ("/?s=<keyword>&feed=rss2"). Each domain contributes at most max items.
type RSS struct {
	domains []string
	logger  *slog.Logger
}

// NewRSS returns the adapter for the given domains, which may be bare host
// names or full origins.
func NewRSS(domains []string, opts Options) *RSS {
	return &RSS{
		domains: domains,
		logger:  opts.logger("rss"),
	}
}

func (r *RSS) Name() string { return "rss" }

func (r *RSS) Extract(ctx context.Context, sess *session.Session, keyword string, max int, emit func(article.Article)) error {
	if max <= 0 {
		return nil
	}
	parser := gofeed.NewParser()
	for _, domain := range r.domains {
		if err := ctx.Err(); err != nil {
			return err
		}
		origin, err := originOf(domain)
		if err != nil {
			r.logger.Warn("skipping domain", "domain", domain, "error", err)
			continue
		}

		feedURL := withQuery(origin, "/", url.Values{"s": {keyword}, "feed": {"rss2"}})
		r.logger.Info("fetching feed", "url", feedURL)
		resp, err := sess.Get(ctx, feedURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("feed fetch failed", "domain", origin.Host, "error", err)
			continue
		}
		feed, err := parser.ParseString(string(resp.Body))
		if err != nil {
			r.logger.Warn("failed to parse feed", "domain", origin.Host, "error", err)
			continue
		}

		emitted := 0
		for _, item := range feed.Items {
			if emitted >= max {
				break
			}
			link := resolve(origin, item.Link)
			if link == "" {
				r.logger.Debug("skipping item without link", "domain", origin.Host, "title", truncate(item.Title, 60))
				continue
			}
			emit(article.Article{
				Site:    origin.Host,
				Tanggal: feedDate(item),
				Title:   cleanText(html.UnescapeString(item.Title)),
				Content: stripMarkup(item.Description),
				Link:    link,
			})
			emitted++
		}
		r.logger.Info("domain done", "domain", origin.Host, "items", emitted)
	}
	return nil
}

// feedDate normalizes the raw pubDate, keeping its own offset. When the raw
// value is not RFC 1123 but gofeed managed to parse it, the parsed time is
// used; otherwise the raw text is kept.
func feedDate(item *gofeed.Item) string {
	if d := dates.RFC1123(item.Published); d != item.Published || item.Published == "" {
		return d
	}
	if item.PublishedParsed != nil {
		return dates.Format(*item.PublishedParsed)
	}
	return item.Published
}
