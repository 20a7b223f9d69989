package scraper

import (
	"context"
	"html"
	"log/slog"
	"net/url"

	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
	"github.com/pevans/berita/session"
)

// wpPost is the subset of a WordPress REST API post the adapter reads.
type wpPost struct {
	Date  string `json:"date"`
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
}

// WPRest searches WordPress sites through /wp-json/wp/v2/posts. Each domain
// is queried once and contributes at most max posts; the site identifier of
// every article is the domain's host name.
type WPRest struct {
	domains []string
	logger  *slog.Logger
}

// NewWPRest returns the adapter for the given domains, which may be bare
// host names or full origins.
func NewWPRest(domains []string, opts Options) *WPRest {
	return &WPRest{
		domains: domains,
		logger:  opts.logger("wp-rest"),
	}
}

func (w *WPRest) Name() string { return "wp-rest" }

func (w *WPRest) Extract(ctx context.Context, sess *session.Session, keyword string, max int, emit func(article.Article)) error {
	if max <= 0 {
		return nil
	}
	for _, domain := range w.domains {
		if err := ctx.Err(); err != nil {
			return err
		}
		origin, err := originOf(domain)
		if err != nil {
			w.logger.Warn("skipping domain", "domain", domain, "error", err)
			continue
		}

		apiURL := withQuery(origin, "/wp-json/wp/v2/posts", url.Values{"search": {keyword}})
		var posts []wpPost
		if err := sess.JSON(ctx, apiURL, &posts); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("domain query failed", "domain", origin.Host, "error", err)
			continue
		}

		emitted := 0
		for _, post := range posts {
			if emitted >= max {
				break
			}
			link := resolve(origin, post.Link)
			if link == "" {
				w.logger.Debug("skipping post without link", "domain", origin.Host, "title", truncate(post.Title.Rendered, 60))
				continue
			}
			emit(article.Article{
				Site:    origin.Host,
				Tanggal: dates.ISO(post.Date),
				Title:   cleanText(html.UnescapeString(post.Title.Rendered)),
				Content: stripMarkup(post.Content.Rendered),
				Link:    link,
			})
			emitted++
		}
		w.logger.Info("domain done", "domain", origin.Host, "posts", emitted)
	}
	return nil
}
