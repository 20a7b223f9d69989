package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type police struct {
	base *url.URL
}

// NewPolice returns the adapter for indonesianpolicenews.id.
func NewPolice(opts Options) Adapter {
	return newHTMLSource(article.SitePolice, opts, &police{
		base: opts.origin("https://indonesianpolicenews.id"),
	})
}

func (s *police) listingURL(keyword string, page int) string {
	return wordpressSearch(s.base, keyword, page, nil)
}

func (s *police) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#recent-content.content-loop div.post.type-post")
}

func (s *police) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("h2.entry-title a[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SitePolice,
		Tanggal: dates.Indonesian(text(item.Find("span.entry-date"))),
		Title:   text(anchor),
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(
			doc.Find("div.entry-content").First().Find("p"),
			anyOf(startsFold("read more"), containsFold("advertisement")),
		)
	}
	return art, true
}

// wordpressSearch builds the WordPress theme search URL: "/?s=" for the
// first page and "/page/N/?s=" after it.
func wordpressSearch(base *url.URL, keyword string, page int, extra url.Values) string {
	q := url.Values{"s": {keyword}}
	for k, v := range extra {
		q[k] = v
	}
	path := "/"
	if page > 1 {
		path = "/page/" + strconv.Itoa(page) + "/"
	}
	return withQuery(base, path, q)
}
