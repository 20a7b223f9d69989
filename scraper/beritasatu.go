package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type beritaSatu struct {
	base *url.URL
}

// NewBeritaSatu returns the adapter for beritasatu.com.
func NewBeritaSatu(opts Options) Adapter {
	return newHTMLSource(article.SiteBeritaSatu, opts, &beritaSatu{
		base: opts.origin("https://www.beritasatu.com"),
	})
}

func (s *beritaSatu) listingURL(keyword string, page int) string {
	u := *s.base
	u.Path = "/search/" + keyword + "/" + strconv.Itoa(page)
	return u.String()
}

func (s *beritaSatu) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.row.mt-4.position-relative")
}

func (s *beritaSatu) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	link := absHref(s.base, item.Find("a.stretched-link[href]"))
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SiteBeritaSatu,
		Tanggal: dates.BeritaSatu(text(item.Find("span.b1-date.text-muted small"))),
		Title:   text(item.Find("h2.h5.fw-bold")),
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		body := doc.Find("div.col.b1-article.body-content").First()
		if body.Length() == 0 {
			body = doc.Find("article.main").First()
		}
		art.Content = paragraphs(body.Find("p"), nil)
	}
	return art, true
}
