package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type detik struct {
	base *url.URL
}

// NewDetik returns the adapter for detik.com search.
func NewDetik(opts Options) Adapter {
	return newHTMLSource(article.SiteDetik, opts, &detik{
		base: opts.origin("https://www.detik.com"),
	})
}

func (s *detik) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/search/searchnews", url.Values{
		"query":  {keyword},
		"sortby": {"time"},
		"page":   {strconv.Itoa(page)},
	})
}

func (s *detik) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("article.list-content__item")
}

func (s *detik) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	link := absHref(s.base, item.Find("a[href]"))
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:  article.SiteDetik,
		Title: text(item.Find("h3.media__title")),
		Link:  link,
	}
	// The listing carries the publish time in the title attribute of the
	// d-time span.
	if raw, ok := item.Find("span[d-time]").First().Attr("title"); ok {
		art.Tanggal = dates.Detik(raw)
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(doc.Find("div.detail__body-text.itp_bodycontent p"), nil)
	}
	return art, true
}
