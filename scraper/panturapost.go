package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type panturaPost struct {
	base *url.URL
}

// NewPanturaPost returns the adapter for panturapost.com.
func NewPanturaPost(opts Options) Adapter {
	return newHTMLSource(article.SitePanturaPost, opts, &panturaPost{
		base: opts.origin("https://www.panturapost.com"),
	})
}

func (s *panturaPost) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/search", url.Values{
		"q":    {keyword},
		"sort": {"latest"},
		"page": {strconv.Itoa(page)},
	})
}

func (s *panturaPost) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.latest__wrap div.latest__item")
}

func (s *panturaPost) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	right := item.Find("div.latest__right")
	anchor := right.Find("a.latest__link[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SitePanturaPost,
		Tanggal: dates.Pantura(text(right.Find("date.latest__date"))),
		Title:   text(anchor),
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(
			doc.Find("article.read__content.clearfix").First().Find("p"),
			hasChild("strong.read__others"),
		)
	}
	return art, true
}
