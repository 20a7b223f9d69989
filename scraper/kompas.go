package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type kompas struct {
	base *url.URL
}

// NewKompas returns the adapter for kompas.com. Search results live on
// search.kompas.com while articles are spread over several subdomains.
func NewKompas(opts Options) Adapter {
	return newHTMLSource(article.SiteKompas, opts, &kompas{
		base: opts.origin("https://search.kompas.com"),
	})
}

func (s *kompas) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/search", url.Values{
		"q":    {keyword},
		"page": {strconv.Itoa(page)},
	})
}

func (s *kompas) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.articleList.-list div.articleItem")
}

func (s *kompas) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("a.article-link[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	title := text(item.Find("h2.articleTitle"))
	if title == "" {
		title = text(anchor)
	}
	art := article.Article{
		Site:    article.SiteKompas,
		Tanggal: dates.Kompas(text(item.Find("div.articlePost-date"))),
		Title:   title,
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(doc.Find("div.read__content").First().Find("p"), kompasBacaJuga)
	}
	return art, true
}

// kompasBacaJuga matches the bold "Baca juga" cross-links inserted between
// paragraphs.
func kompasBacaJuga(p *goquery.Selection) bool {
	return p.Find("strong").Length() > 0 && p.Find("a.inner-link-baca-juga").Length() > 0
}
