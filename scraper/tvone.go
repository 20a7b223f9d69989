package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type tvOne struct {
	base *url.URL
}

// NewTVOne returns the adapter for tvonenews.com.
func NewTVOne(opts Options) Adapter {
	return newHTMLSource(article.SiteTVOne, opts, &tvOne{
		base: opts.origin("https://www.tvonenews.com"),
	})
}

func (s *tvOne) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/cari", url.Values{
		"q":    {keyword},
		"page": {strconv.Itoa(page)},
	})
}

func (s *tvOne) items(doc *goquery.Document) *goquery.Selection {
	container := doc.Find("div#load-content").First()
	if container.Length() == 0 {
		container = doc.Find("div.article-list-container").First()
	}
	return container.Find("div.article-list-row")
}

func (s *tvOne) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("div.article-list-info a.ali-title[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SiteTVOne,
		Tanggal: dates.Slash(text(item.Find("div.article-list-info ul.ali-misc li.ali-date span"))),
		Title:   text(anchor),
		Link:    link,
	}

	if doc := f.document(ctx, fullPage(link)); doc != nil {
		art.Content = paragraphs(
			doc.Find("div.detail-content").First().Find("p"),
			containsFold("advertisement"),
		)
	}
	return art, true
}

// fullPage asks for the single-page rendering of a paginated article.
func fullPage(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	q.Set("page", "all")
	u.RawQuery = q.Encode()
	return u.String()
}
