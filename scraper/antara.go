package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type antara struct {
	base *url.URL
}

// NewAntara returns the adapter for the Central Java edition of
// antaranews.com.
func NewAntara(opts Options) Adapter {
	return newHTMLSource(article.SiteAntara, opts, &antara{
		base: opts.origin("https://jateng.antaranews.com"),
	})
}

// listingURL uses the search form URL for the first page; later pages
// are only reachable by path.
func (s *antara) listingURL(keyword string, page int) string {
	if page == 1 {
		return withQuery(s.base, "/search", url.Values{
			"q":         {keyword},
			"startDate": {""},
			"endDate":   {""},
			"submit":    {"Submit"},
		})
	}
	u := *s.base
	u.Path = "/search/" + keyword + "/" + strconv.Itoa(page)
	return u.String()
}

func (s *antara) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("article.simple-post.simple-big.clearfix")
}

func (s *antara) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("header h3 a[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SiteAntara,
		Tanggal: dates.Antara(text(item.Find("header p.simple-share"))),
		Title:   text(anchor),
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(
			doc.Find(`div.post-content.clearfix.font17[itemprop="articleBody"]`).First().Find("p"),
			nil,
		)
	}
	return art, true
}
