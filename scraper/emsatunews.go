package scraper

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type emsatuNews struct {
	base *url.URL
}

// NewEmsatuNews returns the adapter for emsatunews.co.id.
func NewEmsatuNews(opts Options) Adapter {
	return newHTMLSource(article.SiteEmsatuNews, opts, &emsatuNews{
		base: opts.origin("https://emsatunews.co.id"),
	})
}

func (s *emsatuNews) listingURL(keyword string, page int) string {
	return wordpressSearch(s.base, keyword, page, url.Values{"post_type[]": {"post"}})
}

func (s *emsatuNews) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#infinite-container article.post.type-post.hentry")
}

func (s *emsatuNews) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("div.box-content h2.entry-title a[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site: article.SiteEmsatuNews,
		Tanggal: publishedDate(item, func(tag *goquery.Selection) string {
			return dates.Scan(text(tag))
		}),
		Title: text(anchor),
		Link:  link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(
			doc.Find("div.entry-content.entry-content-single.clearfix.have-stickybanner").First().Find("p"),
			anyOf(inside("div.gmr-banner"), startsFold("scroll untuk lanjut")),
		)
	}
	return art, true
}
