package scraper

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type iNews struct {
	base *url.URL
}

// NewINews returns the adapter for inews.id. Long iNews articles are split
// over several pages; every page listed in the article's pagination is read.
func NewINews(opts Options) Adapter {
	return newHTMLSource(article.SiteINews, opts, &iNews{
		base: opts.origin("https://www.inews.id"),
	})
}

func (s *iNews) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/find", url.Values{
		"q":    {keyword},
		"page": {strconv.Itoa(page)},
	})
}

func (s *iNews) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("article.cardArticle")
}

func (s *iNews) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	link := absHref(s.base, item.Find(".cardBody a[href]"))
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:  article.SiteINews,
		Title: text(item.Find("h3.cardTitle")),
		Link:  link,
	}

	// The listing has no date; it comes from the detail page.
	doc := f.document(ctx, link)
	if doc == nil {
		return art, true
	}
	art.Tanggal = dates.INews(text(doc.Find(".timeAndShare .createdAt")))

	parts := []string{}
	if body := inewsBody(doc); body != "" {
		parts = append(parts, body)
	}
	doc.Find("ul.paginationContent a[href]").Each(func(_ int, a *goquery.Selection) {
		subURL := absHref(doc.Url, a)
		if subURL == "" || subURL == link {
			return
		}
		sub := f.document(ctx, subURL)
		if sub == nil {
			return
		}
		if body := inewsBody(sub); body != "" {
			parts = append(parts, body)
		}
	})
	art.Content = strings.Join(parts, " ")
	return art, true
}

// inewsBody joins the direct paragraph children of the article body,
// dropping the trailing editor credit.
func inewsBody(doc *goquery.Document) string {
	return paragraphs(
		doc.Find("section.mainBody article.bodyArticleWrapper").First().ChildrenFiltered("p"),
		func(p *goquery.Selection) bool {
			return strings.HasPrefix(cleanText(p.Text()), "Editor:")
		},
	)
}
