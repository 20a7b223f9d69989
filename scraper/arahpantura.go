package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

// arahPanturaBody selects body paragraphs outside the related-posts block
// and image captions.
const arahPanturaBody = `//div[contains(concat(' ', normalize-space(@class), ' '), ' entry-inner ')]` +
	`//p[not(ancestor::div[contains(concat(' ', normalize-space(@class), ' '), ' crp_related ')` +
	` or contains(concat(' ', normalize-space(@class), ' '), ' wp-caption ')])]`

type arahPantura struct {
	base *url.URL
}

// NewArahPantura returns the adapter for arahpantura.id.
func NewArahPantura(opts Options) Adapter {
	return newHTMLSource(article.SiteArahPantura, opts, &arahPantura{
		base: opts.origin("https://arahpantura.id"),
	})
}

func (s *arahPantura) listingURL(keyword string, page int) string {
	return wordpressSearch(s.base, keyword, page, nil)
}

func (s *arahPantura) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find(`article[id^="post-"]`)
}

func (s *arahPantura) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("h2.post-title.entry-title a[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:  article.SiteArahPantura,
		Title: text(anchor),
		Link:  link,
	}

	doc := f.document(ctx, link)
	if doc == nil {
		return art, true
	}
	if iso, ok := doc.Find("time.published[datetime]").First().Attr("datetime"); ok {
		art.Tanggal = dates.ISO(iso)
	}
	art.Content = s.body(f, doc)
	return art, true
}

func (s *arahPantura) body(f *fetcher, doc *goquery.Document) string {
	if len(doc.Nodes) == 0 {
		return ""
	}
	nodes, err := htmlquery.QueryAll(doc.Nodes[0], arahPanturaBody)
	if err != nil {
		f.logger.Warn("invalid xpath", "expr", arahPanturaBody, "error", err)
		return ""
	}
	parts := []string{}
	for _, n := range nodes {
		if t := cleanText(htmlquery.InnerText(n)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
