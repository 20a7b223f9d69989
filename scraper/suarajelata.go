package scraper

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/dates"
)

type suaraJelata struct {
	base *url.URL
}

// NewSuaraJelata returns the adapter for suarajelata.com.
func NewSuaraJelata(opts Options) Adapter {
	return newHTMLSource(article.SiteSuaraJelata, opts, &suaraJelata{
		base: opts.origin("https://suarajelata.com"),
	})
}

func (s *suaraJelata) listingURL(keyword string, page int) string {
	return withQuery(s.base, "/", url.Values{
		"s":           {keyword},
		"post_type[]": {"post"},
		"paged":       {strconv.Itoa(page)},
	})
}

func (s *suaraJelata) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#infinite-container article.post.type-post.hentry")
}

func (s *suaraJelata) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	anchor := item.Find("h2.entry-title a[href]")
	link := absHref(s.base, anchor)
	if link == "" {
		return article.Article{}, false
	}

	art := article.Article{
		Site:    article.SiteSuaraJelata,
		Tanggal: publishedDate(item, text),
		Title:   text(anchor),
		Link:    link,
	}

	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(
			doc.Find("div.entry-content.entry-content-single.clearfix").First().Find("p"),
			startsFold("scroll untuk lanjut"),
		)
	}
	return art, true
}

// publishedDate reads the machine-readable datetime attribute of the
// theme's published time tag, falling back to fallback over the tag when
// the attribute is missing or unparsable.
func publishedDate(item *goquery.Selection, fallback func(*goquery.Selection) string) string {
	tag := item.Find("time.entry-date.published").First()
	if iso, ok := tag.Attr("datetime"); ok {
		if d := dates.ISO(iso); d != iso {
			return d
		}
	}
	return fallback(tag)
}
