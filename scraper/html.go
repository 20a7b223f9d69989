package scraper

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag, leaving a space where a block tag was so
// adjacent paragraphs do not run together.
var stripPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// text returns the cleaned text of the first element in sel.
func text(sel *goquery.Selection) string {
	return cleanText(sel.First().Text())
}

// stripMarkup converts an HTML fragment to plain text.
func stripMarkup(fragment string) string {
	return cleanText(html.UnescapeString(stripPolicy.Sanitize(fragment)))
}

// resolve makes href absolute against base. Only http and https links are
// accepted; anything else yields "".
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// absHref resolves the href of the first element in sel.
func absHref(base *url.URL, sel *goquery.Selection) string {
	href, ok := sel.First().Attr("href")
	if !ok {
		return ""
	}
	return resolve(base, href)
}

// skipFunc reports whether a body paragraph is boilerplate.
type skipFunc func(p *goquery.Selection) bool

// paragraphs joins the cleaned text of every non-empty paragraph in sel,
// dropping those skip rejects.
func paragraphs(sel *goquery.Selection, skip skipFunc) string {
	parts := []string{}
	sel.Each(func(_ int, p *goquery.Selection) {
		if skip != nil && skip(p) {
			return
		}
		if t := cleanText(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// containsFold returns a skipFunc matching paragraphs whose text contains
// any of the markers, ignoring case.
func containsFold(markers ...string) skipFunc {
	return func(p *goquery.Selection) bool {
		t := strings.ToLower(p.Text())
		for _, m := range markers {
			if strings.Contains(t, strings.ToLower(m)) {
				return true
			}
		}
		return false
	}
}

// startsFold returns a skipFunc matching paragraphs that begin with prefix,
// ignoring case.
func startsFold(prefix string) skipFunc {
	prefix = strings.ToLower(prefix)
	return func(p *goquery.Selection) bool {
		return strings.HasPrefix(strings.ToLower(cleanText(p.Text())), prefix)
	}
}

// hasChild returns a skipFunc matching paragraphs containing selector.
func hasChild(selector string) skipFunc {
	return func(p *goquery.Selection) bool {
		return p.Find(selector).Length() > 0
	}
}

// inside returns a skipFunc matching paragraphs nested in selector.
func inside(selector string) skipFunc {
	return func(p *goquery.Selection) bool {
		return p.ParentsFiltered(selector).Length() > 0
	}
}

// anyOf combines skip functions.
func anyOf(fns ...skipFunc) skipFunc {
	return func(p *goquery.Selection) bool {
		for _, fn := range fns {
			if fn(p) {
				return true
			}
		}
		return false
	}
}
