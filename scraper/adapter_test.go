package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/berita/article"
	"github.com/pevans/berita/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Test helper: a session that does not retry and waits very little
func testSession() *session.Session {
	return session.New(session.Options{
		Timeout: 2 * time.Second,
		Retries: 0,
		Backoff: time.Millisecond,
		Logger:  discard,
	})
}

// Test helper: options pointing an adapter at a test server
func testOptions(origin string) Options {
	return Options{Origin: origin, Logger: discard}
}

// Test helper: serve an HTML page
func serveHTML(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, body)
	}
}

// listingSite is a minimal site served by listingServer: every page has
// perPage entries linking to /a/<page>-<n>, and pages after lastPage are
// empty.
type listingSite struct {
	base *url.URL
}

func (s *listingSite) listingURL(keyword string, page int) string {
	return s.base.String() + "/list?q=" + keyword + "&page=" + strconv.Itoa(page)
}

func (s *listingSite) items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("li.item")
}

func (s *listingSite) extract(ctx context.Context, f *fetcher, item *goquery.Selection) (article.Article, bool) {
	link := absHref(s.base, item.Find("a[href]"))
	if link == "" {
		return article.Article{}, false
	}
	art := article.Article{Site: "test", Title: text(item), Link: link}
	if doc := f.document(ctx, link); doc != nil {
		art.Content = paragraphs(doc.Find("p"), nil)
	}
	return art, true
}

type listingServer struct {
	*httptest.Server
	listings atomic.Int32
	details  atomic.Int32
}

func newListingServer(t *testing.T, perPage, lastPage int, failDetail string) *listingServer {
	ls := &listingServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		ls.listings.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var b strings.Builder
		b.WriteString("<ul>")
		if page <= lastPage {
			for n := 1; n <= perPage; n++ {
				fmt.Fprintf(&b, `<li class="item"><a href="/a/%d-%d">Judul %d-%d</a></li>`, page, n, page, n)
			}
		}
		b.WriteString("</ul>")
		serveHTML(b.String())(w, r)
	})
	mux.HandleFunc("/a/", func(w http.ResponseWriter, r *http.Request) {
		ls.details.Add(1)
		if r.URL.Path == failDetail {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		serveHTML("<p>Isi " + strings.TrimPrefix(r.URL.Path, "/a/") + "</p>")(w, r)
	})
	ls.Server = httptest.NewServer(mux)
	t.Cleanup(ls.Close)
	return ls
}

func newListingAdapter(origin string) Adapter {
	opts := testOptions(origin)
	return newHTMLSource("test", opts, &listingSite{base: opts.origin(origin)})
}

// TestExtract_RespectsBudgetAcrossPages verifies at most max articles are
// emitted and pagination continues until the budget is met
func TestExtract_RespectsBudgetAcrossPages(t *testing.T) {
	srv := newListingServer(t, 3, 10, "")

	got := Collect(context.Background(), newListingAdapter(srv.URL), testSession(), "banjir", 7)

	require.Len(t, got, 7)
	assert.Equal(t, "Judul 1-1", got[0].Title)
	assert.Equal(t, "Judul 3-1", got[6].Title)
	assert.Equal(t, int32(3), srv.listings.Load())
	assert.Equal(t, int32(7), srv.details.Load())
}

// TestExtract_ZeroBudgetMakesNoRequests verifies max 0 returns immediately
func TestExtract_ZeroBudgetMakesNoRequests(t *testing.T) {
	srv := newListingServer(t, 3, 10, "")

	got := Collect(context.Background(), newListingAdapter(srv.URL), testSession(), "banjir", 0)

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, int32(0), srv.listings.Load())
}

// TestExtract_StopsWhenSourceRunsDry verifies an empty listing page ends
// extraction below the budget
func TestExtract_StopsWhenSourceRunsDry(t *testing.T) {
	srv := newListingServer(t, 2, 2, "")

	got := Collect(context.Background(), newListingAdapter(srv.URL), testSession(), "banjir", 50)

	assert.Len(t, got, 4)
	assert.Equal(t, int32(3), srv.listings.Load())
}

// TestExtract_FirstPageFailureYieldsNothing verifies a failed listing fetch
// ends extraction without an error
func TestExtract_FirstPageFailureYieldsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusForbidden)
	}))
	defer srv.Close()

	a := newListingAdapter(srv.URL)
	var emitted int
	err := a.Extract(context.Background(), testSession(), "banjir", 5, func(article.Article) { emitted++ })

	assert.NoError(t, err)
	assert.Equal(t, 0, emitted)
}

// TestExtract_MissingLaterPageEndsQuietly verifies a 404 after the first
// page is treated as the end of the results
func TestExtract_MissingLaterPageEndsQuietly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			http.NotFound(w, r)
			return
		}
		serveHTML(`<ul><li class="item"><a href="/a/1">Satu</a></li></ul>`)(w, r)
	})
	mux.HandleFunc("/a/", serveHTML("<p>Isi</p>"))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var logs strings.Builder
	opts := Options{Origin: srv.URL, Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	a := newHTMLSource("test", opts, &listingSite{base: opts.origin(srv.URL)})

	got := Collect(context.Background(), a, testSession(), "banjir", 5)

	require.Len(t, got, 1)
	assert.Contains(t, logs.String(), "no more listing pages")
	assert.NotContains(t, logs.String(), "level=WARN")
}

// TestExtract_DetailFailureKeepsItem verifies a failed detail fetch leaves
// content empty and extraction continues
func TestExtract_DetailFailureKeepsItem(t *testing.T) {
	srv := newListingServer(t, 3, 1, "/a/1-2")

	got := Collect(context.Background(), newListingAdapter(srv.URL), testSession(), "banjir", 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Isi 1-1", got[0].Content)
	assert.Equal(t, "", got[1].Content)
	assert.Equal(t, srv.URL+"/a/1-2", got[1].Link)
	assert.Equal(t, "Isi 1-3", got[2].Content)
}

// TestExtract_EmitsProgressively verifies each article is emitted before the
// next detail page is fetched
func TestExtract_EmitsProgressively(t *testing.T) {
	srv := newListingServer(t, 3, 1, "")

	var detailsAtEmit []int32
	err := newListingAdapter(srv.URL).Extract(context.Background(), testSession(), "banjir", 3, func(article.Article) {
		detailsAtEmit = append(detailsAtEmit, srv.details.Load())
	})

	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, detailsAtEmit)
}

// TestExtract_StopsOnPageWithoutLinks verifies entries with no usable link
// do not cause endless paging
func TestExtract_StopsOnPageWithoutLinks(t *testing.T) {
	var listings atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listings.Add(1)
		serveHTML(`<ul><li class="item">no link</li><li class="item"><a href="javascript:void(0)">x</a></li></ul>`)(w, r)
	}))
	defer srv.Close()

	got := Collect(context.Background(), newListingAdapter(srv.URL), testSession(), "banjir", 5)

	assert.Empty(t, got)
	assert.Equal(t, int32(1), listings.Load())
}

// TestExtract_ReturnsContextError verifies cancellation is reported
func TestExtract_ReturnsContextError(t *testing.T) {
	srv := newListingServer(t, 3, 10, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newListingAdapter(srv.URL).Extract(ctx, testSession(), "banjir", 5, func(article.Article) {})

	assert.ErrorIs(t, err, context.Canceled)
}

// TestFetcher_PacesRequests verifies requests after the first wait for the
// politeness delay
func TestFetcher_PacesRequests(t *testing.T) {
	srv := httptest.NewServer(serveHTML("<p>ok</p>"))
	defer srv.Close()

	f := newFetcher(testSession(), 40*time.Millisecond, discard)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NotNil(t, f.document(context.Background(), srv.URL))
	}

	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

// TestDefault_FixedOrder verifies the registry order of adapters
func TestDefault_FixedOrder(t *testing.T) {
	names := []string{}
	for _, a := range Default(DefaultConfig()) {
		names = append(names, a.Name())
	}

	assert.Equal(t, []string{
		"detik", "kompas", "beritasatu", "panturapost", "inews", "antara",
		"tvone", "police", "suarajelata", "emsatunews", "arahpantura",
		"wp-rest", "rss",
	}, names)
}
