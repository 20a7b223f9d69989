package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pevans/berita/article"
	"github.com/pevans/berita/config"
	"github.com/pevans/berita/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: a config whose every source points at server, with no
// politeness delay or retries
func testConfig(server *httptest.Server) *config.Config {
	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.Session.Retries = 0
	cfg.Session.Timeout = 2 * time.Second
	cfg.Session.Backoff = time.Millisecond
	cfg.Scraper.PolitenessDelay = 0
	cfg.Scraper.WPRestDomains = []string{server.URL}
	cfg.Scraper.RSSDomains = nil
	cfg.Scraper.Origins = map[string]string{}
	for _, site := range []string{
		article.SiteDetik, article.SiteKompas, article.SiteBeritaSatu,
		article.SitePanturaPost, article.SiteINews, article.SiteAntara,
		article.SiteTVOne, article.SitePolice, article.SiteSuaraJelata,
		article.SiteEmsatuNews, article.SiteArahPantura,
	} {
		cfg.Scraper.Origins[site] = server.URL
	}
	return cfg
}

// newsServer answers the WordPress REST search and 404s everything else.
func newsServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{{
			"date":    "2025-07-03T10:00:00",
			"link":    "https://example.test/banjir/",
			"title":   map[string]string{"rendered": "Banjir Rob"},
			"content": map[string]string{"rendered": "<p>Air laut naik.</p>"},
		}})
	}))
	t.Cleanup(server.Close)
	return server
}

// TestRunScrape_WritesRawCSV verifies broken sources are skipped and the rest
// are written in the CLI column order
func TestRunScrape_WritesRawCSV(t *testing.T) {
	server := newsServer(t)
	output := filepath.Join(t.TempDir(), "out.csv")
	var stdout, stderr bytes.Buffer

	err := runScrape(context.Background(), testConfig(server), &scrapeOptions{
		keyword:     "banjir",
		maxArticles: 20,
		output:      output,
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "Saved 1 articles to "+output+"\n", stdout.String())

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"site", "tanggal", "title", "content", "link"}, records[0])
	assert.Equal(t, "03/07/2025", records[1][1])
	assert.Equal(t, "Air laut naik.", records[1][3])
}

// TestRunScrape_DefaultOutputAndSQLite verifies the keyword-derived file name
// and the optional SQLite copy
func TestRunScrape_DefaultOutputAndSQLite(t *testing.T) {
	server := newsServer(t)
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "berita.db")
	var stdout, stderr bytes.Buffer

	err := runScrape(context.Background(), testConfig(server), &scrapeOptions{
		keyword:     "banjir",
		maxArticles: 5,
		sqlitePath:  dbPath,
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "Saved 1 articles to scraped_banjir.csv\n", stdout.String())
	assert.FileExists(t, filepath.Join(dir, "scraped_banjir.csv"))

	var exported bytes.Buffer
	require.NoError(t, runExport(&exportOptions{sqlitePath: dbPath, keyword: "banjir"}, &exported))
	records, err := csv.NewReader(&exported).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"site", "tanggal", "title", "content", "link"}, records[0])
	assert.Equal(t, "Banjir Rob", records[1][2])
}

// TestExportCmd_ReadsSavedRuns verifies the export subcommand writes stored
// articles to a file
func TestExportCmd_ReadsSavedRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "berita.db")
	require.NoError(t, export.WriteSQLite(dbPath, "banjir", []article.Article{
		{Site: "detik", Tanggal: "01/02/2024", Title: "Satu", Content: "isi", Link: "https://detik.test/1"},
	}))
	require.NoError(t, export.WriteSQLite(dbPath, "gempa", []article.Article{
		{Site: "kompas", Title: "Lain", Link: "https://kompas.test/2"},
	}))
	output := filepath.Join(dir, "banjir.csv")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--sqlite", dbPath, "--keyword", "banjir", "--output", output})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Exported 1 articles to "+output+"\n", stdout.String())
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "site,tanggal,title,content,link\ndetik,01/02/2024,Satu,isi,https://detik.test/1\n", string(data))
}

// TestExportCmd_MissingDatabase verifies a wrong path is reported instead of
// creating an empty database
func TestExportCmd_MissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "absent.db")

	err := runExport(&exportOptions{sqlitePath: dbPath, keyword: "banjir"}, &bytes.Buffer{})

	assert.Error(t, err)
	assert.NoFileExists(t, dbPath)
}

// TestRunScrape_NothingFound verifies an empty run still writes a header and
// succeeds
func TestRunScrape_NothingFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	output := filepath.Join(t.TempDir(), "out.csv")
	var stdout, stderr bytes.Buffer

	err := runScrape(context.Background(), testConfig(server), &scrapeOptions{
		keyword:     "tidakada",
		maxArticles: 20,
		output:      output,
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "Saved 0 articles to "+output+"\n", stdout.String())
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "site,tanggal,title,content,link\n", string(data))
}

// TestRootCmd_RequiresKeyword verifies --keyword is mandatory
func TestRootCmd_RequiresKeyword(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--max-articles", "3"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword")
}
