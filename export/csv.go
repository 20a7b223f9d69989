// Package export writes aggregated articles to CSV and SQLite.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pevans/berita/article"
)

// EnrichedHeader is the column order of the web download.
var EnrichedHeader = []string{"site", "tanggal", "title", "summary", "kategori", "link"}

// RawHeader is the column order of the CLI export, which is not enriched.
var RawHeader = []string{"site", "tanggal", "title", "content", "link"}

// WriteCSV writes enriched articles, one row per article in input order.
func WriteCSV(w io.Writer, articles []article.Article) error {
	return writeCSV(w, EnrichedHeader, articles, func(a article.Article) []string {
		return []string{a.Site, a.Tanggal, a.Title, a.Summary, a.Kategori, a.Link}
	})
}

// WriteRawCSV writes articles with their full content and no enrichment
// columns.
func WriteRawCSV(w io.Writer, articles []article.Article) error {
	return writeCSV(w, RawHeader, articles, func(a article.Article) []string {
		return []string{a.Site, a.Tanggal, a.Title, a.Content, a.Link}
	})
}

func writeCSV(w io.Writer, header []string, articles []article.Article, row func(article.Article) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range articles {
		if err := cw.Write(row(a)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
