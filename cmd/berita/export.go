package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pevans/berita/article"
	"github.com/pevans/berita/export"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	sqlitePath string
	keyword    string
	output     string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write articles saved with --sqlite back out as CSV",
		Example: `  berita export --sqlite berita.db --keyword banjir
  berita export --sqlite berita.db --keyword banjir --output banjir.csv`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite", "", "SQLite database written by a previous scrape (required)")
	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "keyword the articles were scraped for (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV file (default stdout)")
	_ = cmd.MarkFlagRequired("sqlite")
	_ = cmd.MarkFlagRequired("keyword")

	return cmd
}

// runExport writes every stored article for the keyword, oldest run first,
// in the same columns as a scrape.
func runExport(opts *exportOptions, stdout io.Writer) error {
	if _, err := os.Stat(opts.sqlitePath); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	store, err := export.NewArticleStore(opts.sqlitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.List(opts.keyword)
	if err != nil {
		return err
	}
	articles := make([]article.Article, 0, len(stored))
	for _, sa := range stored {
		articles = append(articles, sa.Article)
	}

	if opts.output == "" {
		return export.WriteRawCSV(stdout, articles)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := export.WriteRawCSV(f, articles); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %d articles to %s\n", len(articles), opts.output)
	return nil
}
