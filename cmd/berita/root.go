package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pevans/berita/config"
	"github.com/pevans/berita/discovery"
	"github.com/pevans/berita/export"
	"github.com/pevans/berita/scraper"
	"github.com/pevans/berita/session"
	"github.com/spf13/cobra"
)

type scrapeOptions struct {
	keyword     string
	maxArticles int
	output      string
	sqlitePath  string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "berita",
		Short: "Scrape Indonesian news sites for a keyword",
		Long: `berita searches every supported news site for a keyword and saves
the articles it finds (site, date, title, content, link) to a CSV file.`,
		Example: `  berita --keyword banjir
  berita --keyword "harga beras" --max-articles 5 --output beras.csv --sqlite berita.db`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return runScrape(ctx, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "keyword to search for (required)")
	cmd.Flags().IntVarP(&opts.maxArticles, "max-articles", "n", 20, "maximum articles per source")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV file (default scraped_<keyword>.csv)")
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite", "", "also write the articles to this SQLite database")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("keyword")

	cmd.AddCommand(newExportCmd())

	return cmd
}

// runScrape aggregates every source and writes the results. Sources that
// fail contribute nothing; the run itself only fails when output cannot be
// written.
func runScrape(ctx context.Context, cfg *config.Config, opts *scrapeOptions, stdout, stderr io.Writer) error {
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := config.NewLogger(stderr, level)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = fmt.Sprintf("scraped_%s.csv", opts.keyword)
	}

	aggregator := discovery.NewAggregator(
		scraper.Default(cfg.ScraperConfig(logger)),
		func() *session.Session { return session.New(cfg.SessionOptions(logger)) },
		logger,
	)
	articles := aggregator.Aggregate(ctx, opts.keyword, opts.maxArticles)

	f, err := os.Create(output)
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

	if opts.sqlitePath != "" {
		if err := export.WriteSQLite(opts.sqlitePath, opts.keyword, articles); err != nil {
			return err
		}
		logger.Info("articles stored", "db", opts.sqlitePath, "count", len(articles))
	}

	fmt.Fprintf(stdout, "Saved %d articles to %s\n", len(articles), output)
	return nil
}
