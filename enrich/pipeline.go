package enrich

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pevans/berita/article"
)

// Summarizer produces a short abstract of article text. It never fails;
// problems are reported through sentinel summaries.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Classifier assigns a category code to a summary. It never fails;
// problems are reported through a sentinel code.
type Classifier interface {
	Classify(ctx context.Context, text string) string
}

// Pipeline fills in Summary and Kategori for scraped articles.
type Pipeline struct {
	summarizer Summarizer
	classifier Classifier
	logger     *slog.Logger
}

// NewPipeline creates a pipeline that summarizes then classifies.
func NewPipeline(summarizer Summarizer, classifier Classifier, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		summarizer: summarizer,
		classifier: classifier,
		logger:     logger.With("component", "enrich"),
	}
}

// NewLLMPipeline wires the LLM-backed summarizer and classifier around one
// client.
func NewLLMPipeline(cfg LLMConfig, logger *slog.Logger) *Pipeline {
	client := NewLLMClient(cfg, logger)
	return NewPipeline(NewSummarizer(client, logger), NewClassifier(client, logger), logger)
}

// Enrich sets art.Summary and art.Kategori. Articles whose content is
// shorter than MinContentLength get article.SummaryEmpty and
// article.CategoryEmpty without any remote call; otherwise the summary is
// classified, not the full content.
func (p *Pipeline) Enrich(ctx context.Context, art *article.Article) {
	content := strings.TrimSpace(art.Content)
	if utf8.RuneCountInString(content) < MinContentLength {
		art.Summary = article.SummaryEmpty
		art.Kategori = article.CategoryEmpty
		p.logger.Debug("content too short, skipping", "link", art.Link)
		return
	}

	art.Summary = p.summarizer.Summarize(ctx, content)
	art.Kategori = p.classifier.Classify(ctx, art.Summary)
	p.logger.Info("article enriched", "site", art.Site, "kategori", art.Kategori)
}
