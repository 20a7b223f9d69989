package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pevans/berita/article"
)

// Aggregator collects articles for a keyword.
type Aggregator interface {
	Aggregate(ctx context.Context, keyword string, max int) []article.Article
}

// Enricher fills in an article's summary and category.
type Enricher interface {
	Enrich(ctx context.Context, art *article.Article)
}

// Runner executes each submitted keyword as an independent background task:
// aggregate every source, then enrich the articles one at a time in arrival
// order, publishing each to the store as it completes.
type Runner struct {
	store      *Store
	aggregator Aggregator
	enricher   Enricher
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// NewRunner creates a runner publishing into store.
func NewRunner(store *Store, aggregator Aggregator, enricher Enricher, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:      store,
		aggregator: aggregator,
		enricher:   enricher,
		logger:     logger.With("component", "runner"),
	}
}

// Submit registers a task and starts it in the background, returning the
// task id immediately. The task runs to completion; it is not tied to the
// submitting request.
func (r *Runner) Submit(keyword string, max int) string {
	id := r.store.Create(keyword)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(context.Background(), id, keyword, max)
	}()
	return id
}

// Wait blocks until every submitted task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context, id, keyword string, max int) {
	logger := r.logger.With("task", id, "keyword", keyword)
	start := time.Now()

	// Whatever happens, pollers must eventually see finished.
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("task panicked", "panic", rec)
		}
		if err := r.store.Finish(id); err != nil {
			logger.Warn("failed to finish task", "error", err)
		}
		logger.Info("task finished", "duration", time.Since(start))
	}()

	logger.Info("task started", "max_articles", max)
	articles := r.aggregator.Aggregate(ctx, keyword, max)
	if err := r.store.SetTotal(id, len(articles)); err != nil {
		logger.Warn("task vanished", "error", err)
		return
	}

	for i := range articles {
		art := articles[i]
		r.enricher.Enrich(ctx, &art)
		if !art.Enriched() {
			logger.Warn("article left without summary or category", "link", art.Link)
		}
		if err := r.store.Append(id, art); err != nil {
			logger.Warn("task vanished", "error", err)
			return
		}
	}
}
