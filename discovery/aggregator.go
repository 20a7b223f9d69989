// Package discovery runs every configured source adapter for a keyword and
// gathers their articles into one collection.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/pevans/berita/article"
	"github.com/pevans/berita/scraper"
	"github.com/pevans/berita/session"
)

// Aggregator invokes adapters one after another in a fixed order. A failing
// adapter, including one that panics, never prevents the remaining adapters
// from running; whatever it emitted before failing is kept.
type Aggregator struct {
	adapters   []scraper.Adapter
	newSession func() *session.Session
	logger     *slog.Logger
}

// NewAggregator creates an aggregator over adapters. newSession is called
// once per aggregation; the resulting session is shared by every adapter in
// that run.
func NewAggregator(adapters []scraper.Adapter, newSession func() *session.Session, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if newSession == nil {
		newSession = func() *session.Session {
			return session.New(session.DefaultOptions())
		}
	}
	return &Aggregator{
		adapters:   adapters,
		newSession: newSession,
		logger:     logger.With("component", "aggregator"),
	}
}

// Aggregate returns the articles of every adapter, in adapter order, with at
// most max articles per source.
func (a *Aggregator) Aggregate(ctx context.Context, keyword string, max int) []article.Article {
	articles := []article.Article{}
	a.Stream(ctx, keyword, max, func(art article.Article) {
		articles = append(articles, art)
	})
	return articles
}

// Stream is Aggregate delivering each article to emit as soon as its adapter
// produces it. It returns once every adapter has finished or ctx is done.
func (a *Aggregator) Stream(ctx context.Context, keyword string, max int, emit func(article.Article)) {
	sess := a.newSession()
	start := time.Now()
	total := 0

	for _, adapter := range a.adapters {
		if ctx.Err() != nil {
			a.logger.Warn("aggregation cancelled", "error", ctx.Err())
			return
		}

		n, err := a.run(ctx, adapter, sess, keyword, max, emit)
		total += n
		if err != nil {
			a.logger.Error("source failed", "source", adapter.Name(), "articles", n, "error", err)
			continue
		}
		a.logger.Info("source done", "source", adapter.Name(), "articles", n)
	}

	a.logger.Info("aggregation complete",
		"keyword", keyword,
		"sources", len(a.adapters),
		"articles", total,
		"duration", time.Since(start),
	)
}

// run invokes a single adapter, converting a panic into an error.
func (a *Aggregator) run(ctx context.Context, adapter scraper.Adapter, sess *session.Session, keyword string, max int, emit func(article.Article)) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("adapter panic", "source", adapter.Name(), "stack", string(debug.Stack()))
			err = fmt.Errorf("adapter panicked: %v", r)
		}
	}()

	err = adapter.Extract(ctx, sess, keyword, max, func(art article.Article) {
		n++
		emit(art)
	})
	return n, err
}
