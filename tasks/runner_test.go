package tasks

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pevans/berita/article"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAggregator struct {
	articles []article.Article
	panics   bool
}

func (f *fakeAggregator) Aggregate(ctx context.Context, keyword string, max int) []article.Article {
	if f.panics {
		panic("aggregation exploded")
	}
	out := []article.Article{}
	for i, a := range f.articles {
		if i >= max {
			break
		}
		a.Title = keyword + " " + a.Title
		out = append(out, a)
	}
	return out
}

type upperEnricher struct{}

func (upperEnricher) Enrich(ctx context.Context, art *article.Article) {
	art.Summary = strings.ToUpper(art.Content)
	art.Kategori = "C"
}

// TestSubmit_RunsToCompletion verifies rows are enriched and published in
// order and the task finishes
func TestSubmit_RunsToCompletion(t *testing.T) {
	store := NewStore()
	agg := &fakeAggregator{articles: []article.Article{
		{Title: "satu", Content: "isi satu"},
		{Title: "dua", Content: "isi dua"},
		{Title: "tiga", Content: "isi tiga"},
	}}
	r := NewRunner(store, agg, upperEnricher{}, discard)

	id := r.Submit("banjir", 2)
	r.Wait()

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.True(t, p.Finished)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 2, p.Done)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "banjir satu", p.Rows[0].Title)
	assert.Equal(t, "ISI SATU", p.Rows[0].Summary)
	assert.Equal(t, "C", p.Rows[1].Kategori)
}

// TestSubmit_IndependentTasks verifies concurrent tasks do not share rows
func TestSubmit_IndependentTasks(t *testing.T) {
	store := NewStore()
	agg := &fakeAggregator{articles: []article.Article{{Title: "x", Content: "y"}}}
	r := NewRunner(store, agg, upperEnricher{}, discard)

	a := r.Submit("banjir", 5)
	b := r.Submit("gempa", 5)
	r.Wait()

	pa, err := store.Get(a)
	require.NoError(t, err)
	pb, err := store.Get(b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "banjir x", pa.Rows[0].Title)
	assert.Equal(t, "gempa x", pb.Rows[0].Title)
}

// TestSubmit_PanicStillFinishes verifies pollers see finished even when the
// pipeline panics
func TestSubmit_PanicStillFinishes(t *testing.T) {
	store := NewStore()
	r := NewRunner(store, &fakeAggregator{panics: true}, upperEnricher{}, discard)

	id := r.Submit("banjir", 5)
	r.Wait()

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.True(t, p.Finished)
	assert.Equal(t, 0, p.Done)
}

type noopEnricher struct{}

func (noopEnricher) Enrich(ctx context.Context, art *article.Article) {}

// TestSubmit_WarnsOnUnenrichedRows verifies rows the enricher left untouched
// are still published and logged
func TestSubmit_WarnsOnUnenrichedRows(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := NewStore()
	agg := &fakeAggregator{articles: []article.Article{{Title: "x", Link: "https://a.test/x"}}}
	r := NewRunner(store, agg, noopEnricher{}, logger)

	id := r.Submit("banjir", 5)
	r.Wait()

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Done)
	assert.Contains(t, logs.String(), "article left without summary or category")
	assert.Contains(t, logs.String(), "https://a.test/x")
}
