// Package tasks tracks background scrape-and-enrich jobs submitted through
// the web front end and exposes their progress to polling clients.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pevans/berita/article"
)

var (
	// ErrTaskNotFound is returned for unknown or expired task ids.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotFinished is returned when results are requested before the
	// task has completed.
	ErrTaskNotFinished = errors.New("task not finished")
)

// Progress is a point-in-time copy of a task's state. Done never exceeds
// Total once Total is set, and Finished flips to true exactly once.
type Progress struct {
	Keyword  string            `json:"-"`
	Total    int               `json:"total"`
	Done     int               `json:"done"`
	Rows     []article.Article `json:"rows"`
	Finished bool              `json:"finished"`
}

type task struct {
	keyword    string
	total      int
	rows       []article.Article
	finished   bool
	createdAt  time.Time
	finishedAt time.Time
}

// Store is a process-wide registry of tasks keyed by id. Only the task's
// own worker mutates an entry after Create; readers always get a copy.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*task
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tasks: make(map[string]*task),
		now:   time.Now,
	}
}

// Create registers a new unfinished task and returns its id, the first
// eight hex characters of a random UUID.
func (s *Store) Create(keyword string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if _, exists := s.tasks[id]; exists {
			continue
		}
		s.tasks[id] = &task{
			keyword:   keyword,
			rows:      []article.Article{},
			createdAt: s.now(),
		}
		return id
	}
}

// Get returns a snapshot of the task's progress.
func (s *Store) Get(id string) (Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Progress{}, ErrTaskNotFound
	}
	rows := make([]article.Article, len(t.rows))
	copy(rows, t.rows)
	return Progress{
		Keyword:  t.keyword,
		Total:    t.total,
		Done:     len(t.rows),
		Rows:     rows,
		Finished: t.finished,
	}, nil
}

// Exists reports whether id is a known task.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tasks[id]
	return ok
}

// Results returns the rows of a finished task.
func (s *Store) Results(id string) ([]article.Article, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !p.Finished {
		return nil, ErrTaskNotFinished
	}
	return p.Rows, nil
}

// SetTotal records how many articles the task will process.
func (s *Store) SetTotal(id string, total int) error {
	return s.update(id, func(t *task) { t.total = total })
}

// Append adds one processed article, advancing Done by one.
func (s *Store) Append(id string, art article.Article) error {
	return s.update(id, func(t *task) { t.rows = append(t.rows, art) })
}

// Finish marks the task complete. Finishing twice is a no-op.
func (s *Store) Finish(id string) error {
	return s.update(id, func(t *task) {
		if t.finished {
			return
		}
		t.finished = true
		t.finishedAt = s.now()
	})
}

func (s *Store) update(id string, fn func(t *task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.finished {
		// Rows and total are frozen once a task has finished.
		return nil
	}
	fn(t)
	return nil
}

// Sweep removes finished tasks that finished more than ttl ago and returns
// how many were removed. Unfinished tasks are never removed.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, t := range s.tasks {
		if t.finished && t.finishedAt.Before(cutoff) {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// RunJanitor sweeps expired tasks every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, ttl time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 {
				logger.Info("expired tasks removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
