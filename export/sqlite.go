package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pevans/berita/article"
)

// ArticleStore writes scrape results into an SQLite database file.
type ArticleStore struct {
	db *sql.DB
}

// StoredArticle is an article row together with the run it came from.
type StoredArticle struct {
	article.Article
	Keyword   string
	ScrapedAt time.Time
}

// NewArticleStore opens (creating if needed) the database at dbPath.
func NewArticleStore(dbPath string) (*ArticleStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &ArticleStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the articles table if it doesn't exist.
func (s *ArticleStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword TEXT NOT NULL,
		site TEXT NOT NULL,
		tanggal TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		kategori TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL,
		scraped_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_articles_keyword ON articles(keyword);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *ArticleStore) Close() error {
	return s.db.Close()
}

// Save inserts articles for keyword in one transaction, keeping their order.
func (s *ArticleStore) Save(keyword string, articles []article.Article) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (keyword, site, tanggal, title, content, summary, kategori, link, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, a := range articles {
		if _, err := stmt.Exec(keyword, a.Site, a.Tanggal, a.Title, a.Content, a.Summary, a.Kategori, a.Link, now); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// List returns the stored articles for keyword in insertion order.
func (s *ArticleStore) List(keyword string) ([]StoredArticle, error) {
	rows, err := s.db.Query(`
		SELECT keyword, site, tanggal, title, content, summary, kategori, link, scraped_at
		FROM articles WHERE keyword = ? ORDER BY id
	`, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	result := []StoredArticle{}
	for rows.Next() {
		var sa StoredArticle
		var scrapedAt string
		if err := rows.Scan(&sa.Keyword, &sa.Site, &sa.Tanggal, &sa.Title, &sa.Content,
			&sa.Summary, &sa.Kategori, &sa.Link, &scrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		sa.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		result = append(result, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return result, nil
}

// WriteSQLite appends articles for keyword to the database at dbPath.
func WriteSQLite(dbPath, keyword string, articles []article.Article) error {
	store, err := NewArticleStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(keyword, articles)
}
