// Package history manages persistent storage of past topic submissions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Submission is one recorded topic submission.
type Submission struct {
	ID           int64
	Topic        string
	Outcome      string
	ArticleCount int
	CreatedAt    time.Time
}

// Manager records submissions in a sqlite database. Only the submission
// metadata is kept; digest payloads are never persisted.
type Manager struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
	now  func() time.Time
}

// NewManager creates a history manager for the given database path. The
// database is opened lazily on first use.
func NewManager(path string) *Manager {
	return &Manager{path: path, now: time.Now}
}

func (m *Manager) open() (*sql.DB, error) {
	if m.db != nil {
		return m.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		outcome TEXT NOT NULL,
		article_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create submissions table: %w", err)
	}
	m.db = db
	return db, nil
}

// Record appends one resolved submission.
func (m *Manager) Record(topic, outcome string, articleCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, err := m.open()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO submissions (topic, outcome, article_count, created_at) VALUES (?, ?, ?, ?)`,
		topic, outcome, articleCount, m.now().UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns up to limit submissions, newest first.
func (m *Manager) Recent(limit int) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, err := m.open()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, topic, outcome, article_count, created_at FROM submissions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Submission
	for rows.Next() {
		var s Submission
		var created string
		if err := rows.Scan(&s.ID, &s.Topic, &s.Outcome, &s.ArticleCount, &created); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
