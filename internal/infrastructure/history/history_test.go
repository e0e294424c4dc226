package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManager_RecordAndRecent(t *testing.T) {
	tmpDir := t.TempDir()
	m := NewManager(filepath.Join(tmpDir, "history.db"))
	defer func() { _ = m.Close() }()

	base := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if err := m.Record("quantum computing", "success", 13); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := m.Record("fusion energy", "timeout", 0); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent len = %d, want 2", len(got))
	}
	if got[0].Topic != "fusion energy" {
		t.Fatalf("newest first: got %q", got[0].Topic)
	}
	if got[0].Outcome != "timeout" {
		t.Fatalf("outcome = %q, want timeout", got[0].Outcome)
	}
	if got[1].ArticleCount != 13 {
		t.Fatalf("article_count = %d, want 13", got[1].ArticleCount)
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatal("created_at not monotonic")
	}
}

func TestManager_RecentLimit(t *testing.T) {
	tmpDir := t.TempDir()
	m := NewManager(filepath.Join(tmpDir, "history.db"))
	defer func() { _ = m.Close() }()

	for i := 0; i < 5; i++ {
		if err := m.Record("topic", "success", i); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := m.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent len = %d, want 3", len(got))
	}
}

func TestManager_CreatesDatabaseFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "history.db")
	m := NewManager(dbPath)
	defer func() { _ = m.Close() }()

	if err := m.Record("go", "success", 1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", dbPath, err)
	}
}

func TestManager_RecentOnEmptyStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "history.db"))
	defer func() { _ = m.Close() }()

	got, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Recent len = %d, want 0", len(got))
	}
}
