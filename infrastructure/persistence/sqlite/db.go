// Package sqlite implements the repository ports on a single SQLite database.
// Collection-valued columns (tags, keywords, embeddings) are stored as JSON
// text; timestamps as RFC3339 text.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB wraps the shared database handle the stores operate on.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("database opened", zap.String("path", path))
	return &DB{DB: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			nickname TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
			total_words INTEGER NOT NULL DEFAULT 0,
			streak_days INTEGER NOT NULL DEFAULT 0,
			max_streak_days INTEGER NOT NULL DEFAULT 0,
			authors_collected INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			name_en TEXT NOT NULL DEFAULT '',
			era TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			style_tags TEXT NOT NULL DEFAULT '[]',
			bio TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			plant_type TEXT NOT NULL DEFAULT '',
			plant_symbol TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS works (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL REFERENCES authors(id),
			title TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			era TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_works_author ON works(author_id)`,
		`CREATE TABLE IF NOT EXISTS passages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL REFERENCES authors(id),
			work_id INTEGER REFERENCES works(id),
			content TEXT NOT NULL,
			content_length INTEGER NOT NULL DEFAULT 0,
			emotion_tags TEXT NOT NULL DEFAULT '[]',
			imagery_tags TEXT NOT NULL DEFAULT '[]',
			scene_tags TEXT NOT NULL DEFAULT '[]',
			theme_tags TEXT NOT NULL DEFAULT '[]',
			embedding TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_passages_author ON passages(author_id)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			emotion_primary TEXT NOT NULL DEFAULT '',
			emotion_secondary TEXT NOT NULL DEFAULT '[]',
			emotion_intensity REAL NOT NULL DEFAULT 0,
			keywords TEXT NOT NULL DEFAULT '[]',
			imagery TEXT NOT NULL DEFAULT '[]',
			scenes TEXT NOT NULL DEFAULT '[]',
			themes TEXT NOT NULL DEFAULT '[]',
			weather_type TEXT NOT NULL DEFAULT '',
			psychological_insight TEXT NOT NULL DEFAULT '',
			embedding TEXT NOT NULL DEFAULT '[]',
			image_url TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user ON entries(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id INTEGER NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
			passage_id INTEGER NOT NULL REFERENCES passages(id),
			match_score REAL NOT NULL DEFAULT 0,
			match_reason TEXT NOT NULL DEFAULT '',
			emotion_similarity REAL NOT NULL DEFAULT 0,
			keyword_overlap REAL NOT NULL DEFAULT 0,
			imagery_match REAL NOT NULL DEFAULT 0,
			rank INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_entry ON matches(entry_id, rank)`,
		`CREATE TABLE IF NOT EXISTS gardens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			author_id INTEGER NOT NULL REFERENCES authors(id),
			plant_stage INTEGER NOT NULL DEFAULT 1,
			match_count INTEGER NOT NULL DEFAULT 0,
			last_match_at TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(user_id, author_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(len(stmt), 60)], err)
		}
	}
	return nil
}

func marshalList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(s string) []string {
	if s == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
