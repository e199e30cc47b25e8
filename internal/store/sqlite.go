package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"itemedit/internal/model"

	_ "modernc.org/sqlite"
)

// Store persists items and their comments in a SQLite file.
// It is the host application's storage; the editor widget never touches it directly.
type Store struct {
	db   *sql.DB
	path string

	// Now is the clock used for created/updated stamps.
	Now func() time.Time
}

func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage (TUI in one terminal, CLI in another).
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, path: path, Now: time.Now}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			complete INTEGER NOT NULL DEFAULT 0,
			assigned_to TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			tags_json TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			ts TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ListItems returns every item (with comments) ordered by creation time.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, complete, assigned_to, priority, due_date, tags_json
		FROM items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		cs, err := s.commentsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Comments = cs
	}
	return out, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (model.Item, error) {
	id = strings.TrimSpace(id)
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, complete, assigned_to, priority, due_date, tags_json
		FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	if err != nil {
		return model.Item{}, err
	}
	it.Comments, err = s.commentsFor(ctx, id)
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// SaveItem upserts the item's fields. Comments are written once: a new item's comments are
// inserted with it, while comments on an already stored item only arrive through AddComment.
func (s *Store) SaveItem(ctx context.Context, it model.Item) error {
	if strings.TrimSpace(it.ID) == "" {
		return errors.New("item id is empty")
	}
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	now := s.now().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE id = ?`, it.ID).Scan(&existing)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO items
		(id, title, description, complete, assigned_to, priority, due_date, tags_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			complete = excluded.complete,
			assigned_to = excluded.assigned_to,
			priority = excluded.priority,
			due_date = excluded.due_date,
			tags_json = excluded.tags_json,
			updated_at = excluded.updated_at`,
		it.ID, it.Title, it.Description, boolToInt(it.Complete), it.AssignedTo,
		string(it.Priority), it.DueDate, string(tagsJSON), now, now)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	if existing == 0 {
		for _, c := range it.Comments {
			if err := insertComment(ctx, tx, it.ID, c); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// AddComment appends a comment to a stored item.
func (s *Store) AddComment(ctx context.Context, itemID string, c model.Comment) error {
	itemID = strings.TrimSpace(itemID)
	if strings.TrimSpace(c.Content) == "" {
		return errors.New("comment is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError{Kind: "item", ID: itemID}
	}
	if err != nil {
		return err
	}
	if err := insertComment(ctx, tx, itemID, c); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFoundError{Kind: "item", ID: id}
	}
	return nil
}

func insertComment(ctx context.Context, tx *sql.Tx, itemID string, c model.Comment) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("comment id is empty")
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO comments (id, item_id, author, content, ts, avatar)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		c.ID, itemID, c.Author, c.Content, c.Timestamp.UTC().Format(time.RFC3339Nano), c.Avatar)
	if err != nil {
		return fmt.Errorf("insert comment %s: %w", c.ID, err)
	}
	return nil
}

func (s *Store) commentsFor(ctx context.Context, itemID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, author, content, ts, avatar
		FROM comments WHERE item_id = ? ORDER BY seq`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var ts string
		if err := rows.Scan(&c.ID, &c.Author, &c.Content, &ts, &c.Avatar); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("comment %s timestamp: %w", c.ID, err)
		}
		c.Timestamp = t
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (model.Item, error) {
	var it model.Item
	var complete int
	var priority, tagsJSON string
	if err := r.Scan(&it.ID, &it.Title, &it.Description, &complete, &it.AssignedTo, &priority, &it.DueDate, &tagsJSON); err != nil {
		return model.Item{}, err
	}
	it.Complete = complete != 0
	it.Priority = model.Priority(priority)
	if strings.TrimSpace(tagsJSON) != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &it.Tags); err != nil {
			return model.Item{}, fmt.Errorf("item %s tags: %w", it.ID, err)
		}
	}
	if len(it.Tags) == 0 {
		it.Tags = nil
	}
	return it, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
