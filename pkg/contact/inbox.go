package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Message is a stored submission.
type Message struct {
	ID         string
	Submission Submission
	ReceivedAt time.Time
	RequestID  string
	RemoteAddr string
}

// Inbox persists accepted submissions.
type Inbox interface {
	Store(ctx context.Context, msg Message) error
	List(ctx context.Context, limit int) ([]Message, error)
}

const inboxSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	received_at TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	category TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	agreed_terms INTEGER NOT NULL,
	request_id TEXT NOT NULL DEFAULT '',
	remote_addr TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_received ON contact_messages(received_at);
`

// SQLiteInbox stores messages in a SQLite database through the pure-Go
// modernc driver.
type SQLiteInbox struct {
	db *sql.DB
}

var _ Inbox = (*SQLiteInbox)(nil)

// OpenSQLiteInbox opens (and migrates) the database at dataSource, for
// example "file:inbox.db" or "file::memory:?cache=shared".
func OpenSQLiteInbox(ctx context.Context, dataSource string) (*SQLiteInbox, error) {
	db, err := sql.Open("sqlite", dataSource)
	if err != nil {
		return nil, fmt.Errorf("contact inbox: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, inboxSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("contact inbox: migrate: %w", err)
	}
	return &SQLiteInbox{db: db}, nil
}

// Store inserts msg.
func (i *SQLiteInbox) Store(ctx context.Context, msg Message) error {
	s := msg.Submission
	_, err := i.db.ExecContext(ctx, `
INSERT INTO contact_messages
	(id, received_at, name, email, category, subject, message, agreed_terms, request_id, remote_addr)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ReceivedAt.UTC().Format(time.RFC3339Nano), s.Name, s.Email, string(s.Category),
		s.Subject, s.Message, s.AgreedTerms, msg.RequestID, msg.RemoteAddr,
	)
	if err != nil {
		return fmt.Errorf("contact inbox: store: %w", err)
	}
	return nil
}

// List returns the newest messages first. limit <= 0 returns all of them.
func (i *SQLiteInbox) List(ctx context.Context, limit int) ([]Message, error) {
	query := `SELECT id, received_at, name, email, category, subject, message, agreed_terms, request_id, remote_addr
FROM contact_messages ORDER BY received_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("contact inbox: list: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			msg      Message
			received string
			category string
		)
		if err := rows.Scan(&msg.ID, &received, &msg.Submission.Name, &msg.Submission.Email, &category,
			&msg.Submission.Subject, &msg.Submission.Message, &msg.Submission.AgreedTerms,
			&msg.RequestID, &msg.RemoteAddr); err != nil {
			return nil, fmt.Errorf("contact inbox: scan: %w", err)
		}
		msg.Submission.Category = Category(category)
		if ts, err := time.Parse(time.RFC3339Nano, received); err == nil {
			msg.ReceivedAt = ts
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// Close releases the database.
func (i *SQLiteInbox) Close() error {
	return i.db.Close()
}

// MemoryInbox keeps messages in memory. Useful for tests and dry runs.
type MemoryInbox struct {
	mu       sync.Mutex
	messages []Message
}

var _ Inbox = (*MemoryInbox)(nil)

// Store appends msg.
func (m *MemoryInbox) Store(_ context.Context, msg Message) error {
	if msg.ID == "" {
		return errors.New("contact inbox: message id is required")
	}
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
	return nil
}

// List returns the newest messages first.
func (m *MemoryInbox) List(_ context.Context, limit int) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, 0, len(m.messages))
	for i := len(m.messages) - 1; i >= 0; i-- {
		out = append(out, m.messages[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
