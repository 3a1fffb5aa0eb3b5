package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/forcetree/internal/db"
)

// Store persists journal entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Event == "" {
		return fmt.Errorf("journal entry %s has no event", entry.ID)
	}

	var detail sql.NullString
	if entry.Detail != "" {
		detail = sql.NullString{String: entry.Detail, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (
			id, session_id, event, node_id, node_name,
			outcome, reason, focus, detail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SessionID,
		string(entry.Event),
		entry.NodeID,
		entry.NodeName,
		entry.Outcome,
		entry.Reason,
		entry.Focus,
		detail,
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// OpenSession records that a live view connected.
func (s *Store) OpenSession(ctx context.Context, id, remoteAddr string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO view_sessions (id, remote_addr) VALUES (?, ?)", id, remoteAddr)
	if err != nil {
		return fmt.Errorf("recording session open: %w", err)
	}
	return s.Log(ctx, Entry{SessionID: id, Event: EventOpen, Detail: remoteAddr})
}

// CloseSession marks a live view as disconnected.
func (s *Store) CloseSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE view_sessions SET closed_at = datetime('now') WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("recording session close: %w", err)
	}
	return s.Log(ctx, Entry{SessionID: id, Event: EventClose})
}

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, session_id, event, node_id, node_name,
			   outcome, reason, focus, detail
		FROM journal_entries WHERE id = ?`, id)

	return scanInto(row)
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	SessionID string
	Event     Event
	Outcome   string
	NodeName  string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Event != "" {
		clauses = append(clauses, "event = ?")
		args = append(args, string(filter.Event))
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, filter.Outcome)
	}
	if filter.NodeName != "" {
		clauses = append(clauses, "node_name = ?")
		args = append(args, filter.NodeName)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, session_id, event, node_id, node_name, outcome, reason, focus, detail FROM journal_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all entries older than the given time and returns
// the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM journal_entries WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old journal entries: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e      Entry
		event  string
		ts     string
		detail sql.NullString
	)

	err := sc.Scan(
		&e.ID, &ts, &e.SessionID, &event, &e.NodeID, &e.NodeName,
		&e.Outcome, &e.Reason, &e.Focus, &detail,
	)
	if err != nil {
		return nil, err
	}

	e.Event = Event(event)
	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
		e.Timestamp = t
	}
	if detail.Valid {
		e.Detail = detail.String
	}
	return &e, nil
}
