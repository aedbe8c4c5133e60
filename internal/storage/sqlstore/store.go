// Package sqlstore implements the remote store over database/sql. The
// sqlite and postgres backends embed it and differ only in how they open
// and migrate the database.
package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/realtime"
)

// Dialect selects placeholder syntax.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

type Store struct {
	db      *sql.DB
	dialect Dialect
	hub     realtime.Hub
	now     func() time.Time
}

// New wraps an open database. A nil hub gets an in-process one.
func New(db *sql.DB, dialect Dialect, hub realtime.Hub) *Store {
	if hub == nil {
		hub = realtime.NewMemoryHub()
	}
	return &Store{db: db, dialect: dialect, hub: hub, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Hub() realtime.Hub {
	return s.hub
}

// Subscribe registers fn for changes to table rows owned by userID.
func (s *Store) Subscribe(table, userID string, fn realtime.Handler) (func(), error) {
	return s.hub.Subscribe(table, userID, fn)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) exec(ctx context.Context, q queryer, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q queryer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q queryer, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.rebind(query), args...)
}

// publish notifies subscribers after a committed change. Delivery failures
// are logged and never fail the mutation.
func (s *Store) publish(ctx context.Context, table string, action realtime.Action, userID string, ids ...int64) {
	if err := s.hub.Publish(ctx, realtime.NewEvent(table, action, userID, ids...)); err != nil {
		logger.Warn("Failed to publish change", "table", table, "action", action, "error", err)
	}
}

// updateSet accumulates "column = ?" assignments for partial updates.
type updateSet struct {
	cols []string
	args []any
}

func (u *updateSet) set(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

func (u *updateSet) empty() bool {
	return len(u.cols) == 0
}

func (u *updateSet) clause() string {
	return strings.Join(u.cols, ", ")
}

// inList returns "?, ?, ?" for n values.
func inList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
