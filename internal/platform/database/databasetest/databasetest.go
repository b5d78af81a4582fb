// Package databasetest provides an in-memory database/sql driver stub for
// repository tests. A Store records every statement dispatched through it
// and serves canned rows or results from per-test handlers, so tests can
// assert both what reached the store (templates constant, hostile input
// riding in args) and that invalid requests reached it not at all.
package databasetest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
)

// QueryHandler serves one read statement with canned columns and rows.
type QueryHandler func(query string, args []driver.NamedValue) (cols []string, rows [][]driver.Value, err error)

// ExecHandler serves one write statement.
type ExecHandler func(query string, args []driver.NamedValue) (driver.Result, error)

// Call is one recorded statement dispatch.
type Call struct {
	Query string
	Args  []driver.NamedValue
}

// Store is the stub's shared state. Zero value is usable; with no
// handlers set every dispatch fails, which keeps tests honest about
// which statements they expect.
type Store struct {
	mu    sync.Mutex
	calls []Call

	QueryFn QueryHandler
	ExecFn  ExecHandler
}

// Open returns a *sql.DB backed by this store.
func (s *Store) Open() *sql.DB {
	return sql.OpenDB(&connector{store: s})
}

// Calls returns a snapshot of every statement dispatched so far.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount reports how many statements reached the store.
func (s *Store) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *Store) record(query string, args []driver.NamedValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Query: query, Args: append([]driver.NamedValue(nil), args...)})
}

// Result is a canned driver.Result for ExecHandlers.
type Result struct {
	LastID int64
	Rows   int64
}

func (r Result) LastInsertId() (int64, error) { return r.LastID, nil }
func (r Result) RowsAffected() (int64, error) { return r.Rows, nil }

type connector struct {
	store *Store
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{store: c.store}, nil
}

func (c *connector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("databasetest: open via sql.OpenDB, not a DSN")
}

type conn struct {
	store *Store
}

func (c *conn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *conn) Close() error                        { return nil }
func (c *conn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.record(query, args)
	if c.store.QueryFn == nil {
		return nil, errors.New("databasetest: no QueryFn configured")
	}
	cols, data, err := c.store.QueryFn(query, args)
	if err != nil {
		return nil, err
	}
	return &rows{cols: cols, data: data}, nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.record(query, args)
	if c.store.ExecFn == nil {
		return nil, errors.New("databasetest: no ExecFn configured")
	}
	return c.store.ExecFn(query, args)
}

type rows struct {
	cols []string
	data [][]driver.Value
	i    int
}

func (r *rows) Columns() []string { return append([]string(nil), r.cols...) }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	row := r.data[r.i]
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	r.i++
	return nil
}
