// Package postgresql turns SQL result sets into re-iterable sequences.
//
// A sequence made with Query holds the query text and its arguments, not the result.
// Every traversal executes the query again and streams the rows as they come,
// so a query wrapped into a lazy query.Query always reflects the current state of the table.
package postgresql

import (
	"context"
	"database/sql"
	"io"

	_ "github.com/lib/pq"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/lazyq/pkg/seqkit"
)

// Querier executes a query and returns its result set.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

// Rows is the subset of *sql.Rows that the iterator needs.
type Rows interface {
	io.Closer
	Next() bool
	Err() error
	Scan(dest ...any) error
}

type RowScanner interface {
	Scan(dest ...any) error
}

// RowMapper builds a value out of the current row.
type RowMapper[T any] interface {
	Map(s RowScanner) (T, error)
}

type RowMapperFunc[T any] func(RowScanner) (T, error)

func (fn RowMapperFunc[T]) Map(s RowScanner) (T, error) { return fn(s) }

// Text maps the first column of a row into a string.
var Text RowMapper[string] = RowMapperFunc[string](func(s RowScanner) (string, error) {
	var v sql.NullString
	if err := s.Scan(&v); err != nil {
		return "", err
	}
	return v.String, nil
})

// Connection is a Querier over a database/sql connection pool, using the lib/pq driver.
type Connection struct {
	DB *sql.DB
	// Logger is optional, nothing is logged when it is nil.
	Logger *logging.Logger
}

// Connect opens a connection pool with the postgres driver and verifies the connection.
func Connect(ctx context.Context, dsn string) (*Connection, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errorkit.Merge(err, db.Close())
	}
	return &Connection{DB: db}, nil
}

func (c *Connection) Close() error {
	return c.DB.Close()
}

func (c *Connection) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	c.logger().Debug(ctx, "postgresql query", logging.Field("query", query))
	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		c.logger().Error(ctx, "postgresql query failed", logging.ErrField(err), logging.Field("query", query))
		return nil, err
	}
	return rows, nil
}

func (c *Connection) logger() *logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

var discard = &logging.Logger{Out: io.Discard}

// Query returns a sequence which runs the query on every traversal,
// and yields the rows mapped with mapper.
//
//	names := postgresql.Query(ctx, conn, postgresql.Text, `SELECT name FROM users WHERE active = $1`, true)
func Query[T any](ctx context.Context, q Querier, mapper RowMapper[T], query string, args ...any) seqkit.Sequence[T] {
	return seqkit.SequenceFunc[T](func() seqkit.Iterator[T] {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return seqkit.Error[T](err).Iterator()
		}
		return NewRows(rows, mapper)
	})
}

// NewRows wraps a result set into an Iterator.
// The result set is closed once it runs out of rows, or when the iterator is closed.
func NewRows[T any](rows Rows, mapper RowMapper[T]) seqkit.Iterator[T] {
	return &rowsIter[T]{rows: rows, mapper: mapper}
}

type rowsIter[T any] struct {
	rows   Rows
	mapper RowMapper[T]

	fetched bool
	done    bool
	closed  bool
	next    T
	err     error
}

func (i *rowsIter[T]) HasNext() bool {
	if !i.fetched {
		i.fetch()
	}
	return !i.done
}

func (i *rowsIter[T]) fetch() {
	i.fetched = true
	if i.done {
		return
	}
	if !i.rows.Next() {
		i.finish(i.rows.Err())
		return
	}
	v, err := i.mapper.Map(i.rows)
	if err != nil {
		i.finish(err)
		return
	}
	i.next = v
}

func (i *rowsIter[T]) finish(err error) {
	i.done = true
	i.err = errorkit.Merge(err, i.close())
}

func (i *rowsIter[T]) Next() (T, error) {
	var zero T
	if !i.HasNext() {
		return zero, seqkit.ErrExhausted
	}
	v := i.next
	i.next = zero
	i.fetched = false
	return v, nil
}

func (i *rowsIter[T]) Err() error { return i.err }

func (i *rowsIter[T]) Close() error {
	i.done = true
	i.fetched = true
	return i.close()
}

func (i *rowsIter[T]) close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	return i.rows.Close()
}
