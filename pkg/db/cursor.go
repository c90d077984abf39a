// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package db

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx a Cursor needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Cursor executes raw SQL and materializes result rows into Records.
type Cursor struct {
	q       Querier
	dialect sqlbuild.Dialect
	logger  *zap.Logger
	closed  atomic.Bool

	// Set by Conn so raw statements share its timeout and rollback rules.
	timeout time.Duration
	failed  func(op string, err error)
}

// NewCursor returns a cursor executing on q. A nil logger disables logging.
func NewCursor(q Querier, dialect sqlbuild.Dialect, logger *zap.Logger) *Cursor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cursor{q: q, dialect: dialect, logger: logger}
}

// Dialect returns the placeholder style statements must use.
func (c *Cursor) Dialect() sqlbuild.Dialect {
	return c.dialect
}

// Query runs a statement and collects its result set, if any.
func (c *Cursor) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	return c.query(ctx, "query", query, args)
}

// Exec runs a statement and returns the number of affected rows. Drivers
// that cannot report the count return -1.
func (c *Cursor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	c.logger.Debug("executing statement",
		zap.String("op", "exec"),
		zap.String("sql", query),
		zap.Int("args", len(args)))

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, c.fail("exec", query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return -1, nil
	}
	return n, nil
}

// Close marks the cursor unusable. It is idempotent and does not close the
// underlying connection.
func (c *Cursor) Close() error {
	c.closed.Store(true)
	return nil
}

// Closed reports whether Close has been called.
func (c *Cursor) Closed() bool {
	return c.closed.Load()
}

func (c *Cursor) query(ctx context.Context, op, query string, args []any) (*Result, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	c.logger.Debug("executing statement",
		zap.String("op", op),
		zap.String("sql", query),
		zap.Int("args", len(args)))

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, c.fail(op, query, err)
	}
	// Rows must be closed before a failure rolls the transaction back.
	res, err := collect(rows)
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, c.fail(op, query, err)
	}
	return res, nil
}

func (c *Cursor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Cursor) fail(op, query string, err error) error {
	err = classify(op, query, err)
	if c.failed != nil {
		c.failed(op, err)
	}
	return err
}

// collect drains rows. A statement without columns has no result set, but
// its rows are still iterated so the driver reports deferred errors.
func collect(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		for rows.Next() {
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return &Result{}, nil
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	binary := make([]bool, len(columns))
	for i, ct := range columnTypes {
		binary[i] = isBinaryType(ct.DatabaseTypeName())
	}

	res := &Result{columns: columns, records: []Record{}, hasResultSet: true}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// Text drivers hand back []byte for character data.
			if b, ok := v.([]byte); ok && !binary[i] {
				values[i] = string(b)
			}
		}
		res.records = append(res.records, Record{columns: columns, values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// isBinaryType reports whether []byte values of a column stay bytes. A
// column without a type name, such as an SQLite expression, keeps whatever
// the driver returned.
func isBinaryType(name string) bool {
	switch strings.ToUpper(name) {
	case "", "BYTEA", "BLOB":
		return true
	}
	return false
}
