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
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/teradata-labs/sqlkit/internal/dbdriver"
	"github.com/teradata-labs/sqlkit/internal/log"
	"github.com/teradata-labs/sqlkit/pkg/observability"
	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Conn is a single database session with CRUD helpers.
type Conn struct {
	cfg     Config
	driver  string
	db      *sql.DB
	conn    *sql.Conn
	tx      *sql.Tx
	cursor  *Cursor
	builder *sqlbuild.Builder
	tracer  observability.Tracer
	logger  *zap.Logger
	closed  bool
}

// Open connects to the database described by cfg. The returned Conn holds
// one physical connection until Close.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Conn, error) {
	o := options{tracer: observability.NewNoOpTracer(), logger: log.Logger()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := o.tracer.StartSpan(ctx, "sqlkit.conn.open")
	defer o.tracer.EndSpan(span)

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("invalid connection config: %w", err)
	}
	driverName, _ := cfg.DriverName()
	dsn, _ := cfg.ResolveDSN()
	dialect, _ := dbdriver.Dialect(driverName)
	span.SetAttribute(observability.AttrDriver, driverName)

	sqlDB, err := dbdriver.Open(driverName, dsn, cfg.Schema)
	if err != nil {
		span.RecordError(err)
		return nil, &ConnectivityError{Op: "open", Err: err}
	}
	sqlDB.SetMaxOpenConns(1)

	conn, err := sqlDB.Conn(ctx)
	if err == nil {
		err = conn.PingContext(ctx)
		if err != nil {
			_ = conn.Close()
		}
	}
	if err != nil {
		_ = sqlDB.Close()
		span.RecordError(err)
		return nil, &ConnectivityError{Op: "open", Err: err}
	}

	c := newConn(cfg, driverName, dialect, sqlDB, conn, o)
	c.logger.Debug("connection opened",
		zap.String("driver", driverName),
		zap.Bool("autocommit", cfg.Autocommit))
	return c, nil
}

func newConn(cfg Config, driverName string, dialect sqlbuild.Dialect, sqlDB *sql.DB, conn *sql.Conn, o options) *Conn {
	c := &Conn{
		cfg:     cfg,
		driver:  driverName,
		db:      sqlDB,
		conn:    conn,
		builder: sqlbuild.New(dialect, o.builderOptions()...),
		tracer:  o.tracer,
		logger:  o.logger,
	}
	c.cursor = NewCursor(session{c}, dialect, o.logger)
	c.cursor.timeout = cfg.StatementTimeout
	c.cursor.failed = c.abort
	return c
}

// Driver returns the canonical driver name.
func (c *Conn) Driver() string {
	return c.driver
}

// Cursor returns the connection's cursor for raw statements. Statements run
// through it join the pending transaction, honor StatementTimeout, and roll
// the transaction back when they fail.
func (c *Conn) Cursor() *Cursor {
	return c.cursor
}

// InTransaction reports whether a transaction is pending.
func (c *Conn) InTransaction() bool {
	return c.tx != nil
}

// Insert adds one row and returns it as stored, including generated
// defaults.
func (c *Conn) Insert(ctx context.Context, table string, data *sqlbuild.Columns) (Record, error) {
	if c.closed {
		return Record{}, ErrClosed
	}
	ctx, span := c.startSpan(ctx, "insert", table)
	defer c.tracer.EndSpan(span)

	f, err := c.builder.Insert(table, data)
	if err != nil {
		return Record{}, c.fail(span, inputError(err))
	}
	res, err := c.write(ctx, "insert", f)
	if err != nil {
		return Record{}, c.fail(span, err)
	}
	c.recordRows(span, "insert", res.Len())
	rec, _ := res.First()
	return rec, nil
}

// Select returns the rows of table matching opts. It does not commit.
func (c *Conn) Select(ctx context.Context, table string, opts ...SelectOption) ([]Record, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ctx, span := c.startSpan(ctx, "select", table)
	defer c.tracer.EndSpan(span)

	var q sqlbuild.SelectQuery
	for _, opt := range opts {
		opt(&q)
	}
	f, err := c.builder.Select(table, q)
	if err != nil {
		return nil, c.fail(span, err)
	}
	res, err := c.read(ctx, "select", f.SQL, f.Args)
	if err != nil {
		return nil, c.fail(span, err)
	}
	c.recordRows(span, "select", res.Len())
	return res.Records(), nil
}

// Update sets data on every row matching where and returns the updated
// rows. An empty where updates the whole table.
func (c *Conn) Update(ctx context.Context, table string, data, where *sqlbuild.Columns) ([]Record, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ctx, span := c.startSpan(ctx, "update", table)
	defer c.tracer.EndSpan(span)

	f, err := c.builder.Update(table, data, where)
	if err != nil {
		return nil, c.fail(span, inputError(err))
	}
	res, err := c.write(ctx, "update", f)
	if err != nil {
		return nil, c.fail(span, err)
	}
	c.recordRows(span, "update", res.Len())
	return res.Records(), nil
}

// Delete removes every row matching where and returns the removed rows. An
// empty where empties the table.
func (c *Conn) Delete(ctx context.Context, table string, where *sqlbuild.Columns) ([]Record, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ctx, span := c.startSpan(ctx, "delete", table)
	defer c.tracer.EndSpan(span)

	f, err := c.builder.Delete(table, where)
	if err != nil {
		return nil, c.fail(span, err)
	}
	res, err := c.write(ctx, "delete", f)
	if err != nil {
		return nil, c.fail(span, err)
	}
	c.recordRows(span, "delete", res.Len())
	return res.Records(), nil
}

// Query runs raw SQL with positional parameters in the connection's
// dialect. It does not commit.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ctx, span := c.startSpan(ctx, "query", "")
	defer c.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrStatement, query)

	res, err := c.read(ctx, "query", query, args)
	if err != nil {
		return nil, c.fail(span, err)
	}
	c.recordRows(span, "query", res.Len())
	return res, nil
}

// Commit commits the pending transaction, if any.
func (c *Conn) Commit() error {
	if c.closed {
		return ErrClosed
	}
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	return classify("commit", "COMMIT", tx.Commit())
}

// Rollback discards the pending transaction, if any.
func (c *Conn) Rollback() error {
	if c.closed {
		return ErrClosed
	}
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	return classify("rollback", "ROLLBACK", tx.Rollback())
}

// Close rolls back any pending transaction and releases the connection.
// Calling Close more than once is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.tx != nil {
		if err := c.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, err)
		}
		c.tx = nil
	}
	_ = c.cursor.Close()
	if err := c.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		errs = append(errs, err)
	}
	if err := c.db.Close(); err != nil {
		errs = append(errs, err)
	}
	c.logger.Debug("connection closed", zap.String("driver", c.driver))
	return errors.Join(errs...)
}

// write runs a mutating statement and commits on success.
func (c *Conn) write(ctx context.Context, op string, f sqlbuild.Fragment) (*Result, error) {
	res, err := c.read(ctx, op, f.SQL, f.Args)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// read runs a statement in the pending transaction. The cursor rolls the
// transaction back on failure before the error is returned.
func (c *Conn) read(ctx context.Context, op, query string, args []any) (*Result, error) {
	return c.cursor.query(ctx, op, query, args)
}

func (c *Conn) abort(op string, cause error) {
	if c.tx == nil {
		return
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		c.logger.Warn("rollback after failed statement failed",
			zap.String("op", op), zap.Error(err))
		return
	}
	c.logger.Debug("rolled back transaction after failed statement",
		zap.String("op", op), zap.Error(cause))
}

// begin returns the querier statements run on, opening a transaction when
// autocommit is off.
func (c *Conn) begin(ctx context.Context) (Querier, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.cfg.Autocommit {
		return c.conn, nil
	}
	if c.tx == nil {
		// The transaction outlives the statement that opened it.
		tx, err := c.conn.BeginTx(context.WithoutCancel(ctx), nil)
		if err != nil {
			return nil, classify("begin", "BEGIN", err)
		}
		c.tx = tx
	}
	return c.tx, nil
}

func (c *Conn) startSpan(ctx context.Context, op, table string) (context.Context, *observability.Span) {
	ctx, span := c.tracer.StartSpan(ctx, "sqlkit.conn."+op,
		observability.WithAttribute(observability.AttrDriver, c.driver))
	if table != "" {
		span.SetAttribute(observability.AttrTable, table)
	}
	return ctx, span
}

func (c *Conn) fail(span *observability.Span, err error) error {
	span.RecordError(err)
	return err
}

func (c *Conn) recordRows(span *observability.Span, op string, n int) {
	span.SetAttribute(observability.AttrRows, n)
	c.tracer.RecordMetric("sqlkit.conn.rows", float64(n), map[string]string{
		"op":     op,
		"driver": c.driver,
	})
}

// session routes cursor statements to the pending transaction or, in
// autocommit mode, straight to the connection.
type session struct {
	c *Conn
}

func (s session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q, err := s.c.begin(ctx)
	if err != nil {
		return nil, err
	}
	return q.QueryContext(ctx, query, args...)
}

func (s session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q, err := s.c.begin(ctx)
	if err != nil {
		return nil, err
	}
	return q.ExecContext(ctx, query, args...)
}
