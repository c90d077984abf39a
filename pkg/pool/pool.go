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
package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/teradata-labs/sqlkit/internal/dbdriver"
	"github.com/teradata-labs/sqlkit/internal/log"
	"github.com/teradata-labs/sqlkit/pkg/db"
	"github.com/teradata-labs/sqlkit/pkg/observability"
	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Pool is a bounded set of database connections. It is safe for concurrent
// use.
type Pool struct {
	cfg     Config
	driver  string
	dialect sqlbuild.Dialect
	db      *sql.DB
	tracer  observability.Tracer
	logger  *zap.Logger

	// sem holds one permit per checked-out handle.
	sem *semaphore.Weighted

	// closing is cancelled by CloseAll to wake blocked acquirers.
	closing context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	idle     []*Handle
	handles  map[*Handle]bool // value reports whether the handle is checked out
	acquires int64
	closed   bool
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Total    int   `json:"total" yaml:"total"`
	Idle     int   `json:"idle" yaml:"idle"`
	InUse    int   `json:"in_use" yaml:"in_use"`
	MinConns int   `json:"min_conns" yaml:"min_conns"`
	MaxConns int   `json:"max_conns" yaml:"max_conns"`
	Acquires int64 `json:"acquires" yaml:"acquires"`
}

// Option configures New.
type Option func(*Pool)

// WithTracer sets the tracer receiving acquire/release spans and pool gauges.
func WithTracer(t observability.Tracer) Option {
	return func(p *Pool) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithLogger sets the logger used by the pool and its cursors.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pool and opens cfg.MinConns connections concurrently.
func New(ctx context.Context, cfg Config, opts ...Option) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool config: %w", err)
	}
	driverName, _ := cfg.DriverName()
	dsn, _ := cfg.ResolveDSN()
	dialect, _ := dbdriver.Dialect(driverName)

	sqlDB, err := dbdriver.Open(driverName, dsn, cfg.Schema)
	if err != nil {
		return nil, &InitError{Want: cfg.MinConns, Err: err}
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns)

	closing, cancel := context.WithCancel(context.Background())
	p := &Pool{
		cfg:     cfg,
		driver:  driverName,
		dialect: dialect,
		db:      sqlDB,
		tracer:  observability.NewNoOpTracer(),
		logger:  log.Logger(),
		sem:     semaphore.NewWeighted(int64(cfg.MaxConns)),
		closing: closing,
		cancel:  cancel,
		handles: make(map[*Handle]bool, cfg.MaxConns),
	}
	for _, opt := range opts {
		opt(p)
	}

	ctx, span := p.tracer.StartSpan(ctx, "sqlkit.pool.init",
		observability.WithAttribute(observability.AttrDriver, driverName))
	defer p.tracer.EndSpan(span)

	if err := p.warm(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	p.logger.Debug("connection pool ready",
		zap.String("driver", driverName),
		zap.Int("min_conns", cfg.MinConns),
		zap.Int("max_conns", cfg.MaxConns))
	return p, nil
}

// warm opens MinConns idle connections. On failure every opened connection
// is closed and an InitError is returned.
func (p *Pool) warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.cfg.MinConns; i++ {
		g.Go(func() error {
			conn, err := p.connect(gctx)
			if err != nil {
				return err
			}
			h := newHandle(conn)
			p.mu.Lock()
			p.idle = append(p.idle, h)
			p.handles[h] = false
			p.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		return nil
	}

	p.mu.Lock()
	opened := len(p.idle)
	p.mu.Unlock()
	if closeErr := p.CloseAll(); closeErr != nil {
		p.logger.Warn("failed to close partially initialized pool", zap.Error(closeErr))
	}
	return &InitError{Want: p.cfg.MinConns, Opened: opened, Err: err}
}

func (p *Pool) connect(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, &db.ConnectivityError{Op: "connect", Err: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &db.ConnectivityError{Op: "connect", Err: err}
	}
	return conn, nil
}

// Acquire checks out a connection and returns it with a fresh cursor.
func (p *Pool) Acquire(ctx context.Context) (*Handle, *db.Cursor, error) {
	ctx, span := p.tracer.StartSpan(ctx, "sqlkit.pool.acquire",
		observability.WithAttribute(observability.AttrDriver, p.driver))
	defer p.tracer.EndSpan(span)

	if err := p.reserve(ctx); err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	h, err := p.checkout(ctx)
	if err != nil {
		p.sem.Release(1)
		span.RecordError(err)
		return nil, nil, err
	}

	span.SetAttribute(observability.AttrHandleID, h.id)
	p.recordGauges()
	return h, h.cursor, nil
}

// reserve takes a semaphore permit, honouring FailFast and AcquireTimeout.
func (p *Pool) reserve(ctx context.Context) error {
	if p.closing.Err() != nil {
		return ErrPoolClosed
	}

	if p.cfg.FailFast {
		if !p.sem.TryAcquire(1) {
			return fmt.Errorf("%w: all %d connections are in use", ErrPoolExhausted, p.cfg.MaxConns)
		}
	} else {
		waitCtx := ctx
		if p.cfg.AcquireTimeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, p.cfg.AcquireTimeout)
			defer cancel()
		}
		waitCtx, wake := context.WithCancel(waitCtx)
		defer wake()
		stop := context.AfterFunc(p.closing, wake)
		defer stop()

		if err := p.sem.Acquire(waitCtx, 1); err != nil {
			switch {
			case p.closing.Err() != nil:
				return ErrPoolClosed
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				return fmt.Errorf("%w: no connection released within %s: %w",
					ErrPoolExhausted, p.cfg.AcquireTimeout, err)
			}
		}
	}

	if p.closing.Err() != nil {
		p.sem.Release(1)
		return ErrPoolClosed
	}
	return nil
}

// checkout reuses an idle handle or opens a new connection. The caller
// holds a permit, so a new connection never exceeds MaxConns.
func (p *Pool) checkout(ctx context.Context) (*Handle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		h := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.lease(h)
		p.mu.Unlock()
		return h, nil
	}
	p.mu.Unlock()

	conn, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	h := newHandle(conn)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = conn.Close()
		return nil, ErrPoolClosed
	}
	p.lease(h)
	p.logger.Debug("opened pooled connection", zap.String("handle", h.id))
	return h, nil
}

// lease marks h checked out. Must be called with p.mu held.
func (p *Pool) lease(h *Handle) {
	p.handles[h] = true
	p.acquires++
	h.usage++
	h.lastUsed = time.Now()
	h.cursor = db.NewCursor(h.conn, p.dialect, p.logger)
}

// Release returns a checked-out handle to the pool and closes its cursor.
func (p *Pool) Release(h *Handle) error {
	_, span := p.tracer.StartSpan(context.Background(), "sqlkit.pool.release")
	defer p.tracer.EndSpan(span)

	if err := p.checkin(h); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute(observability.AttrHandleID, h.id)
	p.sem.Release(1)
	p.recordGauges()
	return nil
}

func (p *Pool) checkin(h *Handle) error {
	if h == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidHandle)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	out, known := p.handles[h]
	if !known {
		return fmt.Errorf("%w: handle %s does not belong to this pool", ErrInvalidHandle, h.id)
	}
	if !out {
		return fmt.Errorf("%w: handle %s is not checked out", ErrInvalidHandle, h.id)
	}

	p.handles[h] = false
	_ = h.cursor.Close()
	h.cursor = nil
	h.lastUsed = time.Now()
	p.idle = append(p.idle, h)
	return nil
}

// CloseAll closes every connection, idle or checked out, and wakes blocked
// acquirers. Calling it again is a no-op.
func (p *Pool) CloseAll() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.cancel()
	handles := make([]*Handle, 0, len(p.handles))
	for h := range p.handles {
		handles = append(handles, h)
	}
	p.idle = nil
	p.handles = map[*Handle]bool{}
	p.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if h.cursor != nil {
			_ = h.cursor.Close()
		}
		if err := h.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			errs = append(errs, fmt.Errorf("close handle %s: %w", h.id, err))
		}
	}
	if err := p.db.Close(); err != nil {
		errs = append(errs, err)
	}

	p.logger.Debug("connection pool closed", zap.Int("connections", len(handles)))
	return errors.Join(errs...)
}

// Closed reports whether CloseAll has been called.
func (p *Pool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Stats returns current pool statistics.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statsLocked()
}

func (p *Pool) statsLocked() Stats {
	inUse := 0
	for _, out := range p.handles {
		if out {
			inUse++
		}
	}
	return Stats{
		Total:    len(p.handles),
		Idle:     len(p.idle),
		InUse:    inUse,
		MinConns: p.cfg.MinConns,
		MaxConns: p.cfg.MaxConns,
		Acquires: p.acquires,
	}
}

func (p *Pool) recordGauges() {
	s := p.Stats()
	labels := map[string]string{"driver": p.driver}
	p.tracer.RecordMetric("sqlkit.pool.in_use", float64(s.InUse), labels)
	p.tracer.RecordMetric("sqlkit.pool.idle", float64(s.Idle), labels)
}
