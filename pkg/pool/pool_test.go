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
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/teradata-labs/sqlkit/pkg/db"
	"github.com/teradata-labs/sqlkit/pkg/observability"
)

func testConfig(t *testing.T, minConns, maxConns int) Config {
	t.Helper()
	return Config{
		Config:   db.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "pool.db")},
		MinConns: minConns,
		MaxConns: maxConns,
	}
}

func newTestPool(t *testing.T, cfg Config, opts ...Option) *Pool {
	t.Helper()
	p, err := New(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.CloseAll() })
	return p
}

func TestNew_OpensMinConns(t *testing.T) {
	p := newTestPool(t, testConfig(t, 2, 4))

	assert.Equal(t, Stats{Total: 2, Idle: 2, InUse: 0, MinConns: 2, MaxConns: 4}, p.Stats())
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"zero max", 0, 0},
		{"negative min", -1, 2},
		{"min above max", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), testConfig(t, tt.min, tt.max))
			assert.Error(t, err)
		})
	}
}

func TestNew_InitError(t *testing.T) {
	cfg := testConfig(t, 2, 2)
	cfg.DSN = filepath.Join(t.TempDir(), "missing", "dir", "pool.db")

	_, err := New(context.Background(), cfg)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, 2, initErr.Want)
	assert.Equal(t, 0, initErr.Opened)

	var connErr *db.ConnectivityError
	assert.ErrorAs(t, err, &connErr)
}

func TestAcquire_UpToMaxConns(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 1, 3))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		h, cur, err := p.Acquire(ctx)
		require.NoError(t, err)
		require.NotNil(t, cur)
		assert.False(t, seen[h.ID()], "handle handed out twice")
		seen[h.ID()] = true

		res, err := cur.Query(ctx, "SELECT 1 AS one")
		require.NoError(t, err)
		rec, _ := res.First()
		assert.Equal(t, int64(1), rec.Value("one"))
	}

	s := p.Stats()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.InUse)
	assert.Equal(t, 0, s.Idle)
	assert.Equal(t, int64(3), s.Acquires)
}

func TestAcquire_FailFast(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, 0, 1)
	cfg.FailFast = true
	p := newTestPool(t, cfg)

	h, _, err := p.Acquire(ctx)
	require.NoError(t, err)

	_, _, err = p.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPoolExhausted)

	require.NoError(t, p.Release(h))
	again, _, err := p.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, h.ID(), again.ID(), "idle handle is reused")
	assert.Equal(t, 1, p.Stats().Total)
}

func TestAcquire_Timeout(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, 0, 1)
	cfg.AcquireTimeout = 50 * time.Millisecond
	p := newTestPool(t, cfg)

	_, _, err := p.Acquire(ctx)
	require.NoError(t, err)

	start := time.Now()
	_, _, err = p.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestAcquire_ContextDone(t *testing.T) {
	p := newTestPool(t, testConfig(t, 0, 1))

	_, _, err := p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, _, err = p.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrPoolExhausted)
}

func TestAcquire_ReleaseUnblocksWaiter(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 0, 1))

	held, _, err := p.Acquire(ctx)
	require.NoError(t, err)

	got := make(chan *Handle, 1)
	go func() {
		h, _, err := p.Acquire(ctx)
		if err != nil {
			got <- nil
			return
		}
		got <- h
	}()

	select {
	case <-got:
		t.Fatal("acquire returned while the only connection was checked out")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, p.Release(held))
	select {
	case h := <-got:
		require.NotNil(t, h)
		assert.Equal(t, held.ID(), h.ID())
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken by release")
	}
}

func TestAcquire_ConnectFailureReleasesPermit(t *testing.T) {
	cfg := testConfig(t, 0, 1)
	cfg.FailFast = true
	cfg.DSN = filepath.Join(t.TempDir(), "missing", "pool.db")
	p := newTestPool(t, cfg)

	for i := 0; i < 2; i++ {
		_, _, err := p.Acquire(context.Background())
		var connErr *db.ConnectivityError
		require.ErrorAs(t, err, &connErr)
	}
	assert.Equal(t, 0, p.Stats().Total)
}

func TestRelease_InvalidHandles(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 0, 2))
	other := newTestPool(t, testConfig(t, 0, 1))

	assert.ErrorIs(t, p.Release(nil), ErrInvalidHandle)

	foreign, _, err := other.Acquire(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Release(foreign), ErrInvalidHandle)

	h, _, err := p.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Release(h))
	assert.ErrorIs(t, p.Release(h), ErrInvalidHandle, "double release")

	assert.Equal(t, 0, p.Stats().InUse)
}

func TestRelease_ClosesLeaseCursor(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 0, 1))

	h, cur, err := p.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Release(h))

	_, err = cur.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, db.ErrClosed)

	_, fresh, err := p.Acquire(ctx)
	require.NoError(t, err)
	assert.NotSame(t, cur, fresh)
	_, err = fresh.Query(ctx, "SELECT 1")
	assert.NoError(t, err)
}

func TestCloseAll(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 1, 2))

	h, cur, err := p.Acquire(ctx)
	require.NoError(t, err)

	require.NoError(t, p.CloseAll())
	require.NoError(t, p.CloseAll(), "close is idempotent")
	assert.True(t, p.Closed())

	_, _, err = p.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.ErrorIs(t, p.Release(h), ErrPoolClosed)

	_, err = cur.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, db.ErrClosed)

	assert.Equal(t, 0, p.Stats().Total)
}

func TestCloseAll_WakesBlockedAcquirers(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t, testConfig(t, 0, 1))

	_, _, err := p.Acquire(ctx)
	require.NoError(t, err)

	const waiters = 3
	errs := make(chan error, waiters)
	var started sync.WaitGroup
	for i := 0; i < waiters; i++ {
		started.Add(1)
		go func() {
			started.Done()
			_, _, err := p.Acquire(ctx)
			errs <- err
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, p.CloseAll())
	for i := 0; i < waiters; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrPoolClosed)
		case <-time.After(2 * time.Second):
			t.Fatal("blocked acquirer was not woken by CloseAll")
		}
	}
}

func TestPool_ConcurrentLeasesAreExclusive(t *testing.T) {
	const (
		maxConns   = 4
		workers    = 16
		iterations = 25
	)
	p := newTestPool(t, testConfig(t, 0, maxConns))

	var (
		mu      sync.Mutex
		holders = map[string]bool{}
		peak    atomic.Int32
		current atomic.Int32
	)

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				h, cur, err := p.Acquire(ctx)
				if err != nil {
					return err
				}

				mu.Lock()
				if holders[h.ID()] {
					mu.Unlock()
					return errors.New("handle " + h.ID() + " leased twice")
				}
				holders[h.ID()] = true
				mu.Unlock()

				n := current.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}

				if _, err := cur.Query(ctx, "SELECT 1"); err != nil {
					return err
				}

				current.Add(-1)
				mu.Lock()
				delete(holders, h.ID())
				mu.Unlock()

				if err := p.Release(h); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	s := p.Stats()
	assert.LessOrEqual(t, int(peak.Load()), maxConns)
	assert.LessOrEqual(t, s.Total, maxConns)
	assert.Equal(t, 0, s.InUse)
	assert.Equal(t, s.Total, s.Idle)
	assert.Equal(t, int64(workers*iterations), s.Acquires)
}

func TestPool_Tracing(t *testing.T) {
	tracer := observability.NewMockTracer()
	p := newTestPool(t, testConfig(t, 0, 1), WithTracer(tracer))

	h, _, err := p.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Release(h))
	assert.Error(t, p.Release(h))

	acquire := tracer.GetSpanByName("sqlkit.pool.acquire")
	require.NotNil(t, acquire)
	assert.Equal(t, h.ID(), acquire.Attributes[observability.AttrHandleID])

	releases := tracer.GetSpansByName("sqlkit.pool.release")
	require.Len(t, releases, 2)
	assert.Equal(t, observability.StatusOK, releases[0].Status.Code)
	assert.Equal(t, observability.StatusError, releases[1].Status.Code)

	inUse := tracer.GetMetrics("sqlkit.pool.in_use")
	require.Len(t, inUse, 2)
	assert.Equal(t, float64(1), inUse[0].Value)
	assert.Equal(t, float64(0), inUse[1].Value)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{Config: db.Config{Driver: "sqlite", DSN: ":memory:"}, MinConns: 1, MaxConns: 2}
	assert.NoError(t, base.Validate())

	bad := base
	bad.AcquireTimeout = -time.Second
	assert.Error(t, bad.Validate())

	bad = base
	bad.Driver = "oracle"
	assert.Error(t, bad.Validate())
}
