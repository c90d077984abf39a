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
package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teradata-labs/sqlkit/internal/log"
	"github.com/teradata-labs/sqlkit/pkg/pool"
)

type checkOptions struct {
	workers    int
	iterations int
	query      string
}

// checkReport summarizes a pool check run.
type checkReport struct {
	Workers    int        `json:"workers" yaml:"workers"`
	Iterations int        `json:"iterations" yaml:"iterations"`
	Statements int64      `json:"statements" yaml:"statements"`
	Elapsed    string     `json:"elapsed" yaml:"elapsed"`
	Stats      pool.Stats `json:"stats" yaml:"stats"`
}

var checkOpts checkOptions

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Inspect and exercise a connection pool",
}

var poolStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Open a pool and print its statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPoolStats(cmd.Context(), cmd.OutOrStdout(), config)
	},
}

var poolCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a statement from concurrent workers through a pool",
	Long: `Start --workers goroutines that each acquire a connection, run --query and
release the connection --iterations times. Fails on the first error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPoolCheck(cmd.Context(), cmd.OutOrStdout(), config, checkOpts)
	},
}

func init() {
	poolCmd.PersistentFlags().Int("min-conns", 1, "connections opened up front")
	poolCmd.PersistentFlags().Int("max-conns", 4, "maximum live connections")
	poolCmd.PersistentFlags().Bool("fail-fast", false, "fail instead of waiting when the pool is exhausted")
	poolCmd.PersistentFlags().Duration("acquire-timeout", 30*time.Second, "maximum wait for a connection (0 = no limit)")

	poolCheckCmd.Flags().IntVar(&checkOpts.workers, "workers", 8, "concurrent workers")
	poolCheckCmd.Flags().IntVar(&checkOpts.iterations, "iterations", 10, "statements per worker")
	poolCheckCmd.Flags().StringVar(&checkOpts.query, "query", "SELECT 1", "statement each worker runs")

	poolCmd.AddCommand(poolStatsCmd, poolCheckCmd)
	rootCmd.AddCommand(poolCmd)
}

func runPoolStats(ctx context.Context, w io.Writer, cfg *Config) error {
	p, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.CloseAll() }()

	return render(w, cfg.Output, p.Stats())
}

func runPoolCheck(ctx context.Context, w io.Writer, cfg *Config, opts checkOptions) error {
	if opts.workers < 1 || opts.iterations < 1 {
		return fmt.Errorf("--workers and --iterations must be at least 1")
	}

	p, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.CloseAll() }()

	var statements atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.workers; i++ {
		g.Go(func() error {
			for j := 0; j < opts.iterations; j++ {
				h, cur, err := p.Acquire(gctx)
				if err != nil {
					return fmt.Errorf("worker %d: %w", i, err)
				}
				_, err = cur.Query(gctx, opts.query)
				if releaseErr := p.Release(h); releaseErr != nil && err == nil {
					err = releaseErr
				}
				if err != nil {
					return fmt.Errorf("worker %d: %w", i, err)
				}
				statements.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	log.Info("pool check complete",
		zap.Int64("statements", statements.Load()),
		zap.Duration("elapsed", elapsed))

	return render(w, cfg.Output, checkReport{
		Workers:    opts.workers,
		Iterations: opts.iterations,
		Statements: statements.Load(),
		Elapsed:    elapsed.Round(time.Millisecond).String(),
		Stats:      p.Stats(),
	})
}
