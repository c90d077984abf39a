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
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teradata-labs/sqlkit/pkg/db"
)

type selectOptions struct {
	fields  []string
	where   []string
	limit   int
	orderBy string
}

type updateOptions struct {
	set   []string
	where []string
	all   bool
}

type deleteOptions struct {
	where []string
	all   bool
}

type queryOptions struct {
	dryRun bool
}

// queryStatus is printed for statements without a result set.
type queryStatus struct {
	ResultSet bool `json:"result_set" yaml:"result_set"`
	Committed bool `json:"committed" yaml:"committed"`
}

var (
	selectOpts selectOptions
	updateOpts updateOptions
	deleteOpts deleteOptions
	queryOpts  queryOptions
)

var queryCmd = &cobra.Command{
	Use:   "query SQL [ARG...]",
	Short: "Run a raw SQL statement",
	Long: `Run a raw SQL statement with positional parameters ($1 for PostgreSQL,
? for SQLite). Arguments are parsed as YAML scalars: 42, 1.5, true and null
are typed, 'quoted' text is always a string.

The statement is committed unless --dry-run is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), cmd.OutOrStdout(), config, args[0], args[1:], queryOpts)
	},
}

var selectCmd = &cobra.Command{
	Use:   "select TABLE",
	Short: "Select rows from a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd.Context(), cmd.OutOrStdout(), config, args[0], selectOpts)
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert TABLE NAME=VALUE...",
	Short: "Insert one row and print it as stored",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInsert(cmd.Context(), cmd.OutOrStdout(), config, args[0], args[1:])
	},
}

var updateCmd = &cobra.Command{
	Use:   "update TABLE --set NAME=VALUE... [--where NAME=VALUE...]",
	Short: "Update matching rows and print them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd.Context(), cmd.OutOrStdout(), config, args[0], updateOpts)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete TABLE [--where NAME=VALUE...]",
	Short: "Delete matching rows and print them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd.Context(), cmd.OutOrStdout(), config, args[0], deleteOpts)
	},
}

// errUnconstrained guards whole-table updates and deletes typed by hand.
var errUnconstrained = errors.New("no --where given; pass --all to affect every row")

func init() {
	queryCmd.Flags().BoolVar(&queryOpts.dryRun, "dry-run", false, "roll back instead of committing")

	selectCmd.Flags().StringSliceVarP(&selectOpts.fields, "field", "f", nil, "column to return (repeatable, default all)")
	selectCmd.Flags().StringArrayVarP(&selectOpts.where, "where", "w", nil, "equality constraint NAME=VALUE (repeatable)")
	selectCmd.Flags().IntVarP(&selectOpts.limit, "limit", "l", 0, "maximum rows (0 = no limit)")
	selectCmd.Flags().StringVar(&selectOpts.orderBy, "order-by", "", "ORDER BY expression (inserted verbatim)")

	updateCmd.Flags().StringArrayVarP(&updateOpts.set, "set", "s", nil, "assignment NAME=VALUE (repeatable)")
	updateCmd.Flags().StringArrayVarP(&updateOpts.where, "where", "w", nil, "equality constraint NAME=VALUE (repeatable)")
	updateCmd.Flags().BoolVar(&updateOpts.all, "all", false, "allow updating every row")
	_ = updateCmd.MarkFlagRequired("set")

	deleteCmd.Flags().StringArrayVarP(&deleteOpts.where, "where", "w", nil, "equality constraint NAME=VALUE (repeatable)")
	deleteCmd.Flags().BoolVar(&deleteOpts.all, "all", false, "allow deleting every row")

	rootCmd.AddCommand(queryCmd, selectCmd, insertCmd, updateCmd, deleteCmd)
}

func runQuery(ctx context.Context, w io.Writer, cfg *Config, sql string, rawArgs []string, opts queryOptions) error {
	conn, err := openConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	res, err := conn.Query(ctx, sql, parseArgs(rawArgs)...)
	if err != nil {
		return err
	}

	committed := false
	if opts.dryRun {
		err = conn.Rollback()
	} else {
		err = conn.Commit()
		committed = err == nil
	}
	if err != nil {
		return err
	}

	if !res.HasResultSet() {
		return render(w, cfg.Output, queryStatus{ResultSet: false, Committed: committed})
	}
	return render(w, cfg.Output, res.Records())
}

func runSelect(ctx context.Context, w io.Writer, cfg *Config, table string, opts selectOptions) error {
	where, err := parseAssignments(opts.where)
	if err != nil {
		return err
	}

	conn, err := openConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	sel := []db.SelectOption{db.Where(where), db.Limit(opts.limit)}
	if len(opts.fields) > 0 {
		sel = append(sel, db.Fields(opts.fields...))
	}
	if opts.orderBy != "" {
		sel = append(sel, db.OrderBy(opts.orderBy))
	}

	rows, err := conn.Select(ctx, table, sel...)
	if err != nil {
		return err
	}
	return render(w, cfg.Output, rows)
}

func runInsert(ctx context.Context, w io.Writer, cfg *Config, table string, assignments []string) error {
	data, err := parseAssignments(assignments)
	if err != nil {
		return err
	}

	conn, err := openConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	rec, err := conn.Insert(ctx, table, data)
	if err != nil {
		return err
	}
	return render(w, cfg.Output, rec)
}

func runUpdate(ctx context.Context, w io.Writer, cfg *Config, table string, opts updateOptions) error {
	data, err := parseAssignments(opts.set)
	if err != nil {
		return err
	}
	where, err := parseAssignments(opts.where)
	if err != nil {
		return err
	}
	if where.Len() == 0 && !opts.all {
		return fmt.Errorf("update %s: %w", table, errUnconstrained)
	}

	conn, err := openConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.Update(ctx, table, data, where)
	if err != nil {
		return err
	}
	return render(w, cfg.Output, rows)
}

func runDelete(ctx context.Context, w io.Writer, cfg *Config, table string, opts deleteOptions) error {
	where, err := parseAssignments(opts.where)
	if err != nil {
		return err
	}
	if where.Len() == 0 && !opts.all {
		return fmt.Errorf("delete from %s: %w", table, errUnconstrained)
	}

	conn, err := openConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.Delete(ctx, table, where)
	if err != nil {
		return err
	}
	return render(w, cfg.Output, rows)
}
