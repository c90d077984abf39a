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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teradata-labs/sqlkit/internal/log"
	"github.com/teradata-labs/sqlkit/internal/version"
	"github.com/teradata-labs/sqlkit/pkg/db"
	"github.com/teradata-labs/sqlkit/pkg/observability"
	"github.com/teradata-labs/sqlkit/pkg/pool"
	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

var (
	cfgFile string
	config  *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "sqlkit",
	Short:   "sqlkit - parameterized CRUD against PostgreSQL and SQLite",
	Long:    `sqlkit runs parameterized INSERT/SELECT/UPDATE/DELETE statements and raw SQL against PostgreSQL (pgx or lib/pq) or SQLite, and exercises connection pools.`,
	Version: version.Get(),

	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlkit.yaml)")

	// Database flags
	rootCmd.PersistentFlags().String("driver", "pgx", "database driver (pgx, postgres, sqlite)")
	rootCmd.PersistentFlags().String("dsn", "", "connection string (overrides host/port/database/user)")
	rootCmd.PersistentFlags().String("host", "", "database host")
	rootCmd.PersistentFlags().Int("port", 5432, "database port")
	rootCmd.PersistentFlags().String("database", "", "database name")
	rootCmd.PersistentFlags().String("user", "", "database user")
	rootCmd.PersistentFlags().String("password", "", "database password (or use keyring/env)")
	rootCmd.PersistentFlags().String("ssl-mode", "require", "PostgreSQL sslmode")
	rootCmd.PersistentFlags().String("schema", "", "PostgreSQL search_path schema")
	rootCmd.PersistentFlags().Bool("autocommit", false, "run every statement in its own transaction")
	rootCmd.PersistentFlags().Duration("statement-timeout", 0, "per-statement timeout (0 = none)")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	// Output flags
	rootCmd.PersistentFlags().StringP("output", "o", "yaml", "output format (yaml, json)")
	rootCmd.PersistentFlags().Bool("trace", false, "log a span for every operation")
}

// bindFlags maps flags onto config keys. It runs before every command so
// bindings survive a viper reset.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("database.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("database.dsn", flags.Lookup("dsn"))
	_ = viper.BindPFlag("database.host", flags.Lookup("host"))
	_ = viper.BindPFlag("database.port", flags.Lookup("port"))
	_ = viper.BindPFlag("database.database", flags.Lookup("database"))
	_ = viper.BindPFlag("database.user", flags.Lookup("user"))
	_ = viper.BindPFlag("database.password", flags.Lookup("password"))
	_ = viper.BindPFlag("database.ssl_mode", flags.Lookup("ssl-mode"))
	_ = viper.BindPFlag("database.schema", flags.Lookup("schema"))
	_ = viper.BindPFlag("database.autocommit", flags.Lookup("autocommit"))
	_ = viper.BindPFlag("database.statement_timeout", flags.Lookup("statement-timeout"))

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))

	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("trace", flags.Lookup("trace"))

	poolFlags := poolCmd.PersistentFlags()
	_ = viper.BindPFlag("pool.min_conns", poolFlags.Lookup("min-conns"))
	_ = viper.BindPFlag("pool.max_conns", poolFlags.Lookup("max-conns"))
	_ = viper.BindPFlag("pool.fail_fast", poolFlags.Lookup("fail-fast"))
	_ = viper.BindPFlag("pool.acquire_timeout", poolFlags.Lookup("acquire-timeout"))
}

// initConfig reads in config file and ENV variables and configures logging.
func initConfig(cmd *cobra.Command, args []string) error {
	bindFlags()

	c, err := LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := log.Configure(c.Logging.Level, c.Logging.Format); err != nil {
		return err
	}
	config = c
	return nil
}

func tracerFor(cfg *Config) observability.Tracer {
	if cfg.Trace {
		return observability.NewLogTracer(log.Logger())
	}
	return observability.NewNoOpTracer()
}

// openConn opens a single connection. Table and column names supplied on
// the command line are restricted to plain identifiers.
func openConn(ctx context.Context, cfg *Config) (*db.Conn, error) {
	return db.Open(ctx, cfg.Database,
		db.WithTracer(tracerFor(cfg)),
		db.WithLogger(log.Logger()),
		db.WithIdentifierValidator(sqlbuild.SimpleIdentifier))
}

func openPool(ctx context.Context, cfg *Config) (*pool.Pool, error) {
	return pool.New(ctx, cfg.PoolSettings(),
		pool.WithTracer(tracerFor(cfg)),
		pool.WithLogger(log.Logger()))
}
