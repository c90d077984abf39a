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
package dbdriver

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Driver names accepted by Open.
const (
	PGX      = "pgx"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// DefaultDriver is used when no driver is configured.
const DefaultDriver = PGX

// Supported returns the supported driver names.
func Supported() []string {
	return []string{PGX, Postgres, SQLite}
}

// Dialect returns the placeholder dialect for a driver.
func Dialect(driverName string) (sqlbuild.Dialect, error) {
	switch normalize(driverName) {
	case PGX, Postgres:
		return sqlbuild.Dollar, nil
	case SQLite:
		return sqlbuild.Question, nil
	default:
		return 0, unsupported(driverName)
	}
}

// Open returns a *sql.DB for the driver. It does not connect; callers ping or
// pin a connection to verify reachability. When schema is set, every new
// PostgreSQL session starts with that search_path.
func Open(driverName, dsn, schema string) (*sql.DB, error) {
	switch normalize(driverName) {
	case PGX:
		connCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
		}
		var opts []stdlib.OptionOpenDB
		if schema != "" {
			opts = append(opts, stdlib.OptionAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
				_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
				return err
			}))
		}
		return stdlib.OpenDB(*connCfg, opts...), nil

	case Postgres:
		if schema != "" {
			var err error
			if dsn, err = withSearchPath(dsn, schema); err != nil {
				return nil, err
			}
		}
		connector, err := pq.NewConnector(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
		}
		return sql.OpenDB(connector), nil

	case SQLite:
		if schema != "" {
			return nil, fmt.Errorf("schema %q: search_path is not supported by the sqlite driver", schema)
		}
		db, err := sql.Open(SQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil

	default:
		return nil, unsupported(driverName)
	}
}

// withSearchPath adds a search_path run-time parameter to a lib/pq DSN in
// either URL or keyword/value form.
func withSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("failed to parse postgres DSN: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return strings.TrimSpace(dsn + " search_path=" + dsnQuoteValue(schema)), nil
}

func normalize(driverName string) string {
	name := strings.ToLower(strings.TrimSpace(driverName))
	switch name {
	case "":
		return DefaultDriver
	case "postgresql", "pq":
		return Postgres
	case "sqlite3":
		return SQLite
	}
	return name
}

// Normalize returns the canonical name for a driver alias.
func Normalize(driverName string) (string, error) {
	name := normalize(driverName)
	for _, s := range Supported() {
		if s == name {
			return name, nil
		}
	}
	return "", unsupported(driverName)
}

func unsupported(driverName string) error {
	return fmt.Errorf("unsupported driver: %q (supported: %s)", driverName, strings.Join(Supported(), ", "))
}
