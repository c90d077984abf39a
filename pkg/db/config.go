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
	"fmt"
	"time"

	"github.com/teradata-labs/sqlkit/internal/dbdriver"
)

// Config describes how to reach the database.
type Config struct {
	// Driver is one of "pgx" (default), "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`

	// DSN is passed to the driver as-is and takes precedence over the
	// individual connection fields below.
	DSN string `mapstructure:"dsn"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`

	// Schema sets the PostgreSQL search_path for every session.
	Schema string `mapstructure:"schema"`

	// Autocommit runs every statement in its own transaction. When false,
	// statements share a transaction until it is committed or rolled back.
	Autocommit bool `mapstructure:"autocommit"`

	// StatementTimeout bounds each operation. Zero means no timeout.
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// DriverName returns the canonical driver name.
func (c Config) DriverName() (string, error) {
	return dbdriver.Normalize(c.Driver)
}

// ResolveDSN returns the DSN, building a libpq keyword/value string from the
// individual fields when DSN is empty.
func (c Config) ResolveDSN() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	driverName, err := c.DriverName()
	if err != nil {
		return "", err
	}
	if driverName == dbdriver.SQLite {
		return "", fmt.Errorf("sqlite driver requires a dsn (database file path or :memory:)")
	}

	dsn := dbdriver.BuildDSN(dbdriver.Endpoint{
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		User:     c.User,
		Password: c.Password,
		SSLMode:  c.SSLMode,
	})
	if dsn == "" {
		return "", fmt.Errorf("postgres configuration requires either dsn or host+database")
	}
	return dsn, nil
}

// Validate checks the configuration without connecting.
func (c Config) Validate() error {
	if _, err := c.DriverName(); err != nil {
		return err
	}
	if _, err := c.ResolveDSN(); err != nil {
		return err
	}
	if c.StatementTimeout < 0 {
		return fmt.Errorf("statement_timeout must not be negative (got %s)", c.StatementTimeout)
	}
	return nil
}
