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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/teradata-labs/sqlkit/pkg/db"
	"github.com/teradata-labs/sqlkit/pkg/pool"
)

// DefaultConfigFileName is looked up in the working directory, the user
// config directory and /etc/sqlkit.
const DefaultConfigFileName = "sqlkit"

// Config is the merged CLI configuration (file, SQLKIT_* env, flags).
type Config struct {
	Database db.Config     `mapstructure:"database"`
	Pool     PoolConfig    `mapstructure:"pool"`
	Logging  LoggingConfig `mapstructure:"logging"`
	Output   string        `mapstructure:"output"` // yaml, json
	Trace    bool          `mapstructure:"trace"`
}

// PoolConfig holds the pool bounds used by the pool commands.
type PoolConfig struct {
	MinConns       int           `mapstructure:"min_conns"`
	MaxConns       int           `mapstructure:"max_conns"`
	FailFast       bool          `mapstructure:"fail_fast"`
	AcquireTimeout time.Duration `mapstructure:"acquire_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// PoolSettings combines the database and pool sections.
func (c *Config) PoolSettings() pool.Config {
	return pool.Config{
		Config:         c.Database,
		MinConns:       c.Pool.MinConns,
		MaxConns:       c.Pool.MaxConns,
		FailFast:       c.Pool.FailFast,
		AcquireTimeout: c.Pool.AcquireTimeout,
	}
}

// LoadConfig loads configuration from file, environment and bound flags.
func LoadConfig(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(userConfigDir())
		viper.AddConfigPath("/etc/sqlkit/")
		viper.SetConfigName(DefaultConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	// SQLKIT_DATABASE_DSN, SQLKIT_POOL_MAX_CONNS, ...
	viper.SetEnvPrefix("SQLKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Non-fatal: the keyring may be unavailable (headless CI, containers).
	_ = loadSecretsFromKeyring(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks settings that do not depend on the command being run.
func (c *Config) Validate() error {
	switch c.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("unsupported output format %q (want yaml or json)", c.Output)
	}
	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must not be negative")
	}
	return nil
}

// setDefaults sets default configuration values. Every key is registered so
// that AutomaticEnv can override it.
func setDefaults() {
	viper.SetDefault("database.driver", "pgx")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.host", "")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.database", "")
	viper.SetDefault("database.user", "")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.ssl_mode", "require")
	viper.SetDefault("database.schema", "")
	viper.SetDefault("database.autocommit", false)
	viper.SetDefault("database.statement_timeout", "0s")

	viper.SetDefault("pool.min_conns", 1)
	viper.SetDefault("pool.max_conns", 4)
	viper.SetDefault("pool.fail_fast", false)
	viper.SetDefault("pool.acquire_timeout", "30s")

	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.format", "text")

	viper.SetDefault("output", "yaml")
	viper.SetDefault("trace", false)
}

// GenerateExampleConfig returns an annotated sqlkit.yaml.
func GenerateExampleConfig() string {
	return `# sqlkit configuration
# Values can be overridden with SQLKIT_* environment variables
# (e.g. SQLKIT_DATABASE_DSN) or command-line flags.

database:
  # pgx (default), postgres (lib/pq) or sqlite
  driver: pgx

  # Either a full DSN...
  # dsn: postgres://app@localhost:5432/app?sslmode=disable

  # ...or individual fields
  host: localhost
  port: 5432
  database: app
  user: app
  # password: prefer 'sqlkit config set-password' (system keyring)
  ssl_mode: require

  # schema: tenant_a
  autocommit: false
  statement_timeout: 0s

pool:
  min_conns: 1
  max_conns: 4
  fail_fast: false
  acquire_timeout: 30s

logging:
  level: warn   # debug, info, warn, error
  format: text  # text, json

output: yaml    # yaml, json
`
}
