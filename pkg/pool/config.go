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
	"errors"
	"fmt"
	"time"

	"github.com/teradata-labs/sqlkit/pkg/db"
)

// Config describes the pool. The embedded db.Config selects the database;
// its Autocommit and StatementTimeout fields do not apply to pooled cursors.
type Config struct {
	db.Config `mapstructure:",squash"`

	// MinConns connections are opened by New.
	MinConns int `mapstructure:"min_conns"`

	// MaxConns caps live connections.
	MaxConns int `mapstructure:"max_conns"`

	// FailFast makes Acquire return ErrPoolExhausted instead of waiting.
	FailFast bool `mapstructure:"fail_fast"`

	// AcquireTimeout bounds how long Acquire waits. Zero waits until the
	// context is done.
	AcquireTimeout time.Duration `mapstructure:"acquire_timeout"`
}

// Validate checks pool bounds and the database settings.
func (c Config) Validate() error {
	var errs []error
	if c.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("max_conns must be at least 1 (got %d)", c.MaxConns))
	}
	if c.MinConns < 0 {
		errs = append(errs, fmt.Errorf("min_conns must not be negative (got %d)", c.MinConns))
	}
	if c.MaxConns >= 1 && c.MinConns > c.MaxConns {
		errs = append(errs, fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", c.MinConns, c.MaxConns))
	}
	if c.AcquireTimeout < 0 {
		errs = append(errs, fmt.Errorf("acquire_timeout must not be negative (got %s)", c.AcquireTimeout))
	}
	if err := c.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
