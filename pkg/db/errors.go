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
	"errors"
	"fmt"

	"github.com/teradata-labs/sqlkit/internal/dbdriver"
	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

var (
	// ErrClosed is returned by every operation on a closed Conn or Cursor.
	ErrClosed = errors.New("sqlkit: connection is closed")

	// ErrEmptyInput is returned when Insert or Update receive no columns.
	ErrEmptyInput = errors.New("sqlkit: empty input")
)

// QueryError reports a statement the engine rejected: syntax errors,
// constraint violations, unknown tables or columns, type mismatches.
type QueryError struct {
	Op      string // insert, select, update, delete, query, exec, commit, rollback
	SQL     string
	Code    string // SQLSTATE or SQLite result code, empty if unknown
	Message string // the engine's message
	Err     error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("sqlkit: %s failed (%s): %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("sqlkit: %s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ConnectivityError reports a session that was lost or could not be
// established.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("sqlkit: %s: connection unavailable: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// classify wraps a driver error as a ConnectivityError or QueryError.
// Cancellation, deadline expiry and sqlkit's own sentinel errors pass
// through unchanged.
func classify(op, sql string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var qe *QueryError
	var ce *ConnectivityError
	if errors.As(err, &qe) || errors.As(err, &ce) {
		return err
	}
	if dbdriver.IsConnectivity(err) {
		return &ConnectivityError{Op: op, Err: err}
	}
	code, msg := dbdriver.Detail(err)
	return &QueryError{Op: op, SQL: sql, Code: code, Message: msg, Err: err}
}

// inputError maps builder errors onto the package's error vocabulary.
func inputError(err error) error {
	if errors.Is(err, sqlbuild.ErrEmptyColumns) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	return err
}
