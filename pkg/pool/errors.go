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
)

var (
	// ErrPoolExhausted is returned when no connection became available.
	ErrPoolExhausted = errors.New("sqlkit: connection pool exhausted")

	// ErrInvalidHandle is returned when releasing a handle that is nil,
	// belongs to another pool, or is not checked out.
	ErrInvalidHandle = errors.New("sqlkit: invalid pool handle")

	// ErrPoolClosed is returned by every operation after CloseAll.
	ErrPoolClosed = errors.New("sqlkit: connection pool is closed")
)

// InitError reports that New could not open MinConns connections. Any
// connections that were opened have been closed again.
type InitError struct {
	Want   int
	Opened int
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("sqlkit: pool initialization failed: opened %d of %d connections: %v",
		e.Opened, e.Want, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
