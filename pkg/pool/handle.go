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
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/teradata-labs/sqlkit/pkg/db"
)

// Handle identifies one pooled connection while it is checked out.
type Handle struct {
	id       string
	conn     *sql.Conn
	created  time.Time
	lastUsed time.Time
	usage    int

	// cursor belongs to the current lease; nil while idle.
	cursor *db.Cursor
}

func newHandle(conn *sql.Conn) *Handle {
	now := time.Now()
	return &Handle{
		id:       uuid.New().String(),
		conn:     conn,
		created:  now,
		lastUsed: now,
	}
}

// ID returns the handle's stable identifier.
func (h *Handle) ID() string {
	return h.id
}

// Created returns when the underlying connection was opened.
func (h *Handle) Created() time.Time {
	return h.created
}
