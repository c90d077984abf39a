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

// Package pool shares a bounded set of database connections between
// goroutines.
//
// Acquire hands out a Handle together with a fresh db.Cursor bound to the
// handle's connection; Release returns the handle to the idle set and closes
// that cursor. Idle handles are reused before new connections are opened,
// and the number of live connections never exceeds MaxConns.
//
// When every connection is checked out, Acquire blocks until a handle is
// released, the context is done, AcquireTimeout expires (ErrPoolExhausted)
// or the pool is closed (ErrPoolClosed). With FailFast set it returns
// ErrPoolExhausted immediately instead.
//
// Statements run through a pooled cursor execute in the database's
// autocommit mode. The pool offers no CRUD helpers; use db.Conn for those.
package pool
