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

// Package db wraps one database session with parameterized CRUD helpers.
//
// A Conn owns exactly one physical connection and one Cursor. Insert, Select,
// Update and Delete build their SQL with package sqlbuild, so values are
// always bound as parameters while table names, column names and ORDER BY
// expressions are interpolated as given (see the sqlbuild package docs for
// the trust boundary). Rows come back as Records whose column order follows
// the result set.
//
// Transactions: unless Config.Autocommit is set, the first statement opens a
// transaction that stays open until Commit, Rollback, a mutating helper
// (which commits before returning) or Close (which rolls back). A statement
// that fails rolls the pending transaction back before the error is
// returned; nothing is ever committed after a failure.
//
// Empty WHERE sets are not an error: Update and Delete without constraints
// touch every row in the table.
//
// A Conn is not safe for concurrent use. Use package pool to share
// connections between goroutines.
//
// Usage:
//
//	conn, err := db.Open(ctx, db.Config{Driver: "pgx", DSN: dsn})
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	rec, err := conn.Insert(ctx, "users", sqlbuild.Cols(
//		sqlbuild.Col("name", "alice"),
//		sqlbuild.Col("age", 30),
//	))
package db
