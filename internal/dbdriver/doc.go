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

// Package dbdriver is the boundary between sqlkit and database/sql drivers.
//
// It registers the supported drivers, maps each one to its placeholder
// dialect, builds libpq connection strings from discrete settings and
// classifies driver errors into connectivity failures and statement failures.
//
// Supported drivers:
//
//	pgx       PostgreSQL via github.com/jackc/pgx/v5/stdlib (default)
//	postgres  PostgreSQL via github.com/lib/pq
//	sqlite    SQLite via modernc.org/sqlite (pure Go, needs 3.35+ for RETURNING)
package dbdriver
