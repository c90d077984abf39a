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

// Package sqlbuild turns ordered column/value sets into parameterized SQL.
//
// Only values are ever bound as parameters. Table names, column names, select
// field lists and ORDER BY expressions are interpolated into the statement
// text as given: they are trusted input, and passing untrusted identifiers is
// an SQL injection risk. Builders can be configured with an identifier
// validator (see WithIdentifierValidator and SimpleIdentifier) to reject
// anything that is not a plain identifier. ORDER BY expressions are never
// validated.
//
// WHERE clauses support equality joined with AND only. Anything else
// (inequalities, IN, IS NULL, OR, joins) belongs in raw SQL.
//
// Usage:
//
//	b := sqlbuild.New(sqlbuild.Dollar)
//	f, err := b.Select("users", sqlbuild.SelectQuery{
//		Where: sqlbuild.Cols(sqlbuild.Col("status", "active")),
//		Order: "created_at DESC",
//		Limit: 10,
//	})
//	// f.SQL  == "SELECT * FROM users WHERE status = $1 ORDER BY created_at DESC LIMIT 10"
//	// f.Args == []any{"active"}
package sqlbuild
