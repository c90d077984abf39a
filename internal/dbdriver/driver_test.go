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
package dbdriver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

func TestDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   sqlbuild.Dialect
	}{
		{"pgx", sqlbuild.Dollar},
		{"", sqlbuild.Dollar},
		{"postgres", sqlbuild.Dollar},
		{"postgresql", sqlbuild.Dollar},
		{"sqlite", sqlbuild.Question},
		{"SQLite3", sqlbuild.Question},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := Dialect(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Dialect("mysql")
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestNormalize(t *testing.T) {
	name, err := Normalize("pq")
	require.NoError(t, err)
	assert.Equal(t, Postgres, name)

	_, err = Normalize("oracle")
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(SQLite, filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(context.Background()))

	var v int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&v))
	assert.Equal(t, 1, v)
}

func TestOpen_SQLiteRejectsSchema(t *testing.T) {
	_, err := Open(SQLite, ":memory:", "public")
	assert.ErrorContains(t, err, "not supported")
}

func TestOpen_PostgresDriversAreLazy(t *testing.T) {
	// Opening does not dial, so an unreachable host is accepted here.
	for _, name := range []string{PGX, Postgres} {
		t.Run(name, func(t *testing.T) {
			db, err := Open(name, "postgres://nobody@127.0.0.1:1/none?sslmode=disable", "tenant")
			require.NoError(t, err)
			assert.NoError(t, db.Close())
		})
	}
}

func TestOpen_InvalidPostgresDSN(t *testing.T) {
	for _, name := range []string{PGX, Postgres} {
		t.Run(name, func(t *testing.T) {
			_, err := Open(name, "postgres://user@localhost:notaport/db", "")
			assert.ErrorContains(t, err, "failed to parse postgres DSN")
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "user@/db", "")
	assert.ErrorContains(t, err, "unsupported driver")
}
