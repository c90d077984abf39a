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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN_WithIndividualFields(t *testing.T) {
	dsn := BuildDSN(Endpoint{
		Host:     "db.example.com",
		Port:     5433,
		Database: "sqlkit",
		User:     "app",
		Password: "secret",
		SSLMode:  "verify-full",
	})
	assert.Contains(t, dsn, "host='db.example.com'")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname='sqlkit'")
	assert.Contains(t, dsn, "user='app'")
	assert.Contains(t, dsn, "password='secret'")
	assert.Contains(t, dsn, "sslmode='verify-full'")
}

func TestBuildDSN_Defaults(t *testing.T) {
	dsn := BuildDSN(Endpoint{Host: "localhost", Database: "testdb"})
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "sslmode='require'")
	assert.NotContains(t, dsn, "user=")
	assert.NotContains(t, dsn, "password=")
}

func TestBuildDSN_MissingRequiredFields(t *testing.T) {
	assert.Empty(t, BuildDSN(Endpoint{}), "empty endpoint should return empty DSN")
	assert.Empty(t, BuildDSN(Endpoint{Host: "localhost"}), "missing database should return empty DSN")
	assert.Empty(t, BuildDSN(Endpoint{Database: "db"}), "missing host should return empty DSN")
}

func TestBuildDSN_QuotesSpecialCharacters(t *testing.T) {
	dsn := BuildDSN(Endpoint{Host: "localhost", Database: "db", Password: `p@ss w'rd\x`})
	assert.Contains(t, dsn, `password='p@ss w\'rd\\x'`)
}

func TestWithSearchPath(t *testing.T) {
	dsn, err := withSearchPath("postgres://u@localhost:5432/db?sslmode=disable", "tenant_a")
	assert.NoError(t, err)
	assert.Contains(t, dsn, "search_path=tenant_a")
	assert.Contains(t, dsn, "sslmode=disable")

	dsn, err = withSearchPath("host=localhost dbname=db", "tenant_a")
	assert.NoError(t, err)
	assert.Equal(t, "host=localhost dbname=db search_path='tenant_a'", dsn)
}
