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
	"fmt"
	"strings"
)

// Endpoint holds discrete PostgreSQL connection settings.
type Endpoint struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// BuildDSN constructs a libpq keyword/value connection string. Port defaults
// to 5432 and sslmode to "require". Returns "" if host or database is missing.
// Values are single-quoted to handle spaces, @, = and quotes. See:
// https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-CONNSTRING
func BuildDSN(ep Endpoint) string {
	if ep.Host == "" || ep.Database == "" {
		return ""
	}

	port := ep.Port
	if port == 0 {
		port = 5432
	}

	sslMode := ep.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		dsnQuoteValue(ep.Host), port, dsnQuoteValue(ep.Database), dsnQuoteValue(sslMode))

	if ep.User != "" {
		dsn += fmt.Sprintf(" user=%s", dsnQuoteValue(ep.User))
	}
	if ep.Password != "" {
		dsn += fmt.Sprintf(" password=%s", dsnQuoteValue(ep.Password))
	}

	return dsn
}

// dsnQuoteValue quotes a value for a libpq keyword/value connection string.
// Backslashes and single quotes inside the value are escaped with a backslash.
func dsnQuoteValue(val string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(val)
	return "'" + escaped + "'"
}
