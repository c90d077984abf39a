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
package sqlbuild

import (
	"strconv"
	"strings"

	"github.com/teradata-labs/sqlkit/pkg/ordered"
)

// Dialect selects the positional placeholder syntax of a driver.
type Dialect int

const (
	// Dollar numbers placeholders $1, $2, ... (PostgreSQL).
	Dollar Dialect = iota
	// Question uses ? for every placeholder (SQLite, MySQL).
	Question
)

func (d Dialect) String() string {
	switch d {
	case Dollar:
		return "dollar"
	case Question:
		return "question"
	default:
		return "unknown"
	}
}

// Placeholder returns the placeholder for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Question {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// placeholders returns count comma-separated placeholders numbered from offset+1.
func (d Dialect) placeholders(offset, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = d.Placeholder(offset + i + 1)
	}
	return strings.Join(parts, ", ")
}

// Columns is an insertion-ordered column name to value set.
type Columns = ordered.Map[string, any]

// Col is a single column/value entry for Cols.
func Col(name string, value any) ordered.Pair[string, any] {
	return ordered.Pair[string, any]{Key: name, Value: value}
}

// Cols builds a Columns set in the order given.
func Cols(pairs ...ordered.Pair[string, any]) *Columns {
	return ordered.Of(pairs...)
}

// Fragment is SQL text paired with its positional arguments.
// The number of placeholders in SQL always equals len(Args).
type Fragment struct {
	SQL  string
	Args []any
}
