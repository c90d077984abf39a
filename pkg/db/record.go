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
package db

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Record is one result row: column names in result-set order paired with
// their values. Duplicate column names (e.g. from a join) are kept.
// BYTEA and BLOB columns, and untyped SQLite expressions, yield []byte;
// character data always yields string.
type Record struct {
	columns []string
	values  []any
}

// NewRecord pairs columns with values. Extra values or columns are dropped.
func NewRecord(columns []string, values []any) Record {
	n := min(len(columns), len(values))
	return Record{
		columns: append([]string(nil), columns[:n]...),
		values:  append([]any(nil), values[:n]...),
	}
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Values returns the values in column order.
func (r Record) Values() []any {
	return append([]any(nil), r.values...)
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Get returns the value of the first column with the given name.
func (r Record) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// Value is Get without the presence flag.
func (r Record) Value(column string) any {
	v, _ := r.Get(column)
	return v
}

// Map returns the record as a plain map. When a column name repeats, the
// last value wins.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// ToColumns converts the record into a column set usable as Insert data or
// as a WHERE constraint.
func (r Record) ToColumns() *sqlbuild.Columns {
	cols := sqlbuild.Cols()
	for i, c := range r.columns {
		cols.Set(c, r.values[i])
	}
	return cols
}

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping with keys in column order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, c := range r.columns {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c}
		val, err := yamlValue(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	if b, ok := v.([]byte); ok {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(b),
		}, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

// Result is the outcome of a raw statement. Statements that produce no
// result set (DDL, plain DML) yield a Result with HasResultSet false.
type Result struct {
	columns      []string
	records      []Record
	hasResultSet bool
}

// HasResultSet reports whether the statement produced rows, even zero.
func (r *Result) HasResultSet() bool {
	return r != nil && r.hasResultSet
}

// Columns returns the result-set column names.
func (r *Result) Columns() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.columns...)
}

// Records returns the rows. It is never nil.
func (r *Result) Records() []Record {
	if r == nil || r.records == nil {
		return []Record{}
	}
	return r.records
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// First returns the first row, if any.
func (r *Result) First() (Record, bool) {
	if r.Len() == 0 {
		return Record{}, false
	}
	return r.records[0], true
}
