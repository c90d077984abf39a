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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyColumns is returned when INSERT or UPDATE data has no columns.
	ErrEmptyColumns = errors.New("column set is empty")

	// ErrInvalidLimit is returned for a negative LIMIT.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Builder builds CRUD statements for one dialect.
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	dialect  Dialect
	validate func(name string) error
}

// Option configures a Builder.
type Option func(*Builder)

// WithIdentifierValidator rejects table, column and field names for which fn
// returns an error. The error is wrapped with ErrInvalidIdentifier.
func WithIdentifierValidator(fn func(name string) error) Option {
	return func(b *Builder) {
		b.validate = fn
	}
}

// New creates a Builder. Without options identifiers are not validated.
func New(d Dialect, opts ...Option) *Builder {
	b := &Builder{dialect: d}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dialect returns the builder's placeholder dialect.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// SelectQuery describes a SELECT. Zero values mean: all fields, no filter,
// no ordering, no limit.
type SelectQuery struct {
	Fields []string
	Where  *Columns
	Order  string // raw ORDER BY expression, interpolated unvalidated
	Limit  int
}

// Insert builds "INSERT INTO table (cols) VALUES (...) RETURNING *".
func (b *Builder) Insert(table string, data *Columns) (Fragment, error) {
	if data.Len() == 0 {
		return Fragment{}, fmt.Errorf("insert into %s: %w", table, ErrEmptyColumns)
	}
	if err := b.check(table, data.Keys()...); err != nil {
		return Fragment{}, err
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(data.Keys(), ", "), b.dialect.placeholders(0, data.Len()))

	return Fragment{SQL: sql, Args: data.Values()}, nil
}

// Select builds "SELECT fields FROM table [WHERE ...] [ORDER BY ...] [LIMIT n]".
func (b *Builder) Select(table string, q SelectQuery) (Fragment, error) {
	if q.Limit < 0 {
		return Fragment{}, fmt.Errorf("select from %s: %w (got %d)", table, ErrInvalidLimit, q.Limit)
	}
	if err := b.check(table, q.Fields...); err != nil {
		return Fragment{}, err
	}
	if err := b.check("", q.Where.Keys()...); err != nil {
		return Fragment{}, err
	}

	fields := "*"
	if len(q.Fields) > 0 {
		fields = strings.Join(q.Fields, ", ")
	}

	whereSQL, args := Where(b.dialect, q.Where, 0)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(fields)
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	sb.WriteString(whereSQL)
	if q.Order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.Order)
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.Limit))
	}

	return Fragment{SQL: sb.String(), Args: args}, nil
}

// Update builds "UPDATE table SET c = ?, ... [WHERE ...] RETURNING *".
// Arguments are the data values followed by the where values. An empty where
// set updates every row.
func (b *Builder) Update(table string, data, where *Columns) (Fragment, error) {
	if data.Len() == 0 {
		return Fragment{}, fmt.Errorf("update %s: %w", table, ErrEmptyColumns)
	}
	if err := b.check(table, data.Keys()...); err != nil {
		return Fragment{}, err
	}
	if err := b.check("", where.Keys()...); err != nil {
		return Fragment{}, err
	}

	sets := make([]string, 0, data.Len())
	for i, col := range data.Keys() {
		sets = append(sets, col+" = "+b.dialect.Placeholder(i+1))
	}
	whereSQL, whereArgs := Where(b.dialect, where, data.Len())

	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", table, strings.Join(sets, ", "), whereSQL)

	return Fragment{SQL: sql, Args: append(data.Values(), whereArgs...)}, nil
}

// Delete builds "DELETE FROM table [WHERE ...] RETURNING *". An empty where
// set deletes every row.
func (b *Builder) Delete(table string, where *Columns) (Fragment, error) {
	if err := b.check(table, where.Keys()...); err != nil {
		return Fragment{}, err
	}

	whereSQL, args := Where(b.dialect, where, 0)
	return Fragment{SQL: "DELETE FROM " + table + whereSQL + " RETURNING *", Args: args}, nil
}

// check runs the identifier validator over a table name (skipped when empty)
// and column names.
func (b *Builder) check(table string, columns ...string) error {
	if b.validate == nil {
		return nil
	}
	if table != "" {
		if err := b.validate(table); err != nil {
			return wrapIdentifierErr("table", table, err)
		}
	}
	for _, col := range columns {
		if err := b.validate(col); err != nil {
			return wrapIdentifierErr("column", col, err)
		}
	}
	return nil
}

func wrapIdentifierErr(kind, name string, err error) error {
	if errors.Is(err, ErrInvalidIdentifier) {
		return fmt.Errorf("%s %q: %w", kind, name, err)
	}
	return fmt.Errorf("%s %q: %w: %w", kind, name, ErrInvalidIdentifier, err)
}
