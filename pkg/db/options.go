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
	"go.uber.org/zap"

	"github.com/teradata-labs/sqlkit/pkg/observability"
	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// Option configures Open.
type Option func(*options)

type options struct {
	tracer   observability.Tracer
	logger   *zap.Logger
	validate func(name string) error
}

// WithTracer sets the tracer receiving one span per operation.
func WithTracer(t observability.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithLogger sets the logger. Statements are logged at debug level without
// their argument values.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIdentifierValidator checks every table and column name before a
// statement is built. sqlbuild.SimpleIdentifier is a ready-made validator.
func WithIdentifierValidator(fn func(name string) error) Option {
	return func(o *options) {
		o.validate = fn
	}
}

func (o options) builderOptions() []sqlbuild.Option {
	if o.validate == nil {
		return nil
	}
	return []sqlbuild.Option{sqlbuild.WithIdentifierValidator(o.validate)}
}

// SelectOption narrows a Select.
type SelectOption func(*sqlbuild.SelectQuery)

// Fields selects the named columns instead of *.
func Fields(names ...string) SelectOption {
	return func(q *sqlbuild.SelectQuery) {
		q.Fields = append(q.Fields, names...)
	}
}

// Where restricts the rows to those matching every column by equality.
func Where(cols *sqlbuild.Columns) SelectOption {
	return func(q *sqlbuild.SelectQuery) {
		q.Where = cols
	}
}

// Limit caps the number of rows. Zero means no limit.
func Limit(n int) SelectOption {
	return func(q *sqlbuild.SelectQuery) {
		q.Limit = n
	}
}

// OrderBy appends an ORDER BY clause. The expression is inserted verbatim
// and must never come from untrusted input.
func OrderBy(expr string) SelectOption {
	return func(q *sqlbuild.SelectQuery) {
		q.Order = expr
	}
}
