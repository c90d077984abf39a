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

// Package observability provides lightweight tracing and metrics hooks for
// sqlkit operations.
//
// Every statement executed through a db.Conn and every pool acquire/release
// runs inside a span. The default tracer is a no-op; LogTracer reports spans
// through zap, and MockTracer captures them for tests.
//
// Example usage:
//
//	ctx, span := tracer.StartSpan(ctx, "sqlkit.conn.select")
//	defer tracer.EndSpan(span)
//	span.SetAttribute(AttrTable, "users")
package observability

import "context"

// Tracer instruments sqlkit operations.
//
// Thread-safe: All methods can be called concurrently.
type Tracer interface {
	// StartSpan creates a new span and returns a context containing it.
	// The span is linked to its parent via context propagation.
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span)

	// EndSpan completes a span and calculates its duration.
	// Always call this via defer after StartSpan.
	EndSpan(span *Span)

	// RecordMetric records a point-in-time metric value with labels
	// (pool sizes, rows returned).
	RecordMetric(name string, value float64, labels map[string]string)
}

// SpanFromContext retrieves the current span from context, if any.
func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey).(*Span); ok {
		return span
	}
	return nil
}

// ContextWithSpan returns a new context with the span attached.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanContextKey, span)
}

type contextKey string

const spanContextKey contextKey = "sqlkit.span"
