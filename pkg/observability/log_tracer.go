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
package observability

import (
	"context"

	"go.uber.org/zap"
)

// LogTracer reports finished spans and metrics through a zap logger at debug
// level. Failed spans are logged at warn level.
type LogTracer struct {
	logger *zap.Logger
}

// NewLogTracer creates a tracer that logs to logger.
func NewLogTracer(logger *zap.Logger) *LogTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogTracer{logger: logger}
}

// StartSpan creates a span linked to any parent in ctx.
func (t *LogTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	span := newSpan(name, opts)
	if parent := SpanFromContext(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	}
	return ContextWithSpan(ctx, span), span
}

// EndSpan completes the span and logs it.
func (t *LogTracer) EndSpan(span *Span) {
	if span == nil {
		return
	}
	span.finish()

	fields := make([]zap.Field, 0, len(span.Attributes)+3)
	fields = append(fields,
		zap.String("span", span.Name),
		zap.String("trace_id", span.TraceID),
		zap.Duration("duration", span.Duration),
	)
	for k, v := range span.Attributes {
		fields = append(fields, zap.Any(k, v))
	}

	if span.Status.Code == StatusError {
		t.logger.Warn("span failed", fields...)
		return
	}
	t.logger.Debug("span finished", fields...)
}

// RecordMetric logs the metric value.
func (t *LogTracer) RecordMetric(name string, value float64, labels map[string]string) {
	t.logger.Debug("metric",
		zap.String("name", name),
		zap.Float64("value", value),
		zap.Any("labels", labels),
	)
}

var _ Tracer = (*LogTracer)(nil)
