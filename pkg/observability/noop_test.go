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
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoOpTracer(t *testing.T) {
	tracer := NewNoOpTracer()

	t.Run("StartSpan creates minimal span", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := tracer.StartSpan(ctx, "test_span", WithAttribute("key", "value"))

		if span == nil {
			t.Fatal("Expected span to be created")
		}
		if span.Name != "test_span" {
			t.Errorf("Expected name 'test_span', got %q", span.Name)
		}
		if span.TraceID == "" || span.SpanID == "" {
			t.Error("Expected TraceID and SpanID to be set")
		}
		if span.Attributes["key"] != "value" {
			t.Errorf("Expected attribute key=value, got %v", span.Attributes["key"])
		}
		if SpanFromContext(ctx) != span {
			t.Error("Span not properly stored in context")
		}
	})

	t.Run("Nested spans have correct parent relationship", func(t *testing.T) {
		ctx, parent := tracer.StartSpan(context.Background(), "parent")
		_, child := tracer.StartSpan(ctx, "child")

		if child.TraceID != parent.TraceID {
			t.Errorf("Child TraceID %s doesn't match parent %s", child.TraceID, parent.TraceID)
		}
		if child.ParentID != parent.SpanID {
			t.Errorf("Child ParentID %s doesn't match parent SpanID %s", child.ParentID, parent.SpanID)
		}
	})

	t.Run("EndSpan calculates duration", func(t *testing.T) {
		_, span := tracer.StartSpan(context.Background(), "timed_span")
		time.Sleep(10 * time.Millisecond)
		tracer.EndSpan(span)

		if span.EndTime.IsZero() {
			t.Error("EndTime not set")
		}
		if span.Duration < 10*time.Millisecond {
			t.Errorf("Duration %v less than expected 10ms", span.Duration)
		}
		if span.Status.Code != StatusOK {
			t.Errorf("Expected status ok, got %s", span.Status.Code)
		}
	})

	t.Run("EndSpan tolerates nil", func(t *testing.T) {
		tracer.EndSpan(nil)
	})
}

func TestMockTracer_CapturesSpansAndMetrics(t *testing.T) {
	tracer := NewMockTracer()

	_, span := tracer.StartSpan(context.Background(), "sqlkit.conn.select", WithAttribute(AttrTable, "items"))
	span.RecordError(errors.New("boom"))
	tracer.EndSpan(span)
	tracer.RecordMetric("sqlkit.pool.in_use", 2, map[string]string{"driver": "sqlite"})

	got := tracer.GetSpanByName("sqlkit.conn.select")
	if got == nil {
		t.Fatal("Expected span to be captured")
	}
	if got.Status.Code != StatusError {
		t.Errorf("Expected error status, got %s", got.Status.Code)
	}
	if len(tracer.GetSpansByName("missing")) != 0 {
		t.Error("Expected no spans for unknown name")
	}
	if m := tracer.GetMetrics("sqlkit.pool.in_use"); len(m) != 1 || m[0].Value != 2 {
		t.Errorf("Expected one metric with value 2, got %v", m)
	}

	tracer.Reset()
	if len(tracer.GetSpans()) != 0 {
		t.Error("Expected Reset to clear spans")
	}
}

func TestLogTracer_LogsFinishedSpans(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := NewLogTracer(zap.New(core))

	_, ok := tracer.StartSpan(context.Background(), "ok_span", WithAttribute(AttrRows, 3))
	tracer.EndSpan(ok)

	_, failed := tracer.StartSpan(context.Background(), "failed_span")
	failed.RecordError(errors.New("syntax error"))
	tracer.EndSpan(failed)

	tracer.RecordMetric("m", 1, nil)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[0].ContextMap()["span"] != "ok_span" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("Expected failed span at warn level, got %s", entries[1].Level)
	}
}

func TestSpanFromContext(t *testing.T) {
	t.Run("Returns nil for empty context", func(t *testing.T) {
		if span := SpanFromContext(context.Background()); span != nil {
			t.Errorf("Expected nil, got %v", span)
		}
	})

	t.Run("Returns span from context", func(t *testing.T) {
		originalSpan := &Span{SpanID: "test-123"}
		ctx := ContextWithSpan(context.Background(), originalSpan)

		if retrieved := SpanFromContext(ctx); retrieved != originalSpan {
			t.Error("Retrieved span doesn't match original")
		}
	})
}
