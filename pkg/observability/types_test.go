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
	"errors"
	"testing"
)

func TestStatusCodeString(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{StatusUnset, "unset"},
		{StatusOK, "ok"},
		{StatusError, "error"},
		{StatusCode(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSpanSetAttribute(t *testing.T) {
	span := &Span{}

	span.SetAttribute("key1", "value1")
	span.SetAttribute("key2", 42)

	if span.Attributes["key1"] != "value1" {
		t.Errorf("Expected key1=value1, got %v", span.Attributes["key1"])
	}
	if span.Attributes["key2"] != 42 {
		t.Errorf("Expected key2=42, got %v", span.Attributes["key2"])
	}
}

func TestSpanRecordError(t *testing.T) {
	span := &Span{}

	span.RecordError(nil)
	if span.Status.Code != StatusUnset {
		t.Errorf("nil error should not change status, got %s", span.Status.Code)
	}

	span.RecordError(errors.New("relation \"missing\" does not exist"))
	if span.Status.Code != StatusError {
		t.Errorf("Expected error status, got %s", span.Status.Code)
	}
	if span.Attributes[AttrErrorMessage] != `relation "missing" does not exist` {
		t.Errorf("Unexpected error message attribute: %v", span.Attributes[AttrErrorMessage])
	}
}
