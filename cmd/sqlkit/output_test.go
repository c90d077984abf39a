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
package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/sqlkit/pkg/db"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", 42},
		{"-7", -7},
		{"1.5", 1.5},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"~", nil},
		{"", ""},
		{"hello", "hello"},
		{"'42'", "42"},
		{`"true"`, "true"},
		{"2024-01-02", "2024-01-02"},
		{"[1, 2]", "[1, 2]"},
		{"a: b", "a: b"},
		{"O'Brien", "O'Brien"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseScalar(tt.in))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	cols, err := parseAssignments([]string{"name=widget", "qty=3", "note=a=b", "name=gadget"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "qty", "note"}, cols.Keys())
	assert.Equal(t, []any{"gadget", 3, "a=b"}, cols.Values())

	empty, err := parseAssignments(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = parseAssignments([]string{"=1"})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	rows := []db.Record{db.NewRecord([]string{"z", "a"}, []any{int64(1), "x"})}

	var out bytes.Buffer
	require.NoError(t, render(&out, "yaml", rows))
	assert.Equal(t, "- z: 1\n  a: x\n", out.String())

	out.Reset()
	require.NoError(t, render(&out, "json", rows))
	assert.Equal(t, "[\n  {\n    \"z\": 1,\n    \"a\": \"x\"\n  }\n]\n", out.String())

	out.Reset()
	require.NoError(t, render(&out, "yaml", []db.Record{}))
	assert.Equal(t, "[]\n", out.String())

	assert.Error(t, render(&out, "xml", rows))
}
