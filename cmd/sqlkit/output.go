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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/sqlkit/pkg/sqlbuild"
)

// parseScalar interprets a command-line value the way YAML would: integers,
// floats, booleans and null become typed values, 'quoted' or "quoted" text
// is a string, anything else is kept verbatim.
func parseScalar(s string) any {
	if s == "" {
		return ""
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch v := v.(type) {
	case nil, int, int64, uint64, float64, bool:
		return v
	case string:
		return v
	default:
		// Timestamps, lists and maps stay textual.
		return s
	}
}

// parseAssignments turns name=value arguments into an ordered column set.
// A repeated name keeps its first position and its last value.
func parseAssignments(pairs []string) (*sqlbuild.Columns, error) {
	cols := sqlbuild.Cols()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (want name=value)", pair)
		}
		cols.Set(name, parseScalar(value))
	}
	return cols, nil
}

func parseArgs(raw []string) []any {
	args := make([]any, len(raw))
	for i, s := range raw {
		args[i] = parseScalar(s)
	}
	return args
}

// render writes v in the configured output format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
