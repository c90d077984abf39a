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

import "strings"

// Where builds an equality WHERE clause from a constraint set.
//
// A nil or empty set yields an empty clause and no arguments, meaning no
// filter. Otherwise the clause has the form " WHERE c1 = p1 AND c2 = p2",
// with constraints in the set's iteration order and placeholders numbered
// from offset+1. Column names are interpolated unescaped.
func Where(d Dialect, where *Columns, offset int) (string, []any) {
	if where.Len() == 0 {
		return "", []any{}
	}

	clauses := make([]string, 0, where.Len())
	args := make([]any, 0, where.Len())
	for col, val := range where.All() {
		args = append(args, val)
		clauses = append(clauses, col+" = "+d.Placeholder(offset+len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
