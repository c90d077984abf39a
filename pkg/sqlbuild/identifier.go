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
	"regexp"
)

// ErrInvalidIdentifier is returned when an identifier validator rejects a
// table, column or field name.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// identifierRe matches a plain identifier, optionally schema-qualified.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SimpleIdentifier accepts identifiers made of letters, digits and
// underscores that do not start with a digit, with an optional "schema."
// prefix. Quoted identifiers, whitespace and punctuation are rejected.
func SimpleIdentifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}
