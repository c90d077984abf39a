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
package version

// Version is set at build time:
// go build -ldflags="-X github.com/teradata-labs/sqlkit/internal/version.Version=vX.Y.Z"
var Version = "0.1.0"

// Get returns the build version, or "dev" when it was blanked out.
func Get() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
