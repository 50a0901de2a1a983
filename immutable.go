// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package staticedge

import "strings"

// IsImmutable reports whether the request path matches any of the specified
// immutable patterns. A pattern ending in "/**" or "/*" matches all paths
// starting with the pattern minus its trailing "**" or "*", so "/assets/**"
// matches "/assets/app.3f2a.js", but not "/assets2/x". Any other pattern must
// equal the path.
//
// This is a deliberately restricted prefix matcher: there are no character
// classes, no "?", and no wildcards other than the single trailing one.
func IsImmutable(path string, patterns []string) bool {
	for _, pattern := range patterns {
		prefix, wildcard := patternPrefix(pattern)
		if wildcard {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}

// IsImmutable reports whether the path matches one of the manifest's
// immutable patterns.
func (m *Manifest) IsImmutable(path string) bool {
	return IsImmutable(path, m.Immutable)
}

// patternPrefix returns the prefix of a wildcard pattern and true, or the
// unchanged pattern and false if there's no wildcard suffix.
func patternPrefix(pattern string) (string, bool) {
	if strings.HasSuffix(pattern, "/**") {
		return pattern[:len(pattern)-2], true
	}
	if strings.HasSuffix(pattern, "/*") {
		return pattern[:len(pattern)-1], true
	}
	return pattern, false
}
