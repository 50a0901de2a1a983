// Copyright 2022, 2026 Harald Albrecht.
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

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// NormalizePath returns the request path to resolve, given the raw (escaped)
// URL path of a request. It percent-decodes the raw path, keeping it as-is if
// it contains malformed escapes or escapes not decoding to valid UTF-8, and
// then strips a single trailing slash from any path but "/".
//
// No further cleaning takes place: case, "." and ".." segments are left to the
// asset store, which is the sole authority on what exists.
func NormalizePath(raw string) string {
	path := raw
	if decoded, err := url.PathUnescape(raw); err == nil && utf8.ValidString(decoded) {
		path = decoded
	}
	if path == "" {
		return "/"
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// normalizedStatus maps the specified (file system) error onto an HTTP status
// code, without leaking any internal server details.
func normalizedStatus(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
