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

import (
	"mime"
	"net/http"
	"path"
	"strings"
)

// Cache-Control directives attached to resolved assets.
const (
	CacheImmutable = "public, max-age=31536000, immutable"
	CacheNone      = "no-cache"
	CacheDefault   = "public, max-age=3600"
)

// DefaultContentType is served for assets with unknown extensions.
const DefaultContentType = "application/octet-stream"

// webTypes pins the content types of what static site builds typically ship,
// so that responses don't depend on the host's MIME tables.
var webTypes = map[string]string{
	".html":        "text/html; charset=utf-8",
	".htm":         "text/html; charset=utf-8",
	".css":         "text/css; charset=utf-8",
	".js":          "text/javascript; charset=utf-8",
	".mjs":         "text/javascript; charset=utf-8",
	".json":        "application/json",
	".map":         "application/json",
	".webmanifest": "application/manifest+json",
	".xml":         "application/xml",
	".txt":         "text/plain; charset=utf-8",
	".md":          "text/markdown; charset=utf-8",
	".wasm":        "application/wasm",
	".svg":         "image/svg+xml",
	".png":         "image/png",
	".jpg":         "image/jpeg",
	".jpeg":        "image/jpeg",
	".gif":         "image/gif",
	".webp":        "image/webp",
	".avif":        "image/avif",
	".ico":         "image/vnd.microsoft.icon",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".ttf":         "font/ttf",
	".otf":         "font/otf",
	".pdf":         "application/pdf",
	".mp4":         "video/mp4",
	".webm":        "video/webm",
}

// ContentTypeFor returns the content type for the specified asset path based
// on its extension, defaulting to DefaultContentType when unknown.
func ContentTypeFor(assetPath string) string {
	ext := strings.ToLower(path.Ext(assetPath))
	if ext == "" {
		return DefaultContentType
	}
	if ct, ok := webTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultContentType
}

// CacheControlFor returns the Cache-Control directive for the specified
// resolved asset path. Immutable assets take precedence over HTML files.
func (m *Manifest) CacheControlFor(resolvedPath string) string {
	switch {
	case m.IsImmutable(resolvedPath):
		return CacheImmutable
	case strings.HasSuffix(resolvedPath, ".html"):
		return CacheNone
	default:
		return CacheDefault
	}
}

// HeadersFor returns the response headers for the asset resolved at
// resolvedPath, based on the headers the store returned with it. The stored
// headers are left untouched. A Content-Type is only added when missing,
// whereas Cache-Control always reflects the manifest's cache policy.
func (m *Manifest) HeadersFor(resolvedPath string, stored http.Header) http.Header {
	h := stored.Clone()
	if h == nil {
		h = http.Header{}
	}
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", ContentTypeFor(resolvedPath))
	}
	h.Set("Cache-Control", m.CacheControlFor(resolvedPath))
	return h
}
