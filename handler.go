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
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Handler implements an http.Handler serving a static site from an asset
// store, according to a routing manifest. Each request is resolved
// independently; the Handler holds no mutable state.
type Handler struct {
	resolver *Resolver
	log      logrus.FieldLogger
}

// HandlerOption sets optional properties at the time of creating a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger for request resolution and response writing
// problems.
func WithLogger(log logrus.FieldLogger) HandlerOption {
	return func(h *Handler) {
		h.log = log
	}
}

// NewHandler returns a new HTTP handler serving the assets from the specified
// store, routed as the specified manifest tells. The manifest should have been
// validated, such as by LoadManifest, and must not be modified afterwards.
//
// In order to serve a site from a directory on the OS file system:
//
//	h := NewHandler(m, NewFSStore(os.DirFS("/srv/site")))
func NewHandler(manifest *Manifest, store Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resolver = NewResolver(manifest, store, WithResolverLogger(h.log))
	return h
}

// Resolver returns the Resolver used by this Handler.
func (h *Handler) Resolver() *Resolver {
	return h.resolver
}

// ServeHTTP resolves the request's URL path and serves whatever the
// resolution chain settles on, including the final "Not Found". The request
// method isn't inspected; net/http drops the body of HEAD responses anyway.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := NormalizePath(r.URL.EscapedPath())
	outcome := h.resolver.Resolve(r.Context(), path)
	if outcome.Body != nil {
		defer func() { _ = outcome.Body.Close() }()
	}
	header := w.Header()
	for key, values := range outcome.Header {
		header[key] = values
	}
	w.WriteHeader(outcome.Status)
	if outcome.Body == nil {
		return
	}
	// With the status already sent, there's nothing left to tell the client
	// when copying the body fails half-way.
	if _, err := io.Copy(w, outcome.Body); err != nil {
		h.log.WithFields(logrus.Fields{
			"path":  path,
			"asset": outcome.Path,
			"error": err,
		}).Warn("serving asset failed")
	}
}
