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
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// NotFoundPage is the stored asset path tried last, and always served with
// status 404.
const NotFoundPage = "/404.html"

// NotFoundBody is the body of the synthetic response when nothing at all
// could be resolved.
const NotFoundBody = "Not Found"

// Outcome is the result of resolving a request path. When Found is false, the
// Outcome describes the synthetic "Not Found" response.
type Outcome struct {
	Found  bool          // a stored asset answers the request.
	Path   string        // stored path of the asset found; empty otherwise.
	Status int           // HTTP status code to respond with.
	Header http.Header   // response headers.
	Body   io.ReadCloser // response body; the caller must close it.
}

// candidate is a stored asset path to try, optionally overriding the status
// of a hit.
type candidate struct {
	path   string
	status int // if non-zero, replaces the asset's own status.
}

// step derives the candidate of one stage of the resolution chain for a
// request path, if the stage applies to it.
type step func(path string, m *Manifest) (candidate, bool)

// chain lists the resolution stages in the order they are tried. A literal
// file always wins over directory and flat resolution, which in turn win over
// the SPA fallback.
var chain = []step{
	exactStep,
	directoryIndexStep,
	flatHTMLStep,
	fallbackStep,
	notFoundPageStep,
}

func exactStep(path string, _ *Manifest) (candidate, bool) {
	return candidate{path: path}, true
}

func directoryIndexStep(path string, m *Manifest) (candidate, bool) {
	if path == "/" {
		return candidate{path: "/index.html"}, true
	}
	if m.Mode == ModeDirectory {
		return candidate{path: path + "/index.html"}, true
	}
	return candidate{}, false
}

func flatHTMLStep(path string, m *Manifest) (candidate, bool) {
	if m.Mode != ModeFlat || path == "/" {
		return candidate{}, false
	}
	return candidate{path: path + ".html"}, true
}

func fallbackStep(_ string, m *Manifest) (candidate, bool) {
	if m.Fallback == "" {
		return candidate{}, false
	}
	return candidate{path: m.Fallback}, true
}

func notFoundPageStep(string, *Manifest) (candidate, bool) {
	return candidate{path: NotFoundPage, status: http.StatusNotFound}, true
}

// Resolver resolves normalized request paths to stored assets, given a
// routing manifest and an asset store. A Resolver keeps no per-request state
// and thus is safe for concurrent use.
type Resolver struct {
	manifest *Manifest
	store    Store
	log      logrus.FieldLogger
}

// ResolverOption sets optional properties when creating a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger to report misses to; misses are logged
// at debug level.
func WithResolverLogger(log logrus.FieldLogger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver returns a Resolver for the specified manifest and store. The
// manifest must not be modified afterwards.
func NewResolver(manifest *Manifest, store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		manifest: manifest,
		store:    store,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates returns the stored asset paths tried for the specified
// normalized request path, in the order they are tried.
func (r *Resolver) Candidates(path string) []string {
	paths := make([]string, 0, len(chain))
	for _, stage := range chain {
		if c, ok := stage(path, r.manifest); ok {
			paths = append(paths, c.path)
		}
	}
	return paths
}

// Resolve walks the resolution chain for the specified normalized request
// path, stopping at the first candidate the store has. It never fails: if no
// candidate can be found, Resolve returns the synthetic "Not Found" outcome.
//
// Cancelling ctx aborts the lookup currently in flight, which then counts as
// a miss like any other store error.
func (r *Resolver) Resolve(ctx context.Context, path string) Outcome {
	for _, stage := range chain {
		c, ok := stage(path, r.manifest)
		if !ok {
			continue
		}
		asset := r.fetch(ctx, c.path)
		if asset == nil {
			continue
		}
		if c.status != 0 {
			// The not-found page keeps the store's headers as they are.
			return Outcome{
				Found:  true,
				Path:   c.path,
				Status: c.status,
				Header: asset.Header.Clone(),
				Body:   asset.Body,
			}
		}
		return Outcome{
			Found:  true,
			Path:   c.path,
			Status: asset.Status,
			Header: r.manifest.HeadersFor(c.path, asset.Header),
			Body:   asset.Body,
		}
	}
	r.log.WithField("path", path).Debug("no asset found")
	return notFound()
}

// fetch looks up a single candidate, returning nil on a miss.
func (r *Resolver) fetch(ctx context.Context, path string) *Asset {
	asset, err := r.store.Fetch(ctx, path)
	if err != nil {
		_ = asset.Close()
		r.log.WithFields(logrus.Fields{
			"candidate": path,
			"error":     err,
		}).Debug("asset store lookup failed")
		return nil
	}
	if !asset.OK() {
		status := 0
		if asset != nil {
			status = asset.Status
			_ = asset.Close()
		}
		r.log.WithFields(logrus.Fields{
			"candidate": path,
			"status":    status,
		}).Debug("asset store miss")
		return nil
	}
	return asset
}

// notFound returns the synthetic outcome when nothing could be resolved.
func notFound() Outcome {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return Outcome{
		Status: http.StatusNotFound,
		Header: h,
		Body:   io.NopCloser(strings.NewReader(NotFoundBody)),
	}
}
