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
	"io/fs"
	"net/http"
	"strconv"
	"strings"
)

// Asset is what an asset store returns for a path: a status, headers, and,
// for successful lookups, the asset's content.
type Asset struct {
	Status int
	Header http.Header
	Body   io.ReadCloser // might be nil when not OK.
}

// OK reports whether the asset lookup succeeded with a 2xx status.
func (a *Asset) OK() bool {
	return a != nil && a.Status >= 200 && a.Status <= 299
}

// Close releases the asset's body, if any.
func (a *Asset) Close() error {
	if a == nil || a.Body == nil {
		return nil
	}
	return a.Body.Close()
}

// Store is a read-only asset lookup keyed by rooted, normalized request path.
// Implementations must be safe for concurrent use and should abort lookups
// when the passed context gets cancelled.
//
// Returning an error and returning a non-2xx asset are equivalent: both
// count as a miss for the path.
type Store interface {
	Fetch(ctx context.Context, path string) (*Asset, error)
}

// StoreFunc adapts an ordinary function to the Store interface.
type StoreFunc func(ctx context.Context, path string) (*Asset, error)

// Fetch calls f(ctx, path).
func (f StoreFunc) Fetch(ctx context.Context, path string) (*Asset, error) {
	return f(ctx, path)
}

// FSStore serves assets from an fs.FS, such as an os.DirFS or embed.FS. Only
// regular files are assets; directories count as not found.
type FSStore struct {
	fs fs.FS
}

var _ Store = (*FSStore)(nil)

// NewFSStore returns a new Store serving the regular files inside fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fs: fsys}
}

// Fetch opens the file at the specified rooted path. Missing files,
// directories, and paths not valid inside an fs.FS give 404 assets; other
// file system errors are mapped onto their HTTP status codes.
func (s *FSStore) Fetch(ctx context.Context, path string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path, "/") // ...fs.FS uses unrooted paths.
	if name == "" {
		return &Asset{Status: http.StatusNotFound}, nil
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return &Asset{Status: normalizedStatus(err)}, nil
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return &Asset{Status: normalizedStatus(err)}, nil
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return &Asset{Status: http.StatusNotFound}, nil
	}
	h := http.Header{}
	h.Set("Content-Type", ContentTypeFor(name))
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	if modtime := info.ModTime(); !modtime.IsZero() {
		h.Set("Last-Modified", modtime.UTC().Format(http.TimeFormat))
	}
	return &Asset{
		Status: http.StatusOK,
		Header: h,
		Body:   f,
	}, nil
}
