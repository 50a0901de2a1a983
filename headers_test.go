// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package staticedge

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cache header policy", func() {

	m := &Manifest{
		Mode:      ModeDirectory,
		Immutable: []string{"/assets/**", "/robots.txt", "/prerendered/*"},
	}

	DescribeTable("sets Cache-Control",
		func(path, expected string) {
			Expect(m.HeadersFor(path, nil).Get("Cache-Control")).To(Equal(expected))
		},
		Entry("hashed asset", "/assets/app.3f2a.js", CacheImmutable),
		Entry("exact immutable path", "/robots.txt", CacheImmutable),
		Entry("HTML", "/about/index.html", CacheNone),
		Entry("immutable beats HTML", "/prerendered/page.html", CacheImmutable),
		Entry("other static file", "/style.css", CacheDefault),
		Entry("extensionless file", "/LICENSE", CacheDefault),
	)

	DescribeTable("sets missing content types",
		func(path, expected string) {
			Expect(m.HeadersFor(path, http.Header{}).Get("Content-Type")).To(Equal(expected))
		},
		Entry("HTML", "/index.html", "text/html; charset=utf-8"),
		Entry("JavaScript", "/assets/app.3f2a.js", "text/javascript; charset=utf-8"),
		Entry("upper case extension", "/LOGO.SVG", "image/svg+xml"),
		Entry("WebAssembly", "/app.wasm", "application/wasm"),
		Entry("unknown extension", "/data.bonkers42", DefaultContentType),
		Entry("no extension", "/LICENSE", DefaultContentType),
	)

	It("keeps stored content types and doesn't touch the stored headers", func() {
		stored := http.Header{}
		stored.Set("Content-Type", "text/x-canary")
		stored.Set("Cache-Control", "private")
		stored.Set("ETag", `"42"`)
		h := m.HeadersFor("/style.css", stored)
		Expect(h.Get("Content-Type")).To(Equal("text/x-canary"))
		Expect(h.Get("Cache-Control")).To(Equal(CacheDefault))
		Expect(h.Get("ETag")).To(Equal(`"42"`))
		Expect(h.Values("Cache-Control")).To(HaveLen(1))

		Expect(stored.Get("Cache-Control")).To(Equal("private"))
	})

})
