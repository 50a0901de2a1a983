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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Mode specifies how extensionless request paths map onto stored HTML files.
type Mode string

const (
	// ModeDirectory resolves "/page" to "/page/index.html".
	ModeDirectory Mode = "directory"
	// ModeFlat resolves "/page" to "/page.html".
	ModeFlat Mode = "flat"
)

// Format identifies the serialization of a routing manifest.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

var (
	// ErrInvalidManifest indicates a manifest violating the manifest schema.
	ErrInvalidManifest = errors.New("invalid route manifest")
	// ErrUnknownFormat indicates a manifest file with an unsupported
	// extension.
	ErrUnknownFormat = errors.New("unknown route manifest format")
)

// Manifest is the routing configuration produced by a site's build step. A
// Manifest must not be modified after it has been handed to a Resolver or
// Handler.
type Manifest struct {
	// Mode of resolving extensionless paths.
	Mode Mode `json:"mode" toml:"mode"`
	// Fallback is the (rooted) asset path served for otherwise unmatched
	// routes; empty if there is no SPA fallback.
	Fallback string `json:"fallback,omitempty" toml:"fallback,omitempty"`
	// Immutable lists exact paths and "/*" or "/**" prefix patterns of
	// assets to be cached for good.
	Immutable []string `json:"immutable" toml:"immutable"`
}

// NewManifest returns a validated manifest built from the given fields, such
// as when taking them from command line flags instead of a manifest file.
func NewManifest(mode Mode, fallback string, immutable ...string) (*Manifest, error) {
	m := &Manifest{
		Mode:      mode,
		Fallback:  fallback,
		Immutable: slices.Clone(immutable),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadManifest reads and validates the manifest file at the specified path.
// The file's extension selects the format: ".json" or ".toml".
func LoadManifest(path string) (*Manifest, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route manifest: %w", err)
	}
	m, err := ParseManifest(data, format)
	if err != nil {
		return nil, fmt.Errorf("route manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates a manifest in the specified format.
// Unknown fields are rejected, so that typos surface at load time instead of
// silently changing routing.
func ParseManifest(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: trailing data after manifest", ErrInvalidManifest)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest against its schema, returning an error
// wrapping ErrInvalidManifest on the first violation found.
func (m *Manifest) Validate() error {
	switch m.Mode {
	case ModeDirectory, ModeFlat:
	case "":
		return fmt.Errorf("%w: missing mode", ErrInvalidManifest)
	default:
		return fmt.Errorf("%w: mode must be %q or %q, got %q",
			ErrInvalidManifest, ModeDirectory, ModeFlat, m.Mode)
	}
	if m.Fallback != "" && !strings.HasPrefix(m.Fallback, "/") {
		return fmt.Errorf("%w: fallback %q must start with \"/\"",
			ErrInvalidManifest, m.Fallback)
	}
	for _, pattern := range m.Immutable {
		if err := validatePattern(pattern); err != nil {
			return err
		}
	}
	return nil
}

// validatePattern accepts exact rooted paths and rooted paths ending in a
// single "/*" or "/**" wildcard suffix.
func validatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w: immutable pattern %q must start with \"/\"",
			ErrInvalidManifest, pattern)
	}
	if strings.ContainsAny(pattern, "?[]") {
		return fmt.Errorf("%w: immutable pattern %q uses unsupported glob syntax",
			ErrInvalidManifest, pattern)
	}
	prefix, _ := patternPrefix(pattern)
	if strings.Contains(prefix, "*") {
		return fmt.Errorf("%w: immutable pattern %q may only end in \"/*\" or \"/**\"",
			ErrInvalidManifest, pattern)
	}
	return nil
}
