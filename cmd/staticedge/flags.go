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

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thediveo/staticedge"
)

// manifestFlags mirror the route manifest fields, so that a site can be
// served without a manifest file.
type manifestFlags struct {
	file      string
	mode      string
	fallback  string
	immutable []string
}

func (f *manifestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.file, "manifest", "", "route manifest file (.json or .toml)")
	fl.StringVarP(&f.mode, "mode", "m", string(staticedge.ModeDirectory),
		"routing mode: 'directory' or 'flat'")
	fl.StringVarP(&f.fallback, "fallback", "f", "",
		"SPA fallback file (e.g., /index.html or /200.html)")
	fl.StringSliceVar(&f.immutable, "immutable", nil,
		"comma-separated immutable patterns (e.g., /assets/**,/_app/**)")
}

// manifest returns the route manifest to serve with. Explicit manifest flags
// win over a manifest file, which in turn wins over the configured one; with
// neither, the flag defaults apply.
func (f *manifestFlags) manifest(cmd *cobra.Command, configured string) (*staticedge.Manifest, error) {
	fl := cmd.Flags()
	fromFlags := fl.Changed("mode") || fl.Changed("fallback") || fl.Changed("immutable")
	file := configured
	if f.file != "" {
		file = f.file
	}
	if file != "" && !fromFlags {
		return staticedge.LoadManifest(file)
	}
	patterns := make([]string, 0, len(f.immutable))
	for _, pattern := range f.immutable {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	return staticedge.NewManifest(staticedge.Mode(f.mode), f.fallback, patterns...)
}
