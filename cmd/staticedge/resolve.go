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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thediveo/staticedge"
)

func newResolveCmd() *cobra.Command {
	var (
		dir     string
		verbose bool
		mf      manifestFlags
	)
	cmd := &cobra.Command{
		Use:   "resolve path...",
		Short: "Show how request paths resolve against a site directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := mf.manifest(cmd, "")
			if err != nil {
				return err
			}
			log := logrus.New()
			log.SetOutput(io.Discard)
			resolver := staticedge.NewResolver(manifest,
				staticedge.NewFSStore(os.DirFS(dir)),
				staticedge.WithResolverLogger(log))
			out := cmd.OutOrStdout()
			for _, arg := range args {
				path := staticedge.NormalizePath(arg)
				if verbose {
					fmt.Fprintf(out, "%s tries %s\n", path,
						strings.Join(resolver.Candidates(path), ", "))
				}
				outcome := resolver.Resolve(cmd.Context(), path)
				if outcome.Body != nil {
					_ = outcome.Body.Close()
				}
				if !outcome.Found {
					fmt.Fprintf(out, "%s -> not found (%d)\n", path, outcome.Status)
					continue
				}
				if cc := outcome.Header.Get("Cache-Control"); cc != "" {
					fmt.Fprintf(out, "%s -> %s (%d, %s)\n", path, outcome.Path, outcome.Status, cc)
					continue
				}
				fmt.Fprintf(out, "%s -> %s (%d)\n", path, outcome.Path, outcome.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "site directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "also list the candidates tried")
	mf.register(cmd)
	return cmd
}
