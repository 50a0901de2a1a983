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

package config

import (
	"fmt"
	"os"

	"github.com/thediveo/staticedge/azstore"
)

const (
	EnvStoreKind = "STATICEDGE_STORE_KIND"
	EnvStoreDir  = "STATICEDGE_STORE_DIR"
)

// Kinds of asset stores.
const (
	StoreDir   = "dir"
	StoreAzure = "azure"
)

// StoreConfig selects and configures the asset store.
type StoreConfig struct {
	Kind  string         `toml:"kind"`
	Dir   string         `toml:"dir"`
	Azure azstore.Config `toml:"azure"`

	dirOverride string // beats files and environment; see WithStoreDir.
}

// Finalize applies environment variable overrides, defaults, and validation.
// Defaults depend on the store kind, so they come last. The Azure section is only finalized when it's actually used.
func (c *StoreConfig) Finalize(env *azstore.Env) error {
	c.loadEnv()
	c.loadDefaults()
	if err := c.validate(); err != nil {
		return err
	}
	if c.Kind == StoreAzure {
		if err := c.Azure.Finalize(env); err != nil {
			return fmt.Errorf("azure: %w", err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Kind != "" {
		c.Kind = overlay.Kind
	}
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	c.Azure.Merge(&overlay.Azure)
}

func (c *StoreConfig) loadDefaults() {
	if c.Kind == "" {
		c.Kind = StoreDir
	}
	if c.Kind == StoreDir && c.Dir == "" {
		c.Dir = "dist-openworkers"
	}
}

func (c *StoreConfig) loadEnv() {
	if v := os.Getenv(EnvStoreKind); v != "" {
		c.Kind = v
	}
	if v := os.Getenv(EnvStoreDir); v != "" {
		c.Dir = v
	}
	if c.dirOverride != "" {
		c.Kind = StoreDir
		c.Dir = c.dirOverride
	}
}

func (c *StoreConfig) validate() error {
	switch c.Kind {
	case StoreDir:
		if c.Dir == "" {
			return fmt.Errorf("dir required")
		}
	case StoreAzure:
	default:
		return fmt.Errorf("invalid kind %q, must be %q or %q", c.Kind, StoreDir, StoreAzure)
	}
	return nil
}
