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

// Package config loads the staticedge server configuration from TOML files,
// environment overlays, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/thediveo/staticedge/azstore"
)

const (
	BaseConfigFile       = "staticedge.toml"
	OverlayConfigPattern = "staticedge.%s.toml"

	EnvStaticedgeEnv      = "STATICEDGE_ENV"
	EnvStaticedgeManifest = "STATICEDGE_MANIFEST"
	EnvStaticedgeLogLevel = "STATICEDGE_LOG_LEVEL"
)

var azureEnv = &azstore.Env{
	ContainerName:    "STATICEDGE_AZURE_CONTAINER_NAME",
	ConnectionString: "STATICEDGE_AZURE_CONNECTION_STRING",
	Prefix:           "STATICEDGE_AZURE_PREFIX",
	Retries:          "STATICEDGE_AZURE_RETRIES",
}

// Config is the root configuration of the staticedge server.
type Config struct {
	Server   ServerConfig `toml:"server"`
	Store    StoreConfig  `toml:"store"`
	Manifest string       `toml:"manifest"`
	LogLevel string       `toml:"log_level"`
}

// Env returns the STATICEDGE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvStaticedgeEnv); env != "" {
		return env
	}
	return "local"
}

// Level returns LogLevel as a logrus.Level.
func (c *Config) Level() logrus.Level {
	lvl, _ := logrus.ParseLevel(c.LogLevel)
	return lvl
}

// Option adjusts a configuration after loading, before it gets finalized.
type Option func(*Config)

// WithStoreDir serves the site from the specified directory, whatever store
// the configuration files or environment ask for.
func WithStoreDir(dir string) Option {
	return func(c *Config) {
		c.Store.dirOverride = dir
	}
}

// Load reads the base config at path, applies any environment overlay next to
// it, and finalizes all values. An empty path means BaseConfigFile in the
// current directory, which is optional: without it, defaults and environment
// variables provide all configuration. An explicitly specified config file
// must exist.
func Load(path string, opts ...Option) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = BaseConfigFile
	}
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Manifest != "" {
		c.Manifest = overlay.Manifest
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Store.Merge(&overlay.Store)
}

// Finalize applies defaults, environment variable overrides, and validation
// to all sub-configs.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Store.Finalize(azureEnv); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvStaticedgeManifest); v != "" {
		c.Manifest = v
	}
	if v := os.Getenv(EnvStaticedgeLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvStaticedgeEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
