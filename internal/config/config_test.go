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

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("configuration", func() {

	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(name, contents string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
		return path
	}

	It("defaults everything with an empty config file", func() {
		cfg := Successful(Load(write(BaseConfigFile, "")))
		Expect(cfg.Env()).To(Equal("local"))
		Expect(cfg.Level()).To(Equal(logrus.InfoLevel))
		Expect(cfg.Manifest).To(BeEmpty())
		Expect(cfg.Server.Addr()).To(Equal(":8080"))
		Expect(cfg.Server.ReadTimeoutDuration()).To(Equal(30 * time.Second))
		Expect(cfg.Server.WriteTimeoutDuration()).To(Equal(60 * time.Second))
		Expect(cfg.Server.ShutdownTimeoutDuration()).To(Equal(10 * time.Second))
		Expect(cfg.Store.Kind).To(Equal(StoreDir))
		Expect(cfg.Store.Dir).To(Equal("dist-openworkers"))
	})

	It("loads a config file with an environment overlay", func() {
		path := write(BaseConfigFile, `
manifest = "routes.json"
log_level = "warn"

[server]
host = "127.0.0.1"
port = 9090

[store]
dir = "public"
`)
		write("staticedge.prod.toml", `
log_level = "error"

[server]
port = 80
shutdown_timeout = "2s"
`)
		GinkgoT().Setenv(EnvStaticedgeEnv, "prod")
		cfg := Successful(Load(path))
		Expect(cfg.Env()).To(Equal("prod"))
		Expect(cfg.Manifest).To(Equal("routes.json"))
		Expect(cfg.Level()).To(Equal(logrus.ErrorLevel))
		Expect(cfg.Server.Addr()).To(Equal("127.0.0.1:80"))
		Expect(cfg.Server.ShutdownTimeoutDuration()).To(Equal(2 * time.Second))
		Expect(cfg.Store.Dir).To(Equal("public"))
	})

	It("applies environment overrides", func() {
		GinkgoT().Setenv(EnvStaticedgeManifest, "/etc/routes.toml")
		GinkgoT().Setenv(EnvStaticedgeLogLevel, "debug")
		GinkgoT().Setenv(EnvServerPort, "8443")
		GinkgoT().Setenv(EnvStoreDir, "/srv/site")
		cfg := Successful(Load(write(BaseConfigFile, "")))
		Expect(cfg.Manifest).To(Equal("/etc/routes.toml"))
		Expect(cfg.Level()).To(Equal(logrus.DebugLevel))
		Expect(cfg.Server.Port).To(Equal(8443))
		Expect(cfg.Store.Dir).To(Equal("/srv/site"))
	})

	It("configures an Azure store", func() {
		GinkgoT().Setenv(azureEnv.ConnectionString, "UseDevelopmentStorage=true")
		path := write(BaseConfigFile, `
[store]
kind = "azure"

[store.azure]
container_name = "www"
prefix = "/v1"
`)
		cfg := Successful(Load(path))
		Expect(cfg.Store.Kind).To(Equal(StoreAzure))
		Expect(cfg.Store.Dir).To(BeEmpty())
		Expect(cfg.Store.Azure.ContainerName).To(Equal("www"))
		Expect(cfg.Store.Azure.ConnectionString).To(Equal("UseDevelopmentStorage=true"))
		Expect(cfg.Store.Azure.Prefix).To(Equal("v1/"))
	})

	It("treats the default config file as optional", func() {
		wd := Successful(os.Getwd())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)
		cfg := Successful(Load(""))
		Expect(cfg.Server.Port).To(Equal(8080))
	})

	It("insists on explicitly specified config files", func() {
		Expect(Load(filepath.Join(dir, "missing.toml"))).Error().
			To(MatchError(os.ErrNotExist))
	})

	It("lets a store directory override beat configured stores", func() {
		GinkgoT().Setenv(EnvStoreKind, StoreAzure)
		path := write(BaseConfigFile, `
[store]
kind = "azure"
dir = "public"
`)
		cfg := Successful(Load(path, WithStoreDir("dist")))
		Expect(cfg.Store.Kind).To(Equal(StoreDir))
		Expect(cfg.Store.Dir).To(Equal("dist"))

		Expect(Load(path)).Error().To(MatchError(ContainSubstring("connection_string required")))
	})

	DescribeTable("fails on invalid configuration",
		func(contents, expected string) {
			Expect(Load(write(BaseConfigFile, contents))).Error().To(MatchError(ContainSubstring(expected)))
		},
		Entry("malformed TOML", `log_level = `, "parse config"),
		Entry("bad log level", `log_level = "chatty"`, "invalid log_level"),
		Entry("bad port", "[server]\nport = 70000", "invalid port"),
		Entry("bad timeout", "[server]\nread_timeout = \"soon\"", "invalid read_timeout"),
		Entry("unknown store", "[store]\nkind = \"floppy\"", "invalid kind"),
		Entry("azure without connection", "[store]\nkind = \"azure\"", "connection_string required"),
	)

	It("merges overlays", func() {
		cfg := &Config{LogLevel: "info", Server: ServerConfig{Host: "localhost", Port: 8080}}
		cfg.Merge(&Config{Manifest: "r.json", Server: ServerConfig{Port: 9000}, Store: StoreConfig{Kind: StoreAzure}})
		Expect(cfg.Manifest).To(Equal("r.json"))
		Expect(cfg.LogLevel).To(Equal("info"))
		Expect(cfg.Server.Addr()).To(Equal("localhost:9000"))
		Expect(cfg.Store.Kind).To(Equal(StoreAzure))
	})

})
