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

package azstore

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("configuration", func() {

	env := &Env{
		ContainerName:    "TEST_AZSTORE_CONTAINER_NAME",
		ConnectionString: "TEST_AZSTORE_CONNECTION_STRING",
		Prefix:           "TEST_AZSTORE_PREFIX",
		Retries:          "TEST_AZSTORE_RETRIES",
	}

	It("applies defaults", func() {
		c := &Config{ConnectionString: "UseDevelopmentStorage=true"}
		Expect(c.Finalize(nil)).To(Succeed())
		Expect(c.ContainerName).To(Equal("site"))
		Expect(c.Prefix).To(BeEmpty())
		Expect(c.Retries).To(BeZero())
	})

	It("requires a connection string", func() {
		Expect((&Config{}).Finalize(nil)).To(MatchError(ContainSubstring("connection_string")))
	})

	It("rejects negative retries", func() {
		c := &Config{ConnectionString: "UseDevelopmentStorage=true", Retries: -2}
		Expect(c.Finalize(nil)).To(MatchError(ContainSubstring("retries")))
	})

	DescribeTable("normalizes prefixes",
		func(prefix, expected string) {
			c := &Config{ConnectionString: "UseDevelopmentStorage=true", Prefix: prefix}
			Expect(c.Finalize(nil)).To(Succeed())
			Expect(c.Prefix).To(Equal(expected))
		},
		Entry("none", "", ""),
		Entry("bare", "sites/www", "sites/www/"),
		Entry("rooted", "/sites/www/", "sites/www/"),
	)

	It("takes overrides from the environment", func() {
		GinkgoT().Setenv(env.ContainerName, "assets")
		GinkgoT().Setenv(env.ConnectionString, "UseDevelopmentStorage=true")
		GinkgoT().Setenv(env.Prefix, "v2")
		GinkgoT().Setenv(env.Retries, "3")
		c := &Config{ContainerName: "site"}
		Expect(c.Finalize(env)).To(Succeed())
		Expect(c.ContainerName).To(Equal("assets"))
		Expect(c.ConnectionString).To(Equal("UseDevelopmentStorage=true"))
		Expect(c.Prefix).To(Equal("v2/"))
		Expect(c.Retries).To(Equal(3))
	})

	It("ignores malformed retries in the environment", func() {
		GinkgoT().Setenv(env.Retries, "many")
		c := &Config{ConnectionString: "UseDevelopmentStorage=true", Retries: 1}
		Expect(c.Finalize(env)).To(Succeed())
		Expect(c.Retries).To(Equal(1))
	})

	It("merges overlays", func() {
		c := &Config{ContainerName: "site", ConnectionString: "a", Retries: 2}
		c.Merge(&Config{ConnectionString: "b", Prefix: "www"})
		Expect(c).To(Equal(&Config{ContainerName: "site", ConnectionString: "b", Prefix: "www", Retries: 2}))
	})

})
