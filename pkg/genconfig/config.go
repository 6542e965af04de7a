// Copyright 2025 the k8s-generator Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package genconfig carries the small set of generator-wide constants the
// pipeline needs at several layers (default size, default start IP, the
// manifest schema version) so no layer reaches for a process global.
package genconfig

import "runtime/debug"

const (
	// ManifestSchemaVersion is the `generated.version` field written into
	// every .k8s-generator.yaml manifest.
	ManifestSchemaVersion = 1

	// DefaultStartIP is used when a single-cluster request omits --first-ip.
	DefaultStartIP = "192.168.56.10"

	// DefaultSizeProfile is used when --size is omitted.
	DefaultSizeProfile = "medium"

	// DefaultCNI is used when a kubeadm cluster omits --cni.
	DefaultCNI = "calico"

	// DefaultK8sVersion is exported as K8S_VERSION by every generated
	// bootstrap script (no /etc/k8s-env file is written). This generator
	// pins one version per binary rather than take a --k8s-version flag, avoiding package downloads and remote
	// version resolution at generation time.
	DefaultK8sVersion = "v1.31.0"
)

// Config is built once per run and threaded explicitly through the
// pipeline; nothing reads it from a package-level global.
type Config struct {
	generatorName    string
	generatorVersion string
}

func (c *Config) GeneratorName() string {
	return c.generatorName
}

func (c *Config) GeneratorVersion() string {
	return c.generatorVersion
}

// New builds a Config, resolving the generator's own build version the same
// way a `go install`-distributed binary reports its module version.
func New() *Config {
	return &Config{
		generatorName:    "k8s-generator",
		generatorVersion: resolveVersion(),
	}
}

func resolveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
