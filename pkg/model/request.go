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

package model

// ClusterEntryRequest is one raw multi-cluster entry as parsed from
// --clusters (CSV/JSON/YAML) or from an input-spec file, before defaults
// are applied.
type ClusterEntryRequest struct {
	Name     string
	CNI      *string
	FirstIP  *string
	Topology *string
}

// Request is the parsed intent from the CLI. It is owned by the pipeline
// driver and discarded once DefaultsApplier has produced the
// fully-specified ClusterSpec set.
type Request struct {
	Module ModuleInfo
	Engine string // "kind" | "minikube" | "kubeadm" | "none"

	Size           string // "small" | "medium" | "large", optional
	Topology       *string
	FirstIP        *string
	CNI            *string
	OutputDir      *string
	Tools          []string
	Clusters       []ClusterEntryRequest
	Bastion        bool
	CloudProviders []string

	DryRun bool
	Force  bool
}

// IsMultiCluster reports whether the request names at least one cluster
// entry explicitly. A single-cluster request has zero entries and relies on
// Engine/Size/Topology/FirstIP directly.
func (r Request) IsMultiCluster() bool {
	return len(r.Clusters) > 0
}
