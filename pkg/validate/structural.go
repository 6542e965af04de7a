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

// Package validate implements three non-short-circuiting validator
// layers: Structural, Semantic, and Policy. Each layer is a pure function
// returning a model.ValidationResult; the driver (cmd/) only advances to
// the next layer once the prior one is empty.
package validate

import (
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/kubelab/k8s-generator/pkg/model"
)

// Structural cross-checks explicit per-cluster VM declarations against the
// cluster's own topology and name uniqueness. Most structural invariants
// are already enforced by the model's narrow constructors at construction
// time; this layer exists to catch ClusterSpec values assembled without
// going through them (e.g. from a hand-built fixture or a future bulk
// ingestion path) before they reach the Semantic layer.
func Structural(specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}

	if len(specs) == 0 {
		return result.WithError(model.NewValidationError(
			field.NewPath("cluster"), model.LevelStructural,
			"null spec", "provide at least one cluster in the request"))
	}

	for i, spec := range specs {
		path := field.NewPath("clusters").Index(i)

		if len(spec.VMs) > 0 {
			var masters, workers int
			for _, vm := range spec.VMs {
				switch vm.Role {
				case model.RoleMaster:
					masters++
				case model.RoleWorker:
					workers++
				}
			}
			if masters != spec.Topology.Masters || workers != spec.Topology.Workers {
				result = result.WithError(model.NewValidationError(
					path.Child("vms"), model.LevelStructural,
					"explicit VM role counts do not match the declared topology",
					"make the explicit VM list's master/worker counts match topology, or omit it and let the planner expand it"))
			}
		}

		seen := make(map[string]bool, len(spec.VMs))
		for j, vm := range spec.VMs {
			if seen[vm.Name] {
				result = result.WithError(model.NewValidationError(
					path.Child("vms").Index(j).Child("name"), model.LevelStructural,
					"duplicate VM name within cluster",
					"give each VM in the cluster a unique name"))
			}
			seen[vm.Name] = true
		}
	}

	return result
}
