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

// Package plan builds the ScaffoldPlan from a validated cluster set:
// VM name generation, sequential IP allocation, size resolution, and env
// derivation.
package plan

import (
	"fmt"

	"github.com/kubelab/k8s-generator/pkg/model"
)

// PredictVMNames returns the VM names a ClusterSpec will expand to, in the
// same order PlanBuilder assigns them. It is shared by the PolicyValidator
// (which needs to predict global name collisions before any IP is
// allocated) and PlanBuilder itself, so the two can never disagree.
func PredictVMNames(spec model.ClusterSpec) []string {
	switch {
	case spec.Type.IsKubeadm():
		names := make([]string, 0, spec.Topology.Total())
		if spec.Topology.Masters == 1 {
			names = append(names, spec.Name+"-master")
		} else {
			for i := 1; i <= spec.Topology.Masters; i++ {
				names = append(names, fmt.Sprintf("%s-master%d", spec.Name, i))
			}
		}
		for i := 1; i <= spec.Topology.Workers; i++ {
			names = append(names, fmt.Sprintf("%s-worker%d", spec.Name, i))
		}
		return names
	case spec.Type.IsKind():
		return []string{"kind"}
	case spec.Type.IsMinikube():
		return []string{"minikube"}
	case spec.Type.IsNone():
		name := "bastion"
		if spec.Management != nil && spec.Management.Name != "" {
			name = spec.Management.Name
		}
		return []string{name}
	default:
		return nil
	}
}

// PredictVMRoles returns the NodeRole for each name PredictVMNames would
// produce, in the same order.
func PredictVMRoles(spec model.ClusterSpec) []model.NodeRole {
	switch {
	case spec.Type.IsKubeadm():
		roles := make([]model.NodeRole, 0, spec.Topology.Total())
		for i := 0; i < spec.Topology.Masters; i++ {
			roles = append(roles, model.RoleMaster)
		}
		for i := 0; i < spec.Topology.Workers; i++ {
			roles = append(roles, model.RoleWorker)
		}
		return roles
	case spec.Type.IsKind(), spec.Type.IsMinikube():
		return []model.NodeRole{model.RoleCluster}
	case spec.Type.IsNone():
		return []model.NodeRole{model.RoleManagement}
	default:
		return nil
	}
}
