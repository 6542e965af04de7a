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

package validate

import "testing"

import "github.com/kubelab/k8s-generator/pkg/model"

// These specs bypass the narrow constructors on purpose: Structural exists
// to catch ClusterSpec values assembled without going through them.

func TestStructuralNullSpec(t *testing.T) {
	result := Structural(nil)
	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}
}

func TestStructuralVMRoleCountsMismatchTopology(t *testing.T) {
	specs := []model.ClusterSpec{{
		Name:     "dev",
		Type:     model.ClusterKubeadm,
		Topology: model.NodeTopology{Masters: 1, Workers: 2},
		VMs: []model.VmConfig{
			{Name: "dev-master", Role: model.RoleMaster},
			{Name: "dev-worker-1", Role: model.RoleWorker},
		},
	}}

	result := Structural(specs)
	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1: %v", len(result.Errors), result.Errors)
	}
}

func TestStructuralDuplicateVMNameWithinCluster(t *testing.T) {
	specs := []model.ClusterSpec{{
		Name:     "dev",
		Type:     model.ClusterKubeadm,
		Topology: model.NodeTopology{Masters: 2, Workers: 0},
		VMs: []model.VmConfig{
			{Name: "dev-master", Role: model.RoleMaster},
			{Name: "dev-master", Role: model.RoleMaster},
		},
	}}

	result := Structural(specs)
	found := false
	for _, e := range result.Errors {
		if e.Level == model.LevelStructural {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one structural error, got %v", result.Errors)
	}
}

func TestStructuralAcceptsMatchingVMsAndTopology(t *testing.T) {
	specs := []model.ClusterSpec{{
		Name:     "dev",
		Type:     model.ClusterKubeadm,
		Topology: model.NodeTopology{Masters: 1, Workers: 1},
		VMs: []model.VmConfig{
			{Name: "dev-master", Role: model.RoleMaster},
			{Name: "dev-worker-1", Role: model.RoleWorker},
		},
	}}

	result := Structural(specs)
	if len(result.Errors) != 0 {
		t.Errorf("expected no structural errors, got %v", result.Errors)
	}
}

func TestStructuralIgnoresEmptyVMList(t *testing.T) {
	specs := []model.ClusterSpec{{
		Name:     "dev",
		Type:     model.ClusterKind,
		Topology: model.NodeTopology{},
	}}

	result := Structural(specs)
	if len(result.Errors) != 0 {
		t.Errorf("an unexpanded cluster spec (no explicit VMs yet) should never fail Structural, got %v", result.Errors)
	}
}
