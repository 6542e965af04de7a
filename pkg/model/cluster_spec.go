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

import "fmt"

// ClusterSpec describes one cluster (or, for ClusterNone, the lone
// management VM) before IP allocation and rendering. Fields that are only
// meaningful for some engines are optional pointers; DefaultsApplier fills
// them in, the semantic validator enforces which ones must or must not be
// set per engine.
type ClusterSpec struct {
	Name        string
	Type        ClusterType
	FirstIP     *string
	Topology    NodeTopology
	SizeProfile SizeProfile
	VMs         []VmConfig
	CNI         *CniType
	PodNetwork  *NetworkCIDR
	SvcNetwork  *NetworkCIDR

	// Management is only set when Type.IsNone(); it carries the
	// bastion/management-specific fields.
	Management *Management
}

// NewKubeadmClusterSpec is the narrow constructor for a kubeadm cluster.
// It enforces only structural invariants: VM role/topology agreement and
// unique VM names, exactly what the Structural layer is responsible for.
// Everything else (CNI requiredness, first_ip presence, etc.) is a
// Semantic/Policy concern and is deliberately left to the validators.
func NewKubeadmClusterSpec(name string, topology NodeTopology, size SizeProfile, vms []VmConfig) (ClusterSpec, error) {
	if err := checkTopologyMatchesVMs(topology, vms); err != nil {
		return ClusterSpec{}, err
	}
	if err := checkUniqueVMNames(vms); err != nil {
		return ClusterSpec{}, err
	}
	return ClusterSpec{
		Name:        name,
		Type:        ClusterKubeadm,
		Topology:    topology,
		SizeProfile: size,
		VMs:         vms,
	}, nil
}

// NewSingleNodeClusterSpec is the narrow constructor shared by Kind and
// Minikube: exactly one Cluster-role VM, no topology.
func NewSingleNodeClusterSpec(name string, ct ClusterType, size SizeProfile, vms []VmConfig) (ClusterSpec, error) {
	if !ct.IsKind() && !ct.IsMinikube() {
		return ClusterSpec{}, fmt.Errorf("NewSingleNodeClusterSpec only accepts Kind or Minikube, got %s", ct.ID())
	}
	if err := checkUniqueVMNames(vms); err != nil {
		return ClusterSpec{}, err
	}
	return ClusterSpec{
		Name:        name,
		Type:        ct,
		SizeProfile: size,
		VMs:         vms,
	}, nil
}

// NewManagementClusterSpec is the narrow constructor for the management-only
// (engine=none) case: one Management VM, no cluster topology.
func NewManagementClusterSpec(name string, size SizeProfile, vms []VmConfig, mgmt *Management) (ClusterSpec, error) {
	if err := checkUniqueVMNames(vms); err != nil {
		return ClusterSpec{}, err
	}
	return ClusterSpec{
		Name:        name,
		Type:        ClusterNone,
		SizeProfile: size,
		VMs:         vms,
		Management:  mgmt,
	}, nil
}

func checkTopologyMatchesVMs(topology NodeTopology, vms []VmConfig) error {
	if len(vms) == 0 {
		return nil
	}
	var masters, workers int
	for _, vm := range vms {
		switch vm.Role {
		case RoleMaster:
			masters++
		case RoleWorker:
			workers++
		default:
			return fmt.Errorf("kubeadm cluster VM %q has non-kubeadm role %q", vm.Name, vm.Role)
		}
	}
	if masters != topology.Masters || workers != topology.Workers {
		return fmt.Errorf("declared topology %dm,%dw does not match explicit VM roles (%dm,%dw)",
			topology.Masters, topology.Workers, masters, workers)
	}
	return nil
}

func checkUniqueVMNames(vms []VmConfig) error {
	seen := make(map[string]bool, len(vms))
	for _, vm := range vms {
		if seen[vm.Name] {
			return fmt.Errorf("duplicate VM name %q within cluster", vm.Name)
		}
		seen[vm.Name] = true
	}
	return nil
}
