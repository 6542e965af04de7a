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

// NodeRole is a closed sum over the roles a VM can be assigned. Assignment
// is a pure function of ClusterType: None -> Management, Kind/Minikube ->
// Cluster, Kubeadm -> Master/Worker.
type NodeRole string

const (
	RoleManagement NodeRole = "management"
	RoleCluster    NodeRole = "cluster"
	RoleMaster     NodeRole = "master"
	RoleWorker     NodeRole = "worker"
)

// AllowedRoles returns the set of roles a ClusterType may assign, used by
// the semantic validator's engine/role consistency check.
func AllowedRoles(ct ClusterType) map[NodeRole]bool {
	switch {
	case ct.IsNone():
		return map[NodeRole]bool{RoleManagement: true}
	case ct.IsKind(), ct.IsMinikube():
		return map[NodeRole]bool{RoleCluster: true}
	case ct.IsKubeadm():
		return map[NodeRole]bool{RoleMaster: true, RoleWorker: true}
	default:
		return nil
	}
}
