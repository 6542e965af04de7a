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

import "k8s.io/apimachinery/pkg/util/sets"

// ClusterType is a closed sum encoded as a tagged struct rather than a bare
// string constant: every variant carries its display name, multi-node/role
// support, and required tools, and callers are expected to switch
// exhaustively on the Is* predicates the way a sealed interface would
// force a pattern match.
type ClusterType struct {
	tag                clusterTypeTag
	id                 string
	displayName        string
	supportsMultiNode  bool
	supportsRoles      bool
	requiredTools      sets.Set[Tool]
}

type clusterTypeTag int

const (
	clusterTypeTagKind clusterTypeTag = iota
	clusterTypeTagMinikube
	clusterTypeTagKubeadm
	clusterTypeTagNone
)

var (
	ClusterKind = ClusterType{
		tag:               clusterTypeTagKind,
		id:                "kind",
		displayName:       "kind",
		supportsMultiNode: false,
		supportsRoles:     false,
		requiredTools:     sets.New(ToolKubectl, ToolKind, ToolDocker),
	}
	ClusterMinikube = ClusterType{
		tag:               clusterTypeTagMinikube,
		id:                "minikube",
		displayName:       "minikube",
		supportsMultiNode: false,
		supportsRoles:     false,
		requiredTools:     sets.New(ToolKubectl, ToolMinikube, ToolDocker),
	}
	ClusterKubeadm = ClusterType{
		tag:               clusterTypeTagKubeadm,
		id:                "kubeadm",
		displayName:       "kubeadm",
		supportsMultiNode: true,
		supportsRoles:     true,
		requiredTools:     sets.New(ToolKubectl, ToolKubeBinaries, ToolContainerd),
	}
	ClusterNone = ClusterType{
		tag:               clusterTypeTagNone,
		id:                "none",
		displayName:       "management-only",
		supportsMultiNode: false,
		supportsRoles:     false,
		requiredTools:     sets.New(ToolKubectl),
	}
)

// ParseClusterType resolves the CLI engine selector to a ClusterType.
func ParseClusterType(engine string) (ClusterType, bool) {
	switch engine {
	case "kind":
		return ClusterKind, true
	case "minikube":
		return ClusterMinikube, true
	case "kubeadm":
		return ClusterKubeadm, true
	case "none":
		return ClusterNone, true
	default:
		return ClusterType{}, false
	}
}

func (c ClusterType) ID() string               { return c.id }
func (c ClusterType) DisplayName() string       { return c.displayName }
func (c ClusterType) SupportsMultiNode() bool   { return c.supportsMultiNode }
func (c ClusterType) SupportsRoles() bool       { return c.supportsRoles }
func (c ClusterType) RequiredTools() sets.Set[Tool] {
	return c.requiredTools.Clone()
}

func (c ClusterType) IsKubeadm() bool  { return c.tag == clusterTypeTagKubeadm }
func (c ClusterType) IsKind() bool     { return c.tag == clusterTypeTagKind }
func (c ClusterType) IsMinikube() bool { return c.tag == clusterTypeTagMinikube }
func (c ClusterType) IsNone() bool     { return c.tag == clusterTypeTagNone }

func (c ClusterType) Equal(other ClusterType) bool { return c.tag == other.tag }
