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

package render

import (
	"sort"

	"github.com/kubelab/k8s-generator/pkg/model"
)

// VagrantTemplateID selects the Vagrant-like descriptor template for a
// cluster set, deterministically by (engine, presence of azure management).
// There are six descriptor variants: kind, minikube, kubeadm, aks,
// bastion, multi-kubeadm.
func VagrantTemplateID(specs []model.ClusterSpec) string {
	kubeadmCount := 0
	for _, s := range specs {
		if s.Type.IsKubeadm() {
			kubeadmCount++
		}
	}

	for _, s := range specs {
		switch {
		case s.Type.IsNone():
			if s.Management != nil && s.Management.Providers.Has(model.ProviderAzure) {
				return "vagrant/aks"
			}
			return "vagrant/bastion"
		case s.Type.IsKind():
			return "vagrant/kind"
		case s.Type.IsMinikube():
			return "vagrant/minikube"
		}
	}

	if kubeadmCount > 1 {
		return "vagrant/multi-kubeadm"
	}
	return "vagrant/kubeadm"
}

// BootstrapTemplateID selects the role bootstrap script template.
func BootstrapTemplateID(ct model.ClusterType, role model.NodeRole, hasAzure bool) string {
	switch role {
	case model.RoleManagement:
		if hasAzure {
			return "bootstrap/aks"
		}
		return "bootstrap/bastion"
	case model.RoleMaster:
		return "bootstrap/master"
	case model.RoleWorker:
		return "bootstrap/worker"
	case model.RoleCluster:
		if ct.IsKind() {
			return "bootstrap/kind"
		}
		return "bootstrap/minikube"
	default:
		return "bootstrap/bastion"
	}
}

// toolInstallScript maps each closed-set Tool to the name of the install
// script resource carrying it; every script is copied verbatim from a
// fixed set of embedded resources.
var toolInstallScript = map[model.Tool]string{
	model.ToolKubectl:      "install_kubectl.sh",
	model.ToolHelm:         "install_helm.sh",
	model.ToolAzureCLI:     "install_azure_cli.sh",
	model.ToolAWSCli:       "install_aws_cli.sh",
	model.ToolGcloud:       "install_gcloud.sh",
	model.ToolKubeBinaries: "install_kube_binaries.sh",
	model.ToolKind:         "install_kind.sh",
	model.ToolK3s:          "install_k3s.sh",
	model.ToolDocker:       "install_docker.sh",
	model.ToolContainerd:   "install_containerd.sh",
	model.ToolMinikube:     "install_minikube.sh",
}

// InstallScriptsFor returns the deterministic, ordered list of install
// script resource names for a tool set: install_base_packages.sh first,
// then install_kubectl.sh, then everything else in lexicographic tool-id
// order (matching scenario S1's expected bootstrap sequence).
func InstallScriptsFor(tools map[model.Tool]bool) []string {
	scripts := []string{"install_base_packages.sh"}
	if tools[model.ToolKubectl] {
		scripts = append(scripts, toolInstallScript[model.ToolKubectl])
	}

	var rest []string
	for t := range tools {
		if t == model.ToolKubectl {
			continue
		}
		if name, ok := toolInstallScript[t]; ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(scripts, rest...)
}

// ToolSet collects the union of a ClusterType's required tools and a
// Management record's requested tools into a membership set.
func ToolSet(ct model.ClusterType, mgmt *model.Management) map[model.Tool]bool {
	out := make(map[model.Tool]bool)
	for t := range ct.RequiredTools() {
		out[t] = true
	}
	if mgmt != nil {
		for t := range mgmt.Tools {
			out[t] = true
		}
	}
	return out
}
