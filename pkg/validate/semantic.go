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

import (
	"fmt"
	"net"
	"regexp"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/kubelab/k8s-generator/pkg/model"
)

var clusterNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// forbiddenForNone is the tool set barred from a None-engine
// (management/bastion) cluster's request.
var forbiddenForNone = map[model.Tool]bool{
	model.ToolMinikube:     true,
	model.ToolKind:         true,
	model.ToolK3s:          true,
	model.ToolKubeBinaries: true,
}

// providerForTool maps a cloud-aware tool to the CloudProvider it requires.
var providerForTool = map[model.Tool]model.CloudProvider{
	model.ToolAzureCLI: model.ProviderAzure,
	model.ToolAWSCli:   model.ProviderAWS,
	model.ToolGcloud:   model.ProviderGCP,
}

// Semantic enforces the per-cluster semantic rules. multiCluster tells
// the validator whether first_ip is required on every cluster (it is
// always required once more than one cluster is in play).
func Semantic(specs []model.ClusterSpec, multiCluster bool) model.ValidationResult {
	result := model.ValidationResult{}

	for i, spec := range specs {
		path := field.NewPath("clusters").Index(i)
		result = result.Merge(semanticOne(path, spec, multiCluster))
	}

	return result
}

func semanticOne(path *field.Path, spec model.ClusterSpec, multiCluster bool) model.ValidationResult {
	result := model.ValidationResult{}

	if !clusterNamePattern.MatchString(spec.Name) {
		result = result.WithError(model.NewValidationError(
			path.Child("name"), model.LevelSemantic,
			fmt.Sprintf("cluster name %q does not match [a-z][a-z0-9-]*", spec.Name),
			"use only lowercase letters, digits and hyphens, starting with a letter"))
	}

	allowed := model.AllowedRoles(spec.Type)
	for j, vm := range spec.VMs {
		if !allowed[vm.Role] {
			result = result.WithError(model.NewValidationError(
				path.Child("vms").Index(j).Child("role"), model.LevelSemantic,
				fmt.Sprintf("engine %q does not allow role %q", spec.Type.ID(), vm.Role),
				"remove the VM or switch to an engine that supports that role"))
		}
	}

	if spec.Type.IsKubeadm() {
		if spec.Topology.Masters < 1 {
			result = result.WithError(model.NewValidationError(
				path.Child("topology").Child("masters"), model.LevelSemantic,
				"kubeadm requires at least one master", "set --nodes to at least 1m,0w"))
		}
		if spec.CNI == nil {
			result = result.WithError(model.NewValidationError(
				path.Child("cni"), model.LevelSemantic,
				"kubeadm clusters require a CNI", "pass --cni or let the default (calico) apply"))
		}
		if spec.PodNetwork == nil {
			result = result.WithError(model.NewValidationError(
				path.Child("pod_network"), model.LevelSemantic,
				"kubeadm clusters require a pod network", "omit to use the 10.244.0.0/16 default"))
		}
		if spec.SvcNetwork == nil {
			result = result.WithError(model.NewValidationError(
				path.Child("svc_network"), model.LevelSemantic,
				"kubeadm clusters require a service network", "omit to use the 10.96.0.0/12 default"))
		}
	} else if spec.CNI != nil {
		result = result.WithError(model.NewValidationError(
			path.Child("cni"), model.LevelSemantic,
			fmt.Sprintf("CNI must not be set for engine %q", spec.Type.ID()),
			"remove --cni; it only applies to kubeadm"))
	}

	if multiCluster && spec.FirstIP == nil {
		result = result.WithError(model.NewValidationError(
			path.Child("first_ip"), model.LevelSemantic,
			"multi-cluster requests require first_ip on every cluster",
			"add an ip to this cluster's entry in --clusters"))
	}
	if spec.FirstIP != nil {
		if ip := net.ParseIP(*spec.FirstIP); ip == nil || ip.To4() == nil {
			result = result.WithError(model.NewValidationError(
				path.Child("first_ip"), model.LevelSemantic,
				fmt.Sprintf("first_ip %q is not a valid IPv4 address", *spec.FirstIP),
				"use a dotted-quad IPv4 address, e.g. 192.168.56.10"))
		}
	}

	if (spec.Type.IsKind() || spec.Type.IsMinikube()) && spec.SizeProfile.VCPU() < 2 {
		result = result.WithError(model.NewValidationError(
			path.Child("size_profile"), model.LevelSemantic,
			fmt.Sprintf("%s requires at least 2 vCPUs", spec.Type.ID()),
			"use --size medium or --size large"))
	}

	if spec.Management != nil {
		result = result.Merge(semanticManagement(path.Child("management"), spec))
	}

	return result
}

func semanticManagement(path *field.Path, spec model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}
	mgmt := spec.Management

	for tool := range mgmt.Tools {
		if forbiddenForNone[tool] {
			result = result.WithError(model.NewValidationError(
				path.Child("tools"), model.LevelSemantic,
				fmt.Sprintf("Tool '%s' not allowed for engine '%s'", tool, spec.Type.ID()),
				"remove the tool or switch to an engine that manages a local cluster"))
		}
		if required, needsProvider := providerForTool[tool]; needsProvider {
			if !mgmt.Providers.Has(required) {
				result = result.WithError(model.NewValidationError(
					path.Child("tools"), model.LevelSemantic,
					fmt.Sprintf("tool %q requires cloud provider %q", tool, required),
					fmt.Sprintf("enable cloud provider %q on the management cluster", required)))
			}
		}
	}

	return result
}
