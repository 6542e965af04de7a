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

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/kubelab/k8s-generator/pkg/model"
	"github.com/kubelab/k8s-generator/pkg/plan"
)

const (
	maxTotalVMs  = 50
	vmWarnFloor  = 40
	maxVMsPerCluster = 20
)

// Policy enforces cross-entity rules: unique names, non-overlapping IP
// ranges and pod/svc CIDRs, and the VM count ceilings.
func Policy(specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}
	path := field.NewPath("clusters")

	result = result.Merge(checkUniqueClusterNames(path, specs))
	result = result.Merge(checkUniqueVMNames(path, specs))
	result = result.Merge(checkIPRangeOverlap(path, specs))
	result = result.Merge(checkNetworkOverlap(path, specs))
	result = result.Merge(checkVMCounts(path, specs))

	return result
}

func checkUniqueClusterNames(path *field.Path, specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			result = result.WithError(model.NewValidationError(
				path, model.LevelPolicy,
				fmt.Sprintf("Duplicate cluster name: %s", spec.Name),
				"give each cluster entry a unique name"))
			continue
		}
		seen[spec.Name] = true
	}
	return result
}

func checkUniqueVMNames(path *field.Path, specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}
	seen := make(map[string]string, 0)
	for _, spec := range specs {
		for _, name := range plan.PredictVMNames(spec) {
			if owner, ok := seen[name]; ok {
				result = result.WithError(model.NewValidationError(
					path, model.LevelPolicy,
					fmt.Sprintf("VM name %q would be generated by both %q and %q", name, owner, spec.Name),
					"rename one of the clusters so their generated VM names do not collide"))
				continue
			}
			seen[name] = spec.Name
		}
	}
	return result
}

func checkIPRangeOverlap(path *field.Path, specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}

	type ipRange struct {
		cluster  string
		startIP  net.IP
		lastByte int
	}
	var ranges []ipRange
	for _, spec := range specs {
		if spec.FirstIP == nil {
			continue
		}
		ip := net.ParseIP(*spec.FirstIP)
		if ip == nil || ip.To4() == nil {
			continue // reported by the semantic layer
		}
		total := len(plan.PredictVMNames(spec))
		ip4 := ip.To4()
		ranges = append(ranges, ipRange{
			cluster:  spec.Name,
			startIP:  ip4,
			lastByte: int(ip4[3]) + total - 1,
		})
	}

	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			a, b := ranges[i], ranges[j]
			if !sameNetworkPrefix(a.startIP, b.startIP) {
				continue
			}
			aStart, bStart := int(a.startIP[3]), int(b.startIP[3])
			if aStart <= b.lastByte && bStart <= a.lastByte {
				result = result.WithError(model.NewValidationError(
					path, model.LevelPolicy,
					fmt.Sprintf("IP range overlap between %q and %q", a.cluster, b.cluster),
					"choose non-overlapping --first-ip values or reduce node counts"))
			}
		}
	}
	return result
}

func sameNetworkPrefix(a, b net.IP) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

func checkNetworkOverlap(path *field.Path, specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}

	for i := 0; i < len(specs); i++ {
		for j := i + 1; j < len(specs); j++ {
			a, b := specs[i], specs[j]
			if a.PodNetwork != nil && b.PodNetwork != nil && a.PodNetwork.Overlaps(*b.PodNetwork) {
				result = result.WithError(model.NewValidationError(
					path, model.LevelPolicy,
					fmt.Sprintf("pod_network overlap between '%s' and '%s'", a.Name, b.Name),
					"use distinct pod networks per cluster, or rely on the per-index default offset"))
			}
			if a.SvcNetwork != nil && b.SvcNetwork != nil && a.SvcNetwork.Overlaps(*b.SvcNetwork) {
				result = result.WithError(model.NewValidationError(
					path, model.LevelPolicy,
					fmt.Sprintf("svc_network overlap between '%s' and '%s'", a.Name, b.Name),
					"use distinct service networks per cluster, or rely on the per-index default offset"))
			}
		}
	}
	return result
}

func checkVMCounts(path *field.Path, specs []model.ClusterSpec) model.ValidationResult {
	result := model.ValidationResult{}

	total := 0
	for _, spec := range specs {
		count := len(plan.PredictVMNames(spec))
		total += count
		if count > maxVMsPerCluster {
			result = result.WithError(model.NewValidationError(
				path, model.LevelPolicy,
				fmt.Sprintf("cluster %q has %d VMs, exceeding the per-cluster limit of %d", spec.Name, count, maxVMsPerCluster),
				"reduce the node counts for this cluster"))
		}
	}

	if total > maxTotalVMs {
		result = result.WithError(model.NewValidationError(
			path, model.LevelPolicy,
			fmt.Sprintf("total VM count %d exceeds the hard limit of %d", total, maxTotalVMs),
			"reduce the number of clusters or nodes per cluster"))
	} else if total >= vmWarnFloor {
		result = result.WithError(model.NewValidationError(
			path, model.LevelPolicy,
			fmt.Sprintf("total VM count %d is approaching the hard limit of %d", total, maxTotalVMs),
			"consider a smaller size profile or fewer nodes"))
	}

	return result
}
