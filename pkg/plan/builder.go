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

package plan

import (
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubelab/k8s-generator/pkg/genconfig"
	"github.com/kubelab/k8s-generator/pkg/model"
)

// Build converts a validated cluster set into a ScaffoldPlan. It is
// deterministic: the same specs slice (same order) always produces a
// byte-identical plan, the property the renderer and AtomicWriter rely on
// for idempotent output.
func Build(module model.ModuleInfo, specs []model.ClusterSpec) (model.ScaffoldPlan, error) {
	ordered := orderForAssembly(specs)

	var allVMs []model.VmConfig
	perVMEnv := make(map[string]map[string]string)
	providers := sets.New[model.CloudProvider]()

	for _, spec := range ordered {
		vms, err := expandCluster(spec)
		if err != nil {
			return model.ScaffoldPlan{}, fmt.Errorf("cluster %q: %w", spec.Name, err)
		}
		allVMs = append(allVMs, vms...)

		for _, vm := range vms {
			perVMEnv[vm.Name] = clusterEnvForVM(module, spec, vm)
		}

		if spec.Management != nil {
			providers = providers.Union(spec.Management.Providers)
		}
	}

	envVars := map[string]string{
		"NAMESPACE_DEFAULT": module.Namespace(),
		"K8S_VERSION":       genconfig.DefaultK8sVersion,
	}

	p := model.ScaffoldPlan{
		Module:    module,
		VMs:       allVMs,
		EnvVars:   envVars,
		PerVMEnv:  perVMEnv,
		Providers: providers,
	}
	if err := p.Validate(); err != nil {
		return model.ScaffoldPlan{}, err
	}
	return p, nil
}

// orderForAssembly puts any management (bastion) cluster first, then the
// remaining clusters in input order.
func orderForAssembly(specs []model.ClusterSpec) []model.ClusterSpec {
	ordered := make([]model.ClusterSpec, 0, len(specs))
	var rest []model.ClusterSpec
	for _, s := range specs {
		if s.Type.IsNone() {
			ordered = append(ordered, s)
		} else {
			rest = append(rest, s)
		}
	}
	return append(ordered, rest...)
}

func expandCluster(spec model.ClusterSpec) ([]model.VmConfig, error) {
	names := PredictVMNames(spec)
	roles := PredictVMRoles(spec)
	if len(names) != len(roles) {
		return nil, fmt.Errorf("internal error: name/role count mismatch (%d vs %d)", len(names), len(roles))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("cluster expands to zero VMs")
	}

	if spec.FirstIP == nil {
		return nil, fmt.Errorf("cluster has no resolved first_ip")
	}
	ips, err := AllocateSequential(*spec.FirstIP, len(names))
	if err != nil {
		return nil, err
	}

	vms := make([]model.VmConfig, len(names))
	for i := range names {
		vms[i] = model.VmConfig{
			Name:        names[i],
			Role:        roles[i],
			IP:          ips[i],
			SizeProfile: spec.SizeProfile,
		}
	}
	return vms, nil
}

func clusterEnvForVM(module model.ModuleInfo, spec model.ClusterSpec, vm model.VmConfig) map[string]string {
	env := map[string]string{
		"CLUSTER_NAME": spec.Name,
		"CLUSTER_TYPE": spec.Type.ID(),
		"NODE_ROLE":    string(vm.Role),
	}
	if spec.PodNetwork != nil {
		env["K8S_POD_CIDR"] = spec.PodNetwork.String()
	}
	if spec.SvcNetwork != nil {
		env["K8S_SVC_CIDR"] = spec.SvcNetwork.String()
	}
	if spec.CNI != nil {
		env["CNI_TYPE"] = string(*spec.CNI)
	}
	return env
}

// SortedProviderNames is a small helper used by the renderer to present a
// deterministic provider list.
func SortedProviderNames(providers sets.Set[model.CloudProvider]) []string {
	out := make([]string, 0, providers.Len())
	for p := range providers {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
