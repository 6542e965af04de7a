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

// Package defaults implements DefaultsApplier: a pure, deterministic
// function from a partially-specified Request to a fully-specified set of
// ClusterSpecs, following a fixed rule order.
package defaults

import (
	"fmt"

	"github.com/kubelab/k8s-generator/pkg/genconfig"
	"github.com/kubelab/k8s-generator/pkg/model"
)

// clusterDraft is the intermediate, not-yet-constructed shape each rule
// mutates in order; it becomes a model.ClusterSpec once every field is
// resolved, at which point the narrow per-engine constructor enforces
// structural invariants.
type clusterDraft struct {
	name        string
	cni         *string
	firstIP     *string
	topologyRaw *string
}

// Apply runs the six defaulting rules in a fixed order (later rules see
// earlier defaults) and returns the resolved
// ClusterSpecs plus any non-fatal warnings (e.g. a coerced topology).
func Apply(req model.Request) ([]model.ClusterSpec, []string, error) {
	ct, ok := model.ParseClusterType(req.Engine)
	if !ok {
		return nil, nil, fmt.Errorf("unknown engine %q", req.Engine)
	}

	drafts := draftsFromRequest(req, ct)

	var warnings []string
	specs := make([]model.ClusterSpec, 0, len(drafts))
	for i, d := range drafts {
		spec, w, err := applyOne(req, ct, d, i, len(drafts) > 1)
		if err != nil {
			return nil, nil, fmt.Errorf("cluster %q: %w", d.name, err)
		}
		warnings = append(warnings, w...)
		specs = append(specs, spec)
	}
	return specs, warnings, nil
}

func draftsFromRequest(req model.Request, ct model.ClusterType) []clusterDraft {
	if !req.IsMultiCluster() {
		return []clusterDraft{{
			name:        req.Module.ClusterName(ct.ID()),
			cni:         req.CNI,
			firstIP:     req.FirstIP,
			topologyRaw: req.Topology,
		}}
	}

	drafts := make([]clusterDraft, 0, len(req.Clusters))
	for _, entry := range req.Clusters {
		name := entry.Name
		if name == "" {
			name = req.Module.ClusterName(ct.ID())
		}
		drafts = append(drafts, clusterDraft{
			name:        name,
			cni:         entry.CNI,
			firstIP:     entry.FirstIP,
			topologyRaw: entry.Topology,
		})
	}
	return drafts
}

func applyOne(req model.Request, ct model.ClusterType, d clusterDraft, index int, multi bool) (model.ClusterSpec, []string, error) {
	var warnings []string

	// Rule 1 & 2: topology.
	topology, topoWarn, err := resolveTopology(ct, d.topologyRaw)
	if err != nil {
		return model.ClusterSpec{}, nil, err
	}
	if topoWarn != "" {
		warnings = append(warnings, topoWarn)
	}

	// Rule 3: first_ip.
	var firstIP *string
	if d.firstIP != nil {
		firstIP = d.firstIP
	} else if !multi {
		ip := genconfig.DefaultStartIP
		firstIP = &ip
	}
	// multi-cluster with no first_ip stays nil; SemanticValidator flags it.

	// Rule 4: size profile.
	sizeStr := req.Size
	if sizeStr == "" {
		sizeStr = genconfig.DefaultSizeProfile
	}
	size, err := model.ParseSizeProfile(sizeStr)
	if err != nil {
		return model.ClusterSpec{}, nil, err
	}

	// Rule 5: CNI.
	var cni *model.CniType
	if ct.IsKubeadm() {
		cniStr := genconfig.DefaultCNI
		if d.cni != nil && *d.cni != "" {
			cniStr = *d.cni
		}
		parsed, err := model.ParseCniType(cniStr)
		if err != nil {
			return model.ClusterSpec{}, nil, err
		}
		cni = &parsed
	}

	// Rule 6: pod/svc networks, offset by cluster index for multi-cluster.
	var podNet, svcNet *model.NetworkCIDR
	if ct.IsKubeadm() {
		pod, svc, err := defaultPodSvcNetworks(index)
		if err != nil {
			return model.ClusterSpec{}, nil, err
		}
		podNet, svcNet = &pod, &svc
	}

	spec, err := buildClusterSpec(ct, d.name, topology, size)
	if err != nil {
		return model.ClusterSpec{}, nil, err
	}
	spec.FirstIP = firstIP
	spec.CNI = cni
	spec.PodNetwork = podNet
	spec.SvcNetwork = svcNet

	if ct.IsNone() {
		mgmt, err := buildManagement(req)
		if err != nil {
			return model.ClusterSpec{}, nil, err
		}
		spec.Management = mgmt
	}

	return spec, warnings, nil
}

// buildManagement resolves the Management record for engine=none requests:
// the VM name defaults to "bastion", providers/tools come straight from the
// CLI's --azure-style flags and --tools csv.
func buildManagement(req model.Request) (*model.Management, error) {
	name := "bastion"

	providers := make([]model.CloudProvider, 0, len(req.CloudProviders))
	for _, p := range req.CloudProviders {
		parsed, err := model.ParseCloudProvider(p)
		if err != nil {
			return nil, err
		}
		providers = append(providers, parsed)
	}

	tools := make([]model.Tool, 0, len(req.Tools))
	for _, t := range req.Tools {
		parsed, err := model.ParseTool(t)
		if err != nil {
			return nil, err
		}
		tools = append(tools, parsed)
	}

	return model.NewManagement(name, providers, req.Bastion, tools), nil
}

func resolveTopology(ct model.ClusterType, raw *string) (model.NodeTopology, string, error) {
	if ct.IsKubeadm() {
		if raw == nil {
			return model.NodeTopology{Masters: 1, Workers: 0}, "", nil
		}
		t, err := model.ParseNodeTopology(*raw)
		if err != nil {
			return model.NodeTopology{}, "", err
		}
		return t, "", nil
	}

	// Kind/Minikube/None: a non-zero topology is coerced to zero with a
	// non-fatal warning; validators never see a topology mismatch.
	if raw == nil {
		return model.NodeTopology{}, "", nil
	}
	t, err := model.ParseNodeTopology(*raw)
	if err != nil {
		return model.NodeTopology{}, "", err
	}
	if t.IsZero() {
		return t, "", nil
	}
	return model.NodeTopology{}, fmt.Sprintf(
		"engine %q does not support multi-node topology; ignoring %dm,%dw and using a single node", ct.ID(), t.Masters, t.Workers), nil
}

func defaultPodSvcNetworks(index int) (model.NetworkCIDR, model.NetworkCIDR, error) {
	offset := 2 * index
	pod, err := model.ParseNetworkCIDR(fmt.Sprintf("10.%d.0.0/16", 244+offset))
	if err != nil {
		return model.NetworkCIDR{}, model.NetworkCIDR{}, err
	}
	svc, err := model.ParseNetworkCIDR(fmt.Sprintf("10.%d.0.0/12", 96+offset))
	if err != nil {
		return model.NetworkCIDR{}, model.NetworkCIDR{}, err
	}
	return pod, svc, nil
}

func buildClusterSpec(ct model.ClusterType, name string, topology model.NodeTopology, size model.SizeProfile) (model.ClusterSpec, error) {
	switch {
	case ct.IsKubeadm():
		return model.NewKubeadmClusterSpec(name, topology, size, nil)
	case ct.IsKind(), ct.IsMinikube():
		return model.NewSingleNodeClusterSpec(name, ct, size, nil)
	case ct.IsNone():
		return model.NewManagementClusterSpec(name, size, nil, nil)
	default:
		return model.ClusterSpec{}, fmt.Errorf("unhandled cluster type %q", ct.ID())
	}
}
