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

package defaults

import (
	"testing"

	"github.com/kubelab/k8s-generator/pkg/model"
)

func mustModule(t *testing.T, num, typ string) model.ModuleInfo {
	t.Helper()
	m, err := model.NewModuleInfo(num, typ)
	if err != nil {
		t.Fatalf("NewModuleInfo(%q, %q): %v", num, typ, err)
	}
	return m
}

func TestApplyMinikubeSingleNode(t *testing.T) {
	req := model.Request{
		Module: mustModule(t, "m1", "pt"),
		Engine: "minikube",
	}

	specs, warnings, err := Apply(req)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}

	spec := specs[0]
	if spec.Name != "clu-m1-pt-minikube" {
		t.Errorf("cluster name = %q, want clu-m1-pt-minikube", spec.Name)
	}
	if spec.FirstIP == nil || *spec.FirstIP != "192.168.56.10" {
		t.Errorf("first_ip = %v, want 192.168.56.10", spec.FirstIP)
	}
	if spec.SizeProfile.ID() != "medium" {
		t.Errorf("size = %q, want medium", spec.SizeProfile.ID())
	}
	if spec.CNI != nil {
		t.Errorf("minikube cluster must not carry a CNI, got %v", *spec.CNI)
	}
}

func TestApplyKubeadmTopology(t *testing.T) {
	nodes := "1m,2w"
	req := model.Request{
		Module:   mustModule(t, "m7", "hw"),
		Engine:   "kubeadm",
		Topology: &nodes,
	}

	specs, _, err := Apply(req)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	spec := specs[0]
	if spec.Topology.Masters != 1 || spec.Topology.Workers != 2 {
		t.Errorf("topology = %+v, want 1m,2w", spec.Topology)
	}
	if spec.CNI == nil || string(*spec.CNI) != "calico" {
		t.Errorf("CNI = %v, want default calico", spec.CNI)
	}
	if spec.PodNetwork == nil || spec.PodNetwork.String() != "10.244.0.0/16" {
		t.Errorf("pod network = %v, want 10.244.0.0/16", spec.PodNetwork)
	}
	if spec.SvcNetwork == nil || spec.SvcNetwork.String() != "10.96.0.0/12" {
		t.Errorf("svc network = %v, want 10.96.0.0/12", spec.SvcNetwork)
	}
}

func TestApplySingleClusterCNIOverride(t *testing.T) {
	cni := "cilium"
	req := model.Request{
		Module: mustModule(t, "m2", "pt"),
		Engine: "kubeadm",
		CNI:    &cni,
	}

	specs, _, err := Apply(req)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if specs[0].CNI == nil || string(*specs[0].CNI) != "cilium" {
		t.Errorf("CNI = %v, want cilium", specs[0].CNI)
	}
}

func TestApplyKindCoercesNonZeroTopology(t *testing.T) {
	nodes := "1m,2w"
	req := model.Request{
		Module:   mustModule(t, "m3", "pt"),
		Engine:   "kind",
		Topology: &nodes,
	}

	specs, warnings, err := Apply(req)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !specs[0].Topology.IsZero() {
		t.Errorf("kind topology = %+v, want zero", specs[0].Topology)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 (coercion notice)", len(warnings))
	}
}

func TestApplyMultiClusterRequiresExplicitFirstIP(t *testing.T) {
	req := model.Request{
		Module: mustModule(t, "m5", "pt"),
		Engine: "kubeadm",
		Clusters: []model.ClusterEntryRequest{
			{Name: "a"},
			{Name: "b"},
		},
	}

	specs, _, err := Apply(req)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, s := range specs {
		if s.FirstIP != nil {
			t.Errorf("cluster %q got a default first_ip in multi-cluster mode: %v", s.Name, *s.FirstIP)
		}
	}
}

func TestApplyUnknownEngine(t *testing.T) {
	req := model.Request{
		Module: mustModule(t, "m1", "pt"),
		Engine: "docker-compose",
	}
	if _, _, err := Apply(req); err == nil {
		t.Fatal("Apply with an unknown engine should fail")
	}
}
