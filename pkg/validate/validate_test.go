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
	"strings"
	"testing"

	"github.com/kubelab/k8s-generator/pkg/defaults"
	"github.com/kubelab/k8s-generator/pkg/model"
)

func specsFor(t *testing.T, req model.Request) []model.ClusterSpec {
	t.Helper()
	m, err := model.NewModuleInfo("m1", "pt")
	if err != nil {
		t.Fatalf("NewModuleInfo: %v", err)
	}
	req.Module = m
	specs, _, err := defaults.Apply(req)
	if err != nil {
		t.Fatalf("defaults.Apply: %v", err)
	}
	return specs
}

func containsMessage(result model.ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// TestPolicyDuplicateClusterName covers scenario S3: two explicit clusters
// sharing a name must yield exactly one Policy error.
func TestPolicyDuplicateClusterName(t *testing.T) {
	specs := specsFor(t, model.Request{
		Engine: "kubeadm",
		Clusters: []model.ClusterEntryRequest{
			{Name: "dev", FirstIP: strPtr("192.168.56.110")},
			{Name: "dev", FirstIP: strPtr("192.168.56.120")},
		},
	})

	result := Policy(specs)
	if !containsMessage(result, "Duplicate cluster name: dev") {
		t.Errorf("errors = %v, want a duplicate-name message", result.Errors)
	}
}

// TestPolicyPodNetworkOverlap covers scenario S4: two kubeadm clusters
// whose pod networks collide must be flagged.
func TestPolicyPodNetworkOverlap(t *testing.T) {
	overlap := "10.244.0.0/16"
	specs := specsFor(t, model.Request{
		Engine: "kubeadm",
		Clusters: []model.ClusterEntryRequest{
			{Name: "a", FirstIP: strPtr("192.168.56.10")},
			{Name: "b", FirstIP: strPtr("192.168.57.10")},
		},
	})
	// Force both clusters onto the same pod network, as if a caller
	// explicitly requested it rather than relying on the per-index offset.
	net, err := model.ParseNetworkCIDR(overlap)
	if err != nil {
		t.Fatalf("ParseNetworkCIDR: %v", err)
	}
	specs[0].PodNetwork = &net
	specs[1].PodNetwork = &net

	result := Policy(specs)
	if !containsMessage(result, "pod_network overlap between 'a' and 'b'") {
		t.Errorf("errors = %v, want a pod_network overlap message", result.Errors)
	}
}

// TestSemanticToolForbiddenForNone covers scenario S6: a management-only
// cluster requesting a local-cluster tool is rejected.
func TestSemanticToolForbiddenForNone(t *testing.T) {
	specs := specsFor(t, model.Request{
		Engine: "none",
		Tools:  []string{"minikube"},
	})

	result := Semantic(specs, false)
	if !containsMessage(result, "Tool 'minikube' not allowed for engine 'none'") {
		t.Errorf("errors = %v, want a forbidden-tool message", result.Errors)
	}
}

// TestErrorCompleteness ensures independent rule violations are all
// reported in a single pass rather than short-circuiting on the first.
func TestErrorCompleteness(t *testing.T) {
	specs := specsFor(t, model.Request{
		Engine: "none",
		Tools:  []string{"minikube", "kind"},
	})

	result := Semantic(specs, false)
	if len(result.Errors) != 2 {
		t.Fatalf("got %d errors, want 2 (one per forbidden tool): %v", len(result.Errors), result.Errors)
	}
}

func strPtr(s string) *string { return &s }
