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

import "testing"

func mustCIDR(t *testing.T, s string) NetworkCIDR {
	t.Helper()
	c, err := ParseNetworkCIDR(s)
	if err != nil {
		t.Fatalf("ParseNetworkCIDR(%q): %v", s, err)
	}
	return c
}

func TestNetworkCIDROverlapIsSymmetric(t *testing.T) {
	a := mustCIDR(t, "10.244.0.0/16")
	b := mustCIDR(t, "10.245.0.0/16")

	if a.Overlaps(b) != b.Overlaps(a) {
		t.Errorf("overlap is not symmetric: a.Overlaps(b)=%v b.Overlaps(a)=%v", a.Overlaps(b), b.Overlaps(a))
	}
	if a.Overlaps(b) {
		t.Error("10.244.0.0/16 and 10.245.0.0/16 should not overlap")
	}
}

func TestNetworkCIDROverlapsItself(t *testing.T) {
	a := mustCIDR(t, "10.244.0.0/16")
	if !a.Overlaps(a) {
		t.Error("a CIDR must overlap itself")
	}
}

func TestNetworkCIDRSubsetOverlaps(t *testing.T) {
	outer := mustCIDR(t, "10.0.0.0/8")
	inner := mustCIDR(t, "10.244.0.0/16")

	if !outer.Overlaps(inner) || !inner.Overlaps(outer) {
		t.Error("a subnet and its superset must overlap in both directions")
	}
}

func TestNetworkCIDRInvalid(t *testing.T) {
	if _, err := ParseNetworkCIDR("not-a-cidr"); err == nil {
		t.Fatal("expected an error for an invalid CIDR")
	}
}
