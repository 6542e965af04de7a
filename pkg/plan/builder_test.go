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
	"testing"
)

func TestAllocateSequential(t *testing.T) {
	ips, err := AllocateSequential("192.168.56.10", 3)
	if err != nil {
		t.Fatalf("AllocateSequential: %v", err)
	}
	want := []string{"192.168.56.10", "192.168.56.11", "192.168.56.12"}
	for i, ip := range ips {
		if ip.String() != want[i] {
			t.Errorf("ips[%d] = %s, want %s", i, ip, want[i])
		}
	}
}

func TestAllocateSequentialExhausted(t *testing.T) {
	_, err := AllocateSequential("192.168.56.254", 3)
	if err == nil {
		t.Fatal("expected an IpExhausted error allocating past .255")
	}
	if _, ok := err.(*IPExhaustedError); !ok {
		t.Errorf("err = %T, want *IPExhaustedError", err)
	}
}

func TestAllocateSequentialBoundary(t *testing.T) {
	ips, err := AllocateSequential("192.168.56.253", 3)
	if err != nil {
		t.Fatalf("allocating exactly to .255 should succeed: %v", err)
	}
	if len(ips) != 3 || ips[2].String() != "192.168.56.255" {
		t.Errorf("ips = %v, want last address 192.168.56.255", ips)
	}
}

func TestAllocateSequentialInvalidStart(t *testing.T) {
	if _, err := AllocateSequential("not-an-ip", 2); err == nil {
		t.Fatal("expected an error for an invalid start IP")
	}
}
