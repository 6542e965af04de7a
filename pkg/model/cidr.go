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

import (
	"fmt"
	"net"
)

// NetworkCIDR is a validated CIDR canonicalised to its prefix block (host
// bits zeroed), the way any of the pack's cloud providers normalise a
// requested VPC/pod-network block before comparing them for overlap.
type NetworkCIDR struct {
	ipNet *net.IPNet
	text  string
}

func ParseNetworkCIDR(s string) (NetworkCIDR, error) {
	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		return NetworkCIDR{}, fmt.Errorf("invalid CIDR %q: %w", s, err)
	}
	_ = ip
	return NetworkCIDR{ipNet: ipNet, text: ipNet.String()}, nil
}

func (c NetworkCIDR) String() string { return c.text }

func (c NetworkCIDR) IsIPv4() bool {
	return c.ipNet.IP.To4() != nil
}

// Contains reports whether ip lies within the block.
func (c NetworkCIDR) Contains(ip net.IP) bool {
	return c.ipNet.Contains(ip)
}

// Overlaps reports whether the two blocks share any address. Symmetric and
// reflexive by construction: A.Overlaps(B) == B.Overlaps(A), A.Overlaps(A).
func (c NetworkCIDR) Overlaps(other NetworkCIDR) bool {
	return c.ipNet.Contains(other.ipNet.IP) || other.ipNet.Contains(c.ipNet.IP)
}

// AddressCount returns the number of addresses the block covers.
func (c NetworkCIDR) AddressCount() uint64 {
	ones, bits := c.ipNet.Mask.Size()
	if bits-ones >= 64 {
		return 1<<63 - 1
	}
	return uint64(1) << uint(bits-ones)
}
