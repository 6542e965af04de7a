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
	"regexp"
	"strconv"
)

var topologyPattern = regexp.MustCompile(`^(\d+)m,(\d+)w$`)

// NodeTopology is the {masters, workers} shape of a kubeadm cluster.
type NodeTopology struct {
	Masters int
	Workers int
}

// ParseNodeTopology parses the CLI shape "Xm,Yw".
func ParseNodeTopology(s string) (NodeTopology, error) {
	m := topologyPattern.FindStringSubmatch(s)
	if m == nil {
		return NodeTopology{}, fmt.Errorf("topology %q does not match the Xm,Yw pattern", s)
	}
	masters, err := strconv.Atoi(m[1])
	if err != nil {
		return NodeTopology{}, fmt.Errorf("invalid master count in %q: %w", s, err)
	}
	workers, err := strconv.Atoi(m[2])
	if err != nil {
		return NodeTopology{}, fmt.Errorf("invalid worker count in %q: %w", s, err)
	}
	if masters < 0 || workers < 0 {
		return NodeTopology{}, fmt.Errorf("topology %q must not have negative node counts", s)
	}
	return NodeTopology{Masters: masters, Workers: workers}, nil
}

func (t NodeTopology) Total() int { return t.Masters + t.Workers }

func (t NodeTopology) IsZero() bool { return t.Masters == 0 && t.Workers == 0 }
