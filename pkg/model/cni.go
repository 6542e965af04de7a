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

import "fmt"

// CniType is a closed sum of the CNI plugins supported for kubeadm
// clusters. Required iff the engine is Kubeadm; forbidden otherwise.
type CniType string

const (
	CniCalico  CniType = "calico"
	CniFlannel CniType = "flannel"
	CniWeave   CniType = "weave"
	CniCilium  CniType = "cilium"
	CniAntrea  CniType = "antrea"
)

var validCNI = map[CniType]bool{
	CniCalico:  true,
	CniFlannel: true,
	CniWeave:   true,
	CniCilium:  true,
	CniAntrea:  true,
}

func ParseCniType(s string) (CniType, error) {
	c := CniType(s)
	if !validCNI[c] {
		return "", fmt.Errorf("unknown cni type %q", s)
	}
	return c, nil
}
