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

	"k8s.io/apimachinery/pkg/util/sets"
)

// ScaffoldPlan is the validated, fully-resolved input to the renderer. Its
// vms slice is insertion-ordered and exclusively owned: produced once by
// PlanBuilder, read many times by the renderer.
type ScaffoldPlan struct {
	Module    ModuleInfo
	VMs       []VmConfig
	EnvVars   map[string]string
	PerVMEnv  map[string]map[string]string
	Providers sets.Set[CloudProvider]
}

// Validate enforces the ScaffoldPlan invariants: non-empty VMs, every VM
// has a resolved IP, no null map entries.
func (p ScaffoldPlan) Validate() error {
	if len(p.VMs) == 0 {
		return fmt.Errorf("scaffold plan has no VMs")
	}
	for _, vm := range p.VMs {
		if vm.IP == nil {
			return fmt.Errorf("VM %q has no resolved IP", vm.Name)
		}
	}
	for k, v := range p.EnvVars {
		if k == "" || v == "" {
			return fmt.Errorf("scaffold plan env_vars contains a blank key or value (key=%q)", k)
		}
	}
	for vmName, env := range p.PerVMEnv {
		for k, v := range env {
			if k == "" || v == "" {
				return fmt.Errorf("scaffold plan per_vm_env[%s] contains a blank key or value (key=%q)", vmName, k)
			}
		}
	}
	return nil
}
