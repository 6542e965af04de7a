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

import "net"

// VmConfig is one allocated VM in a cluster: its resolved name, role, IP and
// size. cpu_override/memory_mib_override are pointer-optionals: present
// means "use this instead of the profile default".
type VmConfig struct {
	Name              string
	Role              NodeRole
	IP                net.IP
	SizeProfile       SizeProfile
	CPUOverride       *int
	MemoryMiBOverride *int
}

// EffectiveCPU returns the override if set, else the size profile default.
func (v VmConfig) EffectiveCPU() int {
	if v.CPUOverride != nil {
		return *v.CPUOverride
	}
	return v.SizeProfile.VCPU()
}

// EffectiveMemoryMiB returns the override if set, else the size profile default.
func (v VmConfig) EffectiveMemoryMiB() int {
	if v.MemoryMiBOverride != nil {
		return *v.MemoryMiBOverride
	}
	return v.SizeProfile.MemoryMiB()
}
