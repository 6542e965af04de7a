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

import "k8s.io/apimachinery/pkg/util/sets"

// Management describes the bastion/management VM record for engine=none.
type Management struct {
	Name                 string
	Providers            sets.Set[CloudProvider]
	AggregateKubeconfigs bool
	Tools                sets.Set[Tool]
}

func NewManagement(name string, providers []CloudProvider, aggregateKubeconfigs bool, tools []Tool) *Management {
	return &Management{
		Name:                 name,
		Providers:            sets.New(providers...),
		AggregateKubeconfigs: aggregateKubeconfigs,
		Tools:                sets.New(tools...),
	}
}
