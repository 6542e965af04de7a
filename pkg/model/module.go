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
)

var (
	moduleNumPattern  = regexp.MustCompile(`^m\d+$`)
	moduleTypePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// ModuleInfo is the {num, type} pair that identifies a unit of coursework,
// e.g. m1/pt. It is immutable once constructed; NewModuleInfo enforces only
// the structural shape of its two fields.
type ModuleInfo struct {
	num  string
	typ  string
}

func NewModuleInfo(num, typ string) (ModuleInfo, error) {
	if !moduleNumPattern.MatchString(num) {
		return ModuleInfo{}, fmt.Errorf("module number %q does not match pattern m\\d+", num)
	}
	if !moduleTypePattern.MatchString(typ) {
		return ModuleInfo{}, fmt.Errorf("module type %q does not match pattern [a-z][a-z0-9-]*", typ)
	}
	return ModuleInfo{num: num, typ: typ}, nil
}

func (m ModuleInfo) Num() string { return m.num }
func (m ModuleInfo) Type() string { return m.typ }

// OutputDir is the directory the generator writes into: "{type}-{num}".
func (m ModuleInfo) OutputDir() string {
	return fmt.Sprintf("%s-%s", m.typ, m.num)
}

// Namespace is the Kubernetes namespace naming convention: "ns-{num}-{type}".
func (m ModuleInfo) Namespace() string {
	return fmt.Sprintf("ns-%s-%s", m.num, m.typ)
}

// ClusterName is the naming convention for a cluster of this module under a
// given engine id: "clu-{num}-{type}-{engine_id}".
func (m ModuleInfo) ClusterName(engineID string) string {
	return fmt.Sprintf("clu-%s-%s-%s", m.num, m.typ, engineID)
}

// ParseOutputDir recovers a ModuleInfo from an output directory name,
// exercising the round-trip property required of the naming convention.
func ParseOutputDir(dir string) (ModuleInfo, error) {
	re := regexp.MustCompile(`^([a-z][a-z0-9-]*)-(m\d+)$`)
	matches := re.FindStringSubmatch(dir)
	if matches == nil {
		return ModuleInfo{}, fmt.Errorf("output dir %q does not match the {type}-{num} convention", dir)
	}
	return NewModuleInfo(matches[2], matches[1])
}
