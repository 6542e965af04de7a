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

// ManifestComponent is one tracked file in the .k8s-generator.yaml
// manifest. Hash is hex SHA-1 of the file's bytes; the manifest's own
// schema/spec hash in Manifest uses SHA-256.
type ManifestComponent struct {
	RelativePath  string `json:"file"`
	Regeneratable bool   `json:"regeneratable"`
	ContentHash   string `json:"hash"`
	TemplatePath  string `json:"template,omitempty"`
}

// Manifest is the generator's audit record, persisted as
// .k8s-generator.yaml and read back on the next run for drift detection.
type Manifest struct {
	Version          int                 `json:"version"`
	GeneratorVersion string              `json:"generator_version"`
	GenerationID     string              `json:"generation_id"`
	Timestamp        string              `json:"timestamp"`
	SpecHash         string              `json:"spec_hash"`
	Components       []ManifestComponent `json:"components"`
}
