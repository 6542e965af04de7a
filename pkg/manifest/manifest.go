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

// Package manifest builds, reads and writes the .k8s-generator.yaml audit
// record: a hex SHA-256 hash of the canonicalised Request plus a
// lexicographically sorted, hex-SHA-1-hashed component list for every
// file the AtomicWriter installs.
package manifest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/kubelab/k8s-generator/pkg/genconfig"
	"github.com/kubelab/k8s-generator/pkg/model"
)

// FileName is the manifest's fixed name relative to the output directory.
const FileName = ".k8s-generator.yaml"

// document is the on-disk shape: a single top-level "generated" map, as
// the external interface requires.
type document struct {
	Generated model.Manifest `json:"generated"`
}

// SpecHash returns the hex SHA-256 of a canonical JSON encoding of the
// request. The request is first copied into canonicalRequestDoc, whose
// json tags and encoding/json's struct-field order fix the byte layout, so
// the same Request value always hashes identically.
func SpecHash(req model.Request) (string, error) {
	canon, err := json.Marshal(canonicalRequest(req))
	if err != nil {
		return "", fmt.Errorf("manifest: canonicalising request: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalRequest copies the parts of Request that determine generated
// output into a struct with stable field tags, independent of Request's
// own internal layout.
type canonicalEntry struct {
	Name     string  `json:"name"`
	CNI      *string `json:"cni,omitempty"`
	FirstIP  *string `json:"first_ip,omitempty"`
	Topology *string `json:"topology,omitempty"`
}

type canonicalRequestDoc struct {
	Module         string           `json:"module"`
	Engine         string           `json:"engine"`
	Size           string           `json:"size"`
	Topology       *string          `json:"topology,omitempty"`
	FirstIP        *string          `json:"first_ip,omitempty"`
	CNI            *string          `json:"cni,omitempty"`
	Tools          []string         `json:"tools,omitempty"`
	Clusters       []canonicalEntry `json:"clusters,omitempty"`
	Bastion        bool             `json:"bastion"`
	CloudProviders []string         `json:"cloud_providers,omitempty"`
}

func canonicalRequest(req model.Request) canonicalRequestDoc {
	entries := make([]canonicalEntry, len(req.Clusters))
	for i, c := range req.Clusters {
		entries[i] = canonicalEntry{Name: c.Name, CNI: c.CNI, FirstIP: c.FirstIP, Topology: c.Topology}
	}
	tools := append([]string(nil), req.Tools...)
	sort.Strings(tools)
	providers := append([]string(nil), req.CloudProviders...)
	sort.Strings(providers)

	return canonicalRequestDoc{
		Module:         req.Module.OutputDir(),
		Engine:         req.Engine,
		Size:           req.Size,
		Topology:       req.Topology,
		FirstIP:        req.FirstIP,
		CNI:            req.CNI,
		Tools:          tools,
		Clusters:       entries,
		Bastion:        req.Bastion,
		CloudProviders: providers,
	}
}

// Build computes a fresh Manifest for fs: one hashed component per file,
// sorted lexicographically by path, plus the supplied spec hash and
// generation identifiers.
func Build(fs *model.FileSet, generatorVersion, generationID, timestamp, specHash string) model.Manifest {
	entries := fs.Entries()
	components := make([]model.ManifestComponent, 0, len(entries))
	for _, e := range entries {
		sum := sha1.Sum(e.Content)
		components = append(components, model.ManifestComponent{
			RelativePath:  e.RelativePath,
			Regeneratable: e.Regeneratable,
			ContentHash:   hex.EncodeToString(sum[:]),
			TemplatePath:  e.TemplatePath,
		})
	}
	sort.Slice(components, func(i, j int) bool { return components[i].RelativePath < components[j].RelativePath })

	return model.Manifest{
		Version:          genconfig.ManifestSchemaVersion,
		GeneratorVersion: generatorVersion,
		GenerationID:     generationID,
		Timestamp:        timestamp,
		SpecHash:         specHash,
		Components:       components,
	}
}

// Write serialises m as YAML to path.
func Write(path string, m model.Manifest) error {
	data, err := yaml.Marshal(document{Generated: m})
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// Read parses the manifest at path. A missing file is reported as
// os.ErrNotExist via the wrapped error so callers can distinguish
// "no prior manifest" from a corrupt one.
func Read(path string) (model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Manifest{}, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Manifest{}, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return doc.Generated, nil
}

// HashFile returns the hex SHA-1 of path's current on-disk contents.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
