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

// Package clusterspec parses the --clusters CLI value and standalone
// input-spec files into model.ClusterEntryRequest values. Three input
// shapes are auto-detected: CSV, JSON, and YAML, with a leading "@"
// treating the remainder as a file path.
package clusterspec

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/kubelab/k8s-generator/pkg/model"
)

// entryDoc mirrors the accepted input-spec fields. It is unmarshalled
// with sigs.k8s.io/yaml, which accepts both YAML documents and
// plain JSON (JSON is a YAML subset), covering both structured formats with
// one decoder.
type entryDoc struct {
	Name  string `json:"name"`
	CNI   string `json:"cni,omitempty"`
	IP    string `json:"ip"`
	Nodes string `json:"nodes,omitempty"`
}

// Parse resolves raw --clusters input, following an "@" file reference if
// present, then auto-detecting CSV/JSON/YAML shape.
func Parse(raw string) ([]model.ClusterEntryRequest, error) {
	if strings.HasPrefix(raw, "@") {
		path := raw[1:]
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading cluster spec file %q: %w", path, err)
		}
		return parseBytes(string(data))
	}
	return parseBytes(raw)
}

func parseBytes(s string) ([]model.ClusterEntryRequest, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty cluster spec")
	}

	switch {
	case strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{"):
		return parseStructured(trimmed)
	case strings.Contains(trimmed, "\n"):
		// Multi-line input with no leading bracket is a YAML list of maps.
		return parseStructured(trimmed)
	default:
		return parseCSV(trimmed)
	}
}

func parseStructured(s string) ([]model.ClusterEntryRequest, error) {
	var docs []entryDoc
	if err := yaml.Unmarshal([]byte(s), &docs); err != nil {
		return nil, fmt.Errorf("parsing cluster spec as JSON/YAML: %w", err)
	}
	entries := make([]model.ClusterEntryRequest, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, docToEntry(d))
	}
	return entries, nil
}

func docToEntry(d entryDoc) model.ClusterEntryRequest {
	e := model.ClusterEntryRequest{Name: d.Name}
	if d.CNI != "" {
		cni := d.CNI
		e.CNI = &cni
	}
	if d.IP != "" {
		ip := d.IP
		e.FirstIP = &ip
	}
	if d.Nodes != "" {
		nodes := d.Nodes
		e.Topology = &nodes
	}
	return e
}

// parseCSV handles "name:cni:ip[:Xm,Yw]" entries separated by "," or ";".
// Because a topology field itself contains a comma ("2m,3w"), "," is only a
// safe entry separator when no entry carries a topology; otherwise the
// caller should use ";". We still tolerate the comma form by reattaching
// any split fragment that does not itself look like a new "name:cni:ip"
// entry (i.e. contains no colon) to the previous fragment.
func parseCSV(s string) ([]model.ClusterEntryRequest, error) {
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}

	raw := strings.Split(s, sep)
	var fragments []string
	for _, part := range raw {
		if sep == "," && len(fragments) > 0 && !strings.Contains(part, ":") {
			fragments[len(fragments)-1] = fragments[len(fragments)-1] + "," + part
			continue
		}
		fragments = append(fragments, part)
	}

	entries := make([]model.ClusterEntryRequest, 0, len(fragments))
	for _, item := range fragments {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fields := strings.Split(item, ":")
		if len(fields) < 3 {
			return nil, fmt.Errorf("cluster spec entry %q must have at least name:cni:ip", item)
		}
		e := model.ClusterEntryRequest{Name: fields[0]}
		if fields[1] != "" {
			cni := fields[1]
			e.CNI = &cni
		}
		ip := fields[2]
		e.FirstIP = &ip
		if len(fields) >= 4 {
			topo := strings.Join(fields[3:], ":")
			e.Topology = &topo
		}
		entries = append(entries, e)
	}
	return entries, nil
}
