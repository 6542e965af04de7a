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

// Package regen reconciles a freshly-built FileSet against a target
// directory's prior manifest, deciding whether a write may proceed.
package regen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kubelab/k8s-generator/pkg/manifest"
	"github.com/kubelab/k8s-generator/pkg/model"
)

// Mode is the closed set of overwrite policies RegenerationManager
// recognises.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeForce   Mode = "force"
	ModeMerge   Mode = "merge"
)

// DriftError lists every regeneratable file whose on-disk hash no longer
// matches the prior manifest.
type DriftError struct {
	Paths []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("drift detected in %d file(s); re-run with --force to overwrite", len(e.Paths))
}

// NotImplementedError is returned for Mode values the generator does not
// yet support.
type NotImplementedError struct {
	Mode Mode
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("regen: mode %q is not implemented", e.Mode)
}

// Reconcile decides whether writing fs into targetDir is permitted, given
// the mode requested and whatever prior manifest (if any) lives there.
//
// No prior manifest (first generation into this directory) always
// succeeds. A prior manifest is checked file-by-file: every component it
// marked regeneratable is re-hashed from disk and compared against the
// stored hash. Any mismatch is drift. In ModeDefault, drift aborts with
// DriftError; in ModeForce it is accepted. ModeMerge is always rejected.
func Reconcile(mode Mode, targetDir string, fs *model.FileSet) error {
	if mode == ModeMerge {
		return &NotImplementedError{Mode: mode}
	}

	drifted, err := driftedComponents(targetDir)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}

	if len(drifted) == 0 || mode == ModeForce {
		return nil
	}
	return &DriftError{Paths: drifted}
}

// CheckDrift reports every regeneratable component the manifest at
// targetDir tracks whose on-disk hash no longer matches the stored hash,
// without deciding anything about whether a write may proceed. It backs
// the read-only regen-check command: the same hashing Reconcile does,
// exposed without requiring a freshly rendered FileSet or a write.
func CheckDrift(targetDir string) ([]string, error) {
	return driftedComponents(targetDir)
}

// driftedComponents loads the manifest at targetDir and re-hashes every
// component it marked regeneratable, returning the sorted list of paths
// whose on-disk content no longer matches the stored hash. A missing
// manifest is reported via the wrapped os.ErrNotExist so callers can tell
// "nothing generated here yet" apart from a genuine I/O error.
func driftedComponents(targetDir string) ([]string, error) {
	priorPath := filepath.Join(targetDir, manifest.FileName)
	prior, err := manifest.Read(priorPath)
	if err != nil {
		if isNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("regen: reading prior manifest: %w", err)
	}

	var drifted []string
	for _, c := range prior.Components {
		if !c.Regeneratable {
			continue
		}
		onDisk, err := manifest.HashFile(filepath.Join(targetDir, c.RelativePath))
		if err != nil {
			if isNotExist(err) {
				drifted = append(drifted, c.RelativePath)
				continue
			}
			return nil, fmt.Errorf("regen: hashing %s: %w", c.RelativePath, err)
		}
		if onDisk != c.ContentHash {
			drifted = append(drifted, c.RelativePath)
		}
	}
	sort.Strings(drifted)
	return drifted, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
