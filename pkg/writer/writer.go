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

// Package writer installs a FileSet into a target directory. It always
// stages into a sibling directory on the same filesystem first, then
// commits with a single directory rename-swap: a brand new target is one
// rename, an existing one first has anything it should keep (files the
// new FileSet doesn't know about, plus any regeneratable:false entry)
// copied forward into the staging tree, then is swapped for the staged
// tree in one rename, so the commit stays an all-or-nothing operation.
package writer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kubelab/k8s-generator/pkg/manifest"
	"github.com/kubelab/k8s-generator/pkg/model"
	"github.com/kubelab/k8s-generator/pkg/regen"
)

// WriteErrorKind is the closed set of ways a write can fail.
type WriteErrorKind string

const (
	KindStagingFailed WriteErrorKind = "StagingFailed"
	KindDrift         WriteErrorKind = "Drift"
	KindCommitFailed  WriteErrorKind = "CommitFailed"
	KindCleanupFailed WriteErrorKind = "CleanupFailed"
)

// WriteError reports which phase of the write failed and why.
type WriteError struct {
	Kind WriteErrorKind
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// renameDir is os.Rename indirected behind a var so tests can inject a
// failure between the two renames of the commit swap and assert the
// rollback the spec's AtomicWriter contract requires.
var renameDir = os.Rename

// Result carries what the writer actually did, for the CLI's summary
// output and for --dry-run.
type Result struct {
	TargetDir string
	Manifest  model.Manifest
	Committed bool
}

// Options controls how an existing target directory is reconciled.
type Options struct {
	Mode             regen.Mode
	GeneratorVersion string
	GenerationID     string
	Timestamp        string
	SpecHash         string
	DryRun           bool
}

// Write installs fs into targetDir per opts. On DryRun it builds the
// manifest and returns it without touching the filesystem.
func Write(targetDir string, fs *model.FileSet, opts Options) (Result, error) {
	m := manifest.Build(fs, opts.GeneratorVersion, opts.GenerationID, opts.Timestamp, opts.SpecHash)

	if opts.DryRun {
		return Result{TargetDir: targetDir, Manifest: m, Committed: false}, nil
	}

	if _, err := os.Stat(targetDir); err == nil {
		if err := regen.Reconcile(opts.Mode, targetDir, fs); err != nil {
			if _, ok := err.(*regen.NotImplementedError); ok {
				return Result{}, &WriteError{Kind: KindCommitFailed, Err: err}
			}
			return Result{}, &WriteError{Kind: KindDrift, Err: err}
		}
	} else if !os.IsNotExist(err) {
		return Result{}, &WriteError{Kind: KindStagingFailed, Err: err}
	}

	stagingDir, err := stage(targetDir, fs, m)
	if err != nil {
		return Result{}, &WriteError{Kind: KindStagingFailed, Err: err}
	}

	if err := commit(targetDir, stagingDir, fs); err != nil {
		_ = os.RemoveAll(stagingDir)
		return Result{}, &WriteError{Kind: KindCommitFailed, Err: err}
	}

	return Result{TargetDir: targetDir, Manifest: m, Committed: true}, nil
}

func stage(targetDir string, fs *model.FileSet, m model.Manifest) (string, error) {
	parent := filepath.Dir(targetDir)
	stagingDir, err := os.MkdirTemp(parent, ".k8s-generator-staging-*")
	if err != nil {
		return "", fmt.Errorf("creating staging dir: %w", err)
	}

	for _, entry := range fs.Entries() {
		dest := filepath.Join(stagingDir, entry.RelativePath)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			os.RemoveAll(stagingDir)
			return "", fmt.Errorf("creating dir for %s: %w", entry.RelativePath, err)
		}
		mode := os.FileMode(0o644)
		if entry.Executable {
			mode = 0o755
		}
		if err := os.WriteFile(dest, entry.Content, mode); err != nil {
			os.RemoveAll(stagingDir)
			return "", fmt.Errorf("writing %s: %w", entry.RelativePath, err)
		}
	}

	manifestPath := filepath.Join(stagingDir, manifest.FileName)
	if err := manifest.Write(manifestPath, m); err != nil {
		os.RemoveAll(stagingDir)
		return "", err
	}

	return stagingDir, nil
}

// commit promotes the staged tree into targetDir. A fresh target (first
// generation) is a single directory rename: there is nothing to preserve.
// An existing target is reconciled with a whole-directory swap: anything
// on disk that the new FileSet doesn't own, or that it owns but marks
// Regeneratable: false, is copied forward into the staging tree first, so
// the swap itself stays a single rename (target -> target.old, staging ->
// target) and is fully reversible if the second rename fails.
func commit(targetDir, stagingDir string, fileSet *model.FileSet) error {
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		return renameDir(stagingDir, targetDir)
	}

	if err := preserveOnDiskFiles(targetDir, stagingDir, fileSet); err != nil {
		return err
	}

	oldDir := targetDir + ".old"
	if err := os.RemoveAll(oldDir); err != nil {
		return fmt.Errorf("clearing stale %s: %w", oldDir, err)
	}
	if err := renameDir(targetDir, oldDir); err != nil {
		return fmt.Errorf("moving %s aside: %w", targetDir, err)
	}
	if err := renameDir(stagingDir, targetDir); err != nil {
		if restoreErr := renameDir(oldDir, targetDir); restoreErr != nil {
			return fmt.Errorf("promoting staged tree failed (%v), and restoring %s failed: %w", err, oldDir, restoreErr)
		}
		return fmt.Errorf("promoting staged tree: %w", err)
	}

	if err := os.RemoveAll(oldDir); err != nil {
		return &WriteError{Kind: KindCleanupFailed, Err: fmt.Errorf("removing %s: %w", oldDir, err)}
	}
	return nil
}

// preserveOnDiskFiles walks the existing targetDir and copies into
// stagingDir any file the incoming FileSet does not regenerate: files
// outside the FileSet entirely (a user's own untracked files, required by
// the drift/--force scenario) and FileSet entries explicitly marked
// Regeneratable: false (the user-editable stub files, which stage already
// wrote with freshly generated placeholder content that must not win over
// a prior on-disk edit).
func preserveOnDiskFiles(targetDir, stagingDir string, fileSet *model.FileSet) error {
	nonRegeneratable := make(map[string]bool)
	tracked := make(map[string]bool)
	for _, e := range fileSet.Entries() {
		tracked[e.RelativePath] = true
		if !e.Regeneratable {
			nonRegeneratable[e.RelativePath] = true
		}
	}

	return filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(targetDir, path)
		if err != nil {
			return err
		}
		if rel == manifest.FileName {
			return nil // the manifest is always regenerated fresh
		}
		if tracked[rel] && !nonRegeneratable[rel] {
			return nil // a regeneratable entry: the freshly staged content wins
		}
		return copyForward(path, filepath.Join(stagingDir, rel))
	})
}

func copyForward(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("preserving %s: %w", src, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s for preservation: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, info.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
