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

package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kubelab/k8s-generator/pkg/manifest"
	"github.com/kubelab/k8s-generator/pkg/model"
	"github.com/kubelab/k8s-generator/pkg/regen"
)

func sampleFileSet() *model.FileSet {
	fs := model.NewFileSet()
	fs.Add(model.FileEntry{RelativePath: "Vagrantfile", Content: []byte("vagrant content"), Regeneratable: true})
	fs.Add(model.FileEntry{RelativePath: "scripts/bootstrap.sh", Content: []byte("#!/bin/bash\n"), Executable: true, Regeneratable: true})
	return fs
}

// fileSetWithStub mirrors sampleFileSet plus a Regeneratable: false entry,
// the way pkg/assemble marks bootstrap.env.local and the .local.sh hooks.
func fileSetWithStub() *model.FileSet {
	fs := sampleFileSet()
	fs.Add(model.FileEntry{RelativePath: "scripts/bootstrap.env.local", Content: []byte("# generated stub\n"), Regeneratable: false})
	return fs
}

func baseOpts() Options {
	return Options{
		Mode:             regen.ModeDefault,
		GeneratorVersion: "v0.0.0-test",
		GenerationID:     "gen-fixed",
		Timestamp:        "2026-07-31T00:00:00Z",
		SpecHash:         "deadbeef",
	}
}

func TestWriteFreshTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	result, err := Write(target, sampleFileSet(), baseOpts())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !result.Committed {
		t.Error("fresh write should commit")
	}

	data, err := os.ReadFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("ReadFile Vagrantfile: %v", err)
	}
	if string(data) != "vagrant content" {
		t.Errorf("Vagrantfile content = %q", data)
	}

	info, err := os.Stat(filepath.Join(target, "scripts/bootstrap.sh"))
	if err != nil {
		t.Fatalf("Stat bootstrap.sh: %v", err)
	}
	if info.Mode()&0o100 == 0 {
		t.Error("bootstrap.sh should carry the executable bit")
	}

	if _, err := os.Stat(filepath.Join(target, manifest.FileName)); err != nil {
		t.Errorf("manifest should be staged alongside the other files: %v", err)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	if _, err := Write(target, sampleFileSet(), baseOpts()); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	before, err := manifest.HashFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	if _, err := Write(target, sampleFileSet(), baseOpts()); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	after, err := manifest.HashFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	if before != after {
		t.Error("re-running Write with the same FileSet must not change file hashes")
	}
}

func TestWriteDriftWithoutForceIsRefused(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	if _, err := Write(target, sampleFileSet(), baseOpts()); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	// Simulate a user edit to a regeneratable file.
	if err := os.WriteFile(filepath.Join(target, "Vagrantfile"), []byte("user edited"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Write(target, sampleFileSet(), baseOpts())
	we, ok := err.(*WriteError)
	if !ok {
		t.Fatalf("err = %v (%T), want *WriteError", err, err)
	}
	if we.Kind != KindDrift {
		t.Errorf("Kind = %q, want %q", we.Kind, KindDrift)
	}

	data, err := os.ReadFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "user edited" {
		t.Error("a refused write must leave the target directory untouched")
	}
}

func TestWriteDriftWithForceConverges(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	if _, err := Write(target, sampleFileSet(), baseOpts()); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "Vagrantfile"), []byte("user edited"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// An out-of-band file the manifest never tracked must survive.
	extraPath := filepath.Join(target, "assets", "my.sh")
	if err := os.MkdirAll(filepath.Dir(extraPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(extraPath, []byte("custom"), 0o644); err != nil {
		t.Fatalf("WriteFile extra: %v", err)
	}

	opts := baseOpts()
	opts.Mode = regen.ModeForce
	if _, err := Write(target, sampleFileSet(), opts); err != nil {
		t.Fatalf("forced Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "vagrant content" {
		t.Errorf("Vagrantfile = %q, want regenerated content after --force", data)
	}
	if _, err := os.Stat(extraPath); err != nil {
		t.Errorf("untracked file should survive a forced regeneration: %v", err)
	}
}

func TestWriteForcePreservesNonRegeneratableStub(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	if _, err := Write(target, fileSetWithStub(), baseOpts()); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	stubPath := filepath.Join(target, "scripts/bootstrap.env.local")
	if err := os.WriteFile(stubPath, []byte("MY_OVERRIDE=1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile stub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "Vagrantfile"), []byte("user edited"), 0o644); err != nil {
		t.Fatalf("WriteFile Vagrantfile: %v", err)
	}

	opts := baseOpts()
	opts.Mode = regen.ModeForce
	if _, err := Write(target, fileSetWithStub(), opts); err != nil {
		t.Fatalf("forced Write: %v", err)
	}

	data, err := os.ReadFile(stubPath)
	if err != nil {
		t.Fatalf("ReadFile stub: %v", err)
	}
	if string(data) != "MY_OVERRIDE=1\n" {
		t.Errorf("bootstrap.env.local = %q, want the user's edit preserved across a forced regeneration", data)
	}

	vf, err := os.ReadFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("ReadFile Vagrantfile: %v", err)
	}
	if string(vf) != "vagrant content" {
		t.Errorf("Vagrantfile = %q, want regenerated content after --force", vf)
	}
}

func TestCommitRollsBackOnFailedSwap(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")

	if _, err := Write(target, sampleFileSet(), baseOpts()); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	original := renameDir
	calls := 0
	renameDir = func(oldpath, newpath string) error {
		calls++
		// Let "move target aside" (call 1) through, then fail the
		// "promote staging" rename (call 2) to simulate the filesystem
		// error the state machine's Commit -> Fail(CommitFailed) edge
		// models; call 3, the restore, must still go through via the
		// original implementation.
		if calls == 2 {
			return fmt.Errorf("injected rename failure")
		}
		return original(oldpath, newpath)
	}
	defer func() { renameDir = original }()

	opts := baseOpts()
	opts.Mode = regen.ModeForce
	_, err := Write(target, sampleFileSet(), opts)
	if err == nil {
		t.Fatal("Write should fail when the promotion rename is injected to fail")
	}
	we, ok := err.(*WriteError)
	if !ok || we.Kind != KindCommitFailed {
		t.Fatalf("err = %v, want a CommitFailed WriteError", err)
	}

	if _, statErr := os.Stat(target + ".old"); !os.IsNotExist(statErr) {
		t.Error("a rolled-back commit must not leave a target.old directory behind")
	}
	data, err := os.ReadFile(filepath.Join(target, "Vagrantfile"))
	if err != nil {
		t.Fatalf("ReadFile Vagrantfile after rollback: %v", err)
	}
	if string(data) != "vagrant content" {
		t.Errorf("Vagrantfile = %q, want the original tree restored after a failed promotion", data)
	}
}

func TestWriteDryRunTouchesNothing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")
	opts := baseOpts()
	opts.DryRun = true

	result, err := Write(target, sampleFileSet(), opts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if result.Committed {
		t.Error("dry-run must not commit")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("dry-run must not create the target directory")
	}
}
