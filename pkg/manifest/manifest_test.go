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

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kubelab/k8s-generator/pkg/model"
)

func sampleRequest() model.Request {
	m, _ := model.NewModuleInfo("m1", "pt")
	return model.Request{Module: m, Engine: "kind"}
}

func TestSpecHashDeterministic(t *testing.T) {
	a, err := SpecHash(sampleRequest())
	if err != nil {
		t.Fatalf("SpecHash: %v", err)
	}
	b, err := SpecHash(sampleRequest())
	if err != nil {
		t.Fatalf("SpecHash: %v", err)
	}
	if a != b {
		t.Errorf("SpecHash is not deterministic: %q != %q", a, b)
	}
}

func TestSpecHashSensitiveToEngine(t *testing.T) {
	req := sampleRequest()
	a, _ := SpecHash(req)
	req.Engine = "kubeadm"
	b, _ := SpecHash(req)
	if a == b {
		t.Error("SpecHash should differ when the engine differs")
	}
}

func TestBuildSortsComponentsByPath(t *testing.T) {
	fs := model.NewFileSet()
	fs.Add(model.FileEntry{RelativePath: "scripts/z.sh", Content: []byte("z")})
	fs.Add(model.FileEntry{RelativePath: "Vagrantfile", Content: []byte("v")})
	fs.Add(model.FileEntry{RelativePath: "scripts/a.sh", Content: []byte("a")})

	m := Build(fs, "v0.0.0", "gen-1", "2026-07-31T00:00:00Z", "deadbeef")

	var paths []string
	for _, c := range m.Components {
		paths = append(paths, c.RelativePath)
	}
	want := []string{"Vagrantfile", "scripts/a.sh", "scripts/z.sh"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("component order mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	fs := model.NewFileSet()
	fs.Add(model.FileEntry{RelativePath: "Vagrantfile", Content: []byte("content"), Regeneratable: true})

	want := Build(fs, "v1.2.3", "gen-abc", "2026-07-31T00:00:00Z", "cafebabe")
	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMissingManifestIsNotExist(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), FileName))
	if !os.IsNotExist(err) {
		t.Errorf("Read of a missing manifest should report os.IsNotExist, got %v", err)
	}
}

func TestHashFileMatchesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	fs := model.NewFileSet()
	fs.Add(model.FileEntry{RelativePath: "file.txt", Content: []byte("hello")})
	want := Build(fs, "v", "g", "t", "s").Components[0].ContentHash

	if got != want {
		t.Errorf("HashFile = %q, want %q (matching Build's SHA-1)", got, want)
	}
}
