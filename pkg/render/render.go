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

// Package render implements deterministic (engine, role) -> template
// selection and a pure function from (template id, typed context) to
// rendered text. Every template is compiled once at package init from
// embedded assets; nothing is looked up on the filesystem at runtime.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed assets/vagrant/*.tmpl assets/bootstrap/*.tmpl
var templateFS embed.FS

//go:embed assets/install/*.sh assets/lib.sh
var scriptFS embed.FS

//go:embed assets/stubs/bootstrap.env.local assets/stubs/bootstrap.pre.local.sh assets/stubs/bootstrap.post.local.sh assets/stubs/bootstrap.pre.d.README.md assets/stubs/bootstrap.post.d.README.md assets/stubs/env.cluster.README.md assets/stubs/env.role.README.md assets/stubs/env.cluster-role.README.md assets/stubs/gitignore
var stubFS embed.FS

// TemplateError is returned when a referenced template is missing or a
// required context field is absent; the renderer never silently
// substitutes a default.
type TemplateError struct {
	TemplateID string
	Reason     string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %s", e.TemplateID, e.Reason)
}

var compiled = map[string]*template.Template{}

func init() {
	mustCompile("vagrant/kind", "assets/vagrant/kind.tmpl")
	mustCompile("vagrant/minikube", "assets/vagrant/minikube.tmpl")
	mustCompile("vagrant/kubeadm", "assets/vagrant/kubeadm.tmpl")
	mustCompile("vagrant/multi-kubeadm", "assets/vagrant/multi-kubeadm.tmpl")
	mustCompile("vagrant/aks", "assets/vagrant/aks.tmpl")
	mustCompile("vagrant/bastion", "assets/vagrant/bastion.tmpl")

	mustCompile("bootstrap/bastion", "assets/bootstrap/bastion.tmpl")
	mustCompile("bootstrap/master", "assets/bootstrap/master.tmpl")
	mustCompile("bootstrap/worker", "assets/bootstrap/worker.tmpl")
	mustCompile("bootstrap/minikube", "assets/bootstrap/minikube.tmpl")
	mustCompile("bootstrap/kind", "assets/bootstrap/kind.tmpl")
	mustCompile("bootstrap/aks", "assets/bootstrap/aks.tmpl")
}

func mustCompile(id, path string) {
	data, err := templateFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("render: embedded template %q missing: %v", path, err))
	}
	compiled[id] = template.Must(template.New(id).Parse(string(data)))
}

// Render executes the named template against ctx. It is a pure function:
// the same (id, ctx) always produces byte-identical output.
func Render(id string, ctx any) (string, error) {
	tmpl, ok := compiled[id]
	if !ok {
		return "", &TemplateError{TemplateID: id, Reason: "not registered"}
	}

	var buf bytes.Buffer
	if err := tmpl.Option("missingkey=error").Execute(&buf, ctx); err != nil {
		return "", &TemplateError{TemplateID: id, Reason: err.Error()}
	}
	return buf.String(), nil
}

// InstallScript returns the verbatim content of one install_*.sh resource.
func InstallScript(name string) ([]byte, error) {
	data, err := scriptFS.ReadFile("assets/install/" + name)
	if err != nil {
		return nil, &TemplateError{TemplateID: name, Reason: "install script not found"}
	}
	return data, nil
}

// LibScript returns the verbatim content of the shared scripts/lib.sh helper.
func LibScript() ([]byte, error) {
	data, err := scriptFS.ReadFile("assets/lib.sh")
	if err != nil {
		return nil, &TemplateError{TemplateID: "lib.sh", Reason: "not found"}
	}
	return data, nil
}

// Stub returns the verbatim content of one user-facing stub/placeholder
// asset (env override files, hook scripts, READMEs, .gitignore).
func Stub(name string) ([]byte, error) {
	data, err := stubFS.ReadFile("assets/stubs/" + name)
	if err != nil {
		return nil, &TemplateError{TemplateID: name, Reason: "stub asset not found"}
	}
	return data, nil
}
