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

// Package assemble turns a validated ScaffoldPlan into the FileSet the
// AtomicWriter installs: the Vagrant-like descriptor, one bootstrap script
// per (cluster, role) group, the install/lib scripts it references, and
// the fixed set of user-facing stub files.
package assemble

import (
	"fmt"
	"sort"

	"github.com/kubelab/k8s-generator/pkg/model"
	"github.com/kubelab/k8s-generator/pkg/render"
)

// Build renders a FileSet from the validated specs and their plan. It is a
// pure function: the same (module, specs, scaffold) always yields the same
// FileSet contents and paths.
func Build(module model.ModuleInfo, specs []model.ClusterSpec, scaffold model.ScaffoldPlan) (*model.FileSet, error) {
	fs := model.NewFileSet()

	clusterByName := make(map[string]model.ClusterSpec, len(specs))
	for _, s := range specs {
		clusterByName[s.Name] = s
	}

	vagrantTemplate := render.VagrantTemplateID(specs)
	nodes, err := buildVagrantNodes(scaffold, clusterByName)
	if err != nil {
		return nil, err
	}
	vagrantText, err := render.Render(vagrantTemplate, render.VagrantContext{
		ModuleNum:  module.Num(),
		ModuleType: module.Type(),
		Namespace:  module.Namespace(),
		Nodes:      nodes,
	})
	if err != nil {
		return nil, err
	}
	fs.Add(model.FileEntry{RelativePath: "Vagrantfile", Content: []byte(vagrantText), Regeneratable: true, TemplatePath: vagrantTemplate})

	groups := bootstrapGroups(scaffold)
	installScripts := make(map[string]bool)
	for _, g := range groups {
		cluster := clusterByName[g.cluster]
		hasAzure := cluster.Management != nil && cluster.Management.Providers.Has(model.ProviderAzure)
		templateID := render.BootstrapTemplateID(cluster.Type, g.role, hasAzure)

		tools := render.ToolSet(cluster.Type, cluster.Management)
		scripts := render.InstallScriptsFor(tools)
		for _, s := range scripts {
			installScripts[s] = true
		}

		ctx := render.BootstrapContext{
			ModuleNum:       module.Num(),
			ModuleType:      module.Type(),
			Namespace:       module.Namespace(),
			Role:            string(g.role),
			LockFilePath:    fmt.Sprintf("/var/lib/k8s-generator/%s.lock", g.scriptStem),
			InstallCommands: scripts,
			Env:             envFor(scaffold, g.cluster, g.role),
		}
		if hasAzure {
			ctx.AzureEnv = azureEnvBlock(module, cluster)
		}

		text, err := render.Render(templateID, ctx)
		if err != nil {
			return nil, err
		}
		fs.Add(model.FileEntry{
			RelativePath:  "scripts/" + g.filename,
			Content:       []byte(text),
			Executable:    true,
			Regeneratable: true,
			TemplatePath:  templateID,
		})
	}

	for name := range installScripts {
		data, err := render.InstallScript(name)
		if err != nil {
			return nil, err
		}
		fs.Add(model.FileEntry{RelativePath: "scripts/" + name, Content: data, Executable: true, Regeneratable: true})
	}

	libData, err := render.LibScript()
	if err != nil {
		return nil, err
	}
	fs.Add(model.FileEntry{RelativePath: "scripts/lib.sh", Content: libData, Executable: true, Regeneratable: true})

	if err := addStubs(fs); err != nil {
		return nil, err
	}

	return fs, nil
}

func buildVagrantNodes(scaffold model.ScaffoldPlan, clusterByName map[string]model.ClusterSpec) ([]render.VagrantNode, error) {
	groups := bootstrapGroups(scaffold)
	scriptForVM := make(map[string]string, len(scaffold.VMs))
	for _, g := range groups {
		for _, name := range g.vmNames {
			scriptForVM[name] = g.filename
		}
	}

	nodes := make([]render.VagrantNode, 0, len(scaffold.VMs))
	for _, vm := range scaffold.VMs {
		script, ok := scriptForVM[vm.Name]
		if !ok {
			return nil, fmt.Errorf("internal error: no bootstrap script assigned to VM %q", vm.Name)
		}
		nodes = append(nodes, render.VagrantNode{
			DefineName:      vm.Name,
			Hostname:        vm.Name,
			IP:              vm.IP.String(),
			MemoryMiB:       vm.EffectiveMemoryMiB(),
			VCPUs:           vm.EffectiveCPU(),
			VMName:          vm.Name,
			Role:            string(vm.Role),
			BootstrapScript: script,
		})
	}
	return nodes, nil
}

// bootstrapGroup is one (cluster, role) pair that shares a single rendered
// bootstrap script; several VMs (e.g. worker1, worker2) can belong to it.
type bootstrapGroup struct {
	cluster    string
	role       model.NodeRole
	vmNames    []string
	scriptStem string
	filename   string
}

// bootstrapGroups partitions the plan's VMs into (cluster, role) groups and
// assigns each the filename convention: a single-cluster single-role plan
// gets "bootstrap.sh"; a single-cluster, multi-role plan gets
// "bootstrap-{role}.sh"; anything spanning more than one cluster gets
// "bootstrap-{cluster}-{role}.sh".
func bootstrapGroups(scaffold model.ScaffoldPlan) []bootstrapGroup {
	type key struct {
		cluster string
		role    model.NodeRole
	}
	order := make([]key, 0)
	byKey := make(map[key][]string)
	clusters := make(map[string]bool)
	roles := make(map[model.NodeRole]bool)

	for _, vm := range scaffold.VMs {
		env := scaffold.PerVMEnv[vm.Name]
		k := key{cluster: env["CLUSTER_NAME"], role: vm.Role}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], vm.Name)
		clusters[k.cluster] = true
		roles[k.role] = true
	}

	singleCluster := len(clusters) == 1
	singleRole := len(roles) == 1

	groups := make([]bootstrapGroup, 0, len(order))
	for _, k := range order {
		var stem, filename string
		switch {
		case singleCluster && singleRole:
			stem = "bootstrap"
			filename = "bootstrap.sh"
		case singleCluster:
			stem = "bootstrap-" + string(k.role)
			filename = stem + ".sh"
		default:
			stem = "bootstrap-" + k.cluster + "-" + string(k.role)
			filename = stem + ".sh"
		}
		groups = append(groups, bootstrapGroup{
			cluster:    k.cluster,
			role:       k.role,
			vmNames:    byKey[k],
			scriptStem: stem,
			filename:   filename,
		})
	}
	return groups
}

// envFor assembles the deterministic env-var sequence for one (cluster,
// role) group from the plan's global and per-VM env maps. All VMs in a
// group share identical values for every key here by construction.
func envFor(scaffold model.ScaffoldPlan, cluster string, role model.NodeRole) []render.EnvVar {
	var vmName string
	for name, env := range scaffold.PerVMEnv {
		if env["CLUSTER_NAME"] == cluster && model.NodeRole(env["NODE_ROLE"]) == role {
			vmName = name
			break
		}
	}
	per := scaffold.PerVMEnv[vmName]

	order := []string{"CLUSTER_NAME", "NAMESPACE_DEFAULT", "CLUSTER_TYPE", "K8S_VERSION", "K8S_POD_CIDR", "K8S_SVC_CIDR", "CNI_TYPE", "NODE_ROLE"}
	merged := make(map[string]string, len(order))
	for k, v := range scaffold.EnvVars {
		merged[k] = v
	}
	for k, v := range per {
		merged[k] = v
	}

	out := make([]render.EnvVar, 0, len(order))
	for _, k := range order {
		if v, ok := merged[k]; ok {
			out = append(out, render.EnvVar{Key: k, Value: v})
		}
	}
	return out
}

func azureEnvBlock(module model.ModuleInfo, cluster model.ClusterSpec) *render.AzureEnvBlock {
	base := module.ClusterName("aks")
	return &render.AzureEnvBlock{
		Location:      "eastus",
		ResourceGroup: "rg-" + base,
		AKSName:       base,
		ACRName:       "acr" + module.Num() + module.Type(),
	}
}

func addStubs(fs *model.FileSet) error {
	plain := map[string]string{
		"scripts/bootstrap.env.local":        "bootstrap.env.local",
		"scripts/bootstrap.pre.local.sh":     "bootstrap.pre.local.sh",
		"scripts/bootstrap.post.local.sh":    "bootstrap.post.local.sh",
		"scripts/bootstrap.pre.d/README.md":  "bootstrap.pre.d.README.md",
		"scripts/bootstrap.post.d/README.md": "bootstrap.post.d.README.md",
		".gitignore":                         "gitignore",
	}
	paths := make([]string, 0, len(plain))
	for p := range plain {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := render.Stub(plain[p])
		if err != nil {
			return err
		}
		executable := p == "scripts/bootstrap.pre.local.sh" || p == "scripts/bootstrap.post.local.sh"
		fs.Add(model.FileEntry{RelativePath: p, Content: data, Executable: executable, Regeneratable: !isLocalStub(p)})
	}

	readmes := map[string]string{
		"scripts/env/cluster/README.md":      "env.cluster.README.md",
		"scripts/env/role/README.md":         "env.role.README.md",
		"scripts/env/cluster-role/README.md": "env.cluster-role.README.md",
	}
	names := make([]string, 0, len(readmes))
	for p := range readmes {
		names = append(names, p)
	}
	sort.Strings(names)
	for _, p := range names {
		data, err := render.Stub(readmes[p])
		if err != nil {
			return err
		}
		fs.Add(model.FileEntry{RelativePath: p, Content: data, Regeneratable: true})
	}

	return nil
}

func isLocalStub(p string) bool {
	switch p {
	case "scripts/bootstrap.env.local", "scripts/bootstrap.pre.local.sh", "scripts/bootstrap.post.local.sh":
		return true
	default:
		return false
	}
}
