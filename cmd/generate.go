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

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kubelab/k8s-generator/pkg/assemble"
	"github.com/kubelab/k8s-generator/pkg/clusterspec"
	"github.com/kubelab/k8s-generator/pkg/defaults"
	"github.com/kubelab/k8s-generator/pkg/genconfig"
	"github.com/kubelab/k8s-generator/pkg/manifest"
	"github.com/kubelab/k8s-generator/pkg/model"
	"github.com/kubelab/k8s-generator/pkg/plan"
	"github.com/kubelab/k8s-generator/pkg/regen"
	"github.com/kubelab/k8s-generator/pkg/validate"
	"github.com/kubelab/k8s-generator/pkg/writer"
)

// exitKind mirrors the closed set of process exit codes the CLI surface
// defines: 0 success, 1 validation error, 2 drift without force, 3 I/O
// failure, 4 template/internal error.
type exitKind int

const (
	exitValidation exitKind = 1
	exitDrift      exitKind = 2
	exitIO         exitKind = 3
	exitInternal   exitKind = 4
)

// exitError pairs a user-facing error with the process exit code it maps
// to, so Execute can set the code without each RunE needing os.Exit.
type exitError struct {
	kind exitKind
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ee *exitError
	if e, ok := err.(*exitError); ok {
		ee = e
	}
	if ee != nil {
		return int(ee.kind)
	}
	return 1
}

var genFlags struct {
	module   string
	typ      string
	size     string
	nodes    string
	cni      string
	firstIP  string
	out      string
	force    bool
	dryRun   bool
	azure    bool
	tools    string
	clusters string
	bastion  bool
}

var generateCmd = &cobra.Command{
	Use:   "generate <kind|minikube|kubeadm|none>",
	Short: "Generate a Vagrant-based learning environment",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genFlags.module, "module", "", "module number, e.g. m1 (required)")
	f.StringVar(&genFlags.typ, "type", "", "module type tag, e.g. pt (required)")
	f.StringVar(&genFlags.size, "size", "", "size profile: small|medium|large")
	f.StringVar(&genFlags.nodes, "nodes", "", "kubeadm topology, e.g. 1m,2w")
	f.StringVar(&genFlags.cni, "cni", "", "CNI for kubeadm clusters: calico|flannel|weave|cilium|antrea")
	f.StringVar(&genFlags.firstIP, "first-ip", "", "first IPv4 address to allocate from")
	f.StringVar(&genFlags.out, "out", "", "output directory (default: {type}-{num})")
	f.BoolVar(&genFlags.force, "force", false, "overwrite drifted regeneratable files")
	f.BoolVar(&genFlags.dryRun, "dry-run", false, "build the file set without writing it")
	f.BoolVar(&genFlags.azure, "azure", false, "enable the Azure cloud provider for a management cluster")
	f.StringVar(&genFlags.tools, "tools", "", "comma-separated tool list for a management cluster")
	f.StringVar(&genFlags.clusters, "clusters", "", "multi-cluster spec: CSV, JSON, YAML, or @file")
	f.BoolVar(&genFlags.bastion, "bastion", false, "aggregate kubeconfigs onto the management VM")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args[0])
	if err != nil {
		return &exitError{kind: exitValidation, err: err}
	}

	specs, warnings, err := defaults.Apply(req)
	if err != nil {
		return &exitError{kind: exitValidation, err: err}
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	result := validate.Structural(specs)
	if result.IsValid() {
		result = validate.Semantic(specs, req.IsMultiCluster())
	}
	if result.IsValid() {
		result = validate.Policy(specs)
	}
	if !result.IsValid() {
		return &exitError{kind: exitValidation, err: reportValidation(cmd, result)}
	}

	scaffold, err := plan.Build(req.Module, specs)
	if err != nil {
		return &exitError{kind: exitInternal, err: err}
	}

	fs, err := assemble.Build(req.Module, specs, scaffold)
	if err != nil {
		return &exitError{kind: exitInternal, err: err}
	}

	specHash, err := manifest.SpecHash(req)
	if err != nil {
		return &exitError{kind: exitInternal, err: err}
	}

	cfg := genconfig.New()
	mode := regen.ModeDefault
	if req.Force {
		mode = regen.ModeForce
	}

	out, err := writer.Write(outputDir(req), fs, writer.Options{
		Mode:             mode,
		GeneratorVersion: cfg.GeneratorVersion(),
		GenerationID:     uuid.NewString(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		SpecHash:         specHash,
		DryRun:           req.DryRun,
	})
	if err != nil {
		if de, ok := asDriftError(err); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", de.Error())
			return &exitError{kind: exitDrift, err: de}
		}
		return &exitError{kind: exitIO, err: err}
	}

	if req.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry-run: %d file(s) would be written to %s\n", len(fs.Entries()), outputDir(req))
		for _, e := range fs.Entries() {
			mode := "-"
			if e.Executable {
				mode = "x"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %8d  %s\n", mode, len(e.Content), e.RelativePath)
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d file(s) to %s\n", len(out.Manifest.Components), outputDir(req))
	}
	return nil
}

func buildRequest(engine string) (model.Request, error) {
	if genFlags.module == "" || genFlags.typ == "" {
		return model.Request{}, fmt.Errorf("--module and --type are required")
	}
	module, err := model.NewModuleInfo(genFlags.module, genFlags.typ)
	if err != nil {
		return model.Request{}, err
	}

	req := model.Request{
		Module:  module,
		Engine:  engine,
		Size:    genFlags.size,
		Bastion: genFlags.bastion,
		Force:   genFlags.force,
		DryRun:  genFlags.dryRun,
	}
	if genFlags.nodes != "" {
		req.Topology = &genFlags.nodes
	}
	if genFlags.firstIP != "" {
		req.FirstIP = &genFlags.firstIP
	}
	if genFlags.out != "" {
		req.OutputDir = &genFlags.out
	}
	if genFlags.tools != "" {
		req.Tools = splitCSV(genFlags.tools)
	}
	if genFlags.azure {
		req.CloudProviders = append(req.CloudProviders, "azure")
	}
	if genFlags.clusters != "" {
		entries, err := clusterspec.Parse(genFlags.clusters)
		if err != nil {
			return model.Request{}, err
		}
		if genFlags.cni != "" {
			for i := range entries {
				if entries[i].CNI == nil {
					cni := genFlags.cni
					entries[i].CNI = &cni
				}
			}
		}
		req.Clusters = entries
	} else if genFlags.cni != "" {
		req.CNI = &genFlags.cni
	}

	return req, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func outputDir(req model.Request) string {
	if req.OutputDir != nil {
		return *req.OutputDir
	}
	return req.Module.OutputDir()
}

func reportValidation(cmd *cobra.Command, result model.ValidationResult) error {
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", e.Error())
	}
	return fmt.Errorf("%d validation error(s)", len(result.Errors))
}

func asDriftError(err error) (*regen.DriftError, bool) {
	we, ok := err.(*writer.WriteError)
	if !ok {
		return nil, false
	}
	de, ok := we.Err.(*regen.DriftError)
	return de, ok
}
