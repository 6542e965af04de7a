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

	"github.com/spf13/cobra"

	"github.com/kubelab/k8s-generator/pkg/regen"
)

var regenCheckCmd = &cobra.Command{
	Use:   "regen-check <dir>",
	Short: "Report drift against a previously generated directory without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegenCheck,
}

func init() {
	rootCmd.AddCommand(regenCheckCmd)
}

// runRegenCheck is the read-only counterpart to generate's drift check: it
// loads the manifest already on disk and recomputes drift against it, but
// never stages or writes anything.
func runRegenCheck(cmd *cobra.Command, args []string) error {
	targetDir := args[0]

	drifted, err := regen.CheckDrift(targetDir)
	if err != nil {
		return &exitError{kind: exitIO, err: fmt.Errorf("checking %s: %w", targetDir, err)}
	}

	if len(drifted) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no drift: %s matches its manifest\n", targetDir)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "drift detected in %d file(s):\n", len(drifted))
	for _, p := range drifted {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
	}
	return &exitError{kind: exitDrift, err: fmt.Errorf("%d file(s) drifted", len(drifted))}
}
