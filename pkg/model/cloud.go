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

package model

import (
	"fmt"
	"strings"
)

// CloudProvider is the closed set of cloud providers a Management record may
// claim credentials for. Values are normalised lowercase.
type CloudProvider string

const (
	ProviderAzure CloudProvider = "azure"
	ProviderAWS   CloudProvider = "aws"
	ProviderGCP   CloudProvider = "gcp"
)

var validProviders = map[CloudProvider]bool{
	ProviderAzure: true,
	ProviderAWS:   true,
	ProviderGCP:   true,
}

func ParseCloudProvider(s string) (CloudProvider, error) {
	p := CloudProvider(strings.ToLower(s))
	if !validProviders[p] {
		return "", fmt.Errorf("unknown cloud provider %q", s)
	}
	return p, nil
}

// Tool is the closed set of installable tools the renderer may select
// install scripts for.
type Tool string

const (
	ToolKubectl      Tool = "kubectl"
	ToolHelm         Tool = "helm"
	ToolAzureCLI     Tool = "azure_cli"
	ToolAWSCli       Tool = "aws_cli"
	ToolGcloud       Tool = "gcloud"
	ToolKubeBinaries Tool = "kube_binaries"
	ToolKind         Tool = "kind"
	ToolK3s          Tool = "k3s"
	ToolDocker       Tool = "docker"
	ToolContainerd   Tool = "containerd"
	ToolMinikube     Tool = "minikube"
)

var validTools = map[Tool]bool{
	ToolKubectl: true, ToolHelm: true, ToolAzureCLI: true, ToolAWSCli: true,
	ToolGcloud: true, ToolKubeBinaries: true, ToolKind: true, ToolK3s: true,
	ToolDocker: true, ToolContainerd: true, ToolMinikube: true,
}

// requiresCloudProvider is the set of tools that are meaningless without a
// matching CloudProvider on the owning Management record.
var requiresCloudProvider = map[Tool]bool{
	ToolAzureCLI: true,
	ToolAWSCli:   true,
	ToolGcloud:   true,
}

func ParseTool(s string) (Tool, error) {
	t := Tool(s)
	if !validTools[t] {
		return "", fmt.Errorf("unknown tool %q", s)
	}
	return t, nil
}

func (t Tool) RequiresCloudProvider() bool {
	return requiresCloudProvider[t]
}
