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

package render

// EnvVar is one exported shell variable, kept as an ordered pair rather
// than a map entry so the rendered block of export lines in each bootstrap
// script has deterministic line order. The templates only export these
// variables in the script's own environment; nothing writes /etc/k8s-env.
type EnvVar struct {
	Key   string
	Value string
}

// VagrantNode is one node entry in a Vagrant-like descriptor.
type VagrantNode struct {
	DefineName string
	Hostname   string
	IP         string
	MemoryMiB  int
	VCPUs      int
	VMName         string
	Role           string
	BootstrapScript string
}

// SyncedFolder is an optional host/guest synced-folder pair a Vagrant
// descriptor may declare.
type SyncedFolder struct {
	Host  string
	Guest string
}

// VagrantContext is the typed context every Vagrant-like descriptor
// template receives.
type VagrantContext struct {
	ModuleNum     string
	ModuleType    string
	Namespace     string
	Nodes         []VagrantNode
	Bastion       *VagrantNode
	SyncedFolders []SyncedFolder
}

// AzureEnvBlock is the optional cloud-aware env block a management
// bootstrap script writes to /etc/azure-env.
type AzureEnvBlock struct {
	Location      string
	ResourceGroup string
	AKSName       string
	ACRName       string
}

// BootstrapContext is the typed context every role bootstrap script
// template receives.
type BootstrapContext struct {
	ModuleNum      string
	ModuleType     string
	Namespace      string
	Role           string
	LockFilePath   string
	TimestampLine  string
	InstallCommands []string
	Env            []EnvVar
	AzureEnv       *AzureEnvBlock
	NextStepHints  []string
}
