// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime/debug"
	"sort"

	"github.com/kadirpekel/a2ui/pkg/registry"
)

// CatalogCmd prints the standard component catalog.
type CatalogCmd struct{}

func (c *CatalogCmd) Run() error {
	entries := registry.StandardCatalog().Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Type < entries[j].Type })

	fmt.Printf("%-16s %-14s %-10s %s\n", "TYPE", "HOST WIDGET", "STATUS", "DESCRIPTION")
	for _, e := range entries {
		status := "ready"
		if !e.Implemented {
			status = "pending"
		}
		fmt.Printf("%-16s %-14s %-10s %s\n", e.Type, e.HostWidget, status, e.Description)
	}
	return nil
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("a2ui version %s\n", version)
	return nil
}
