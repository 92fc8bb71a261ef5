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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/kadirpekel/a2ui/pkg/client"
	"github.com/kadirpekel/a2ui/pkg/config"
	"github.com/kadirpekel/a2ui/pkg/processor"
)

// ChatCmd talks to an A2UI agent from the terminal. Each line of input
// opens a message stream; surfaces are dumped as text when the stream
// settles.
type ChatCmd struct {
	Agent  string `arg:"" optional:"" help:"Agent name from the config file."`
	URL    string `help:"Agent endpoint URL (bypasses the config file)."`
	Token  string `help:"Bearer token for the agent."`
	Prompt string `short:"p" help:"One-shot prompt; exit after the stream completes."`
}

func (c *ChatCmd) Run(cli *CLI) error {
	url, token, err := c.resolveEndpoint(cli)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	proc := processor.NewWithStandardCatalog()
	host := client.NewHost(client.HostConfig{URL: url, AuthToken: token, Enabled: true}, proc)
	defer host.Close()

	if c.Prompt != "" {
		return c.exchange(ctx, host, c.Prompt)
	}

	fmt.Printf("Connected to %s\n", url)
	fmt.Println("Type a message, /surfaces, /model <surface>, or /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/surfaces":
			c.printSurfaces(host.Processor())
		case strings.HasPrefix(line, "/model"):
			c.printModel(host.Processor(), strings.TrimSpace(strings.TrimPrefix(line, "/model")))
		default:
			if err := c.exchange(ctx, host, line); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// exchange runs one prompt through the agent and prints the resulting
// surface changes as they arrive.
func (c *ChatCmd) exchange(ctx context.Context, host *client.Host, prompt string) error {
	if err := host.Connect(ctx, prompt); err != nil {
		return err
	}

	for host.IsConnected() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		events := host.PollAll()
		for _, event := range events {
			printEvent(event)
		}
		if len(events) == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	if err := host.Err(); err != nil {
		return err
	}
	c.printSurfaces(host.Processor())
	return nil
}

func (c *ChatCmd) resolveEndpoint(cli *CLI) (url, token string, err error) {
	if c.URL != "" {
		return c.URL, c.Token, nil
	}
	if cli.Config == "" {
		return "", "", fmt.Errorf("either --url or --config is required")
	}

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return "", "", fmt.Errorf("failed to load config: %w", err)
	}
	agent, ok := cfg.GetAgent(c.Agent)
	if !ok {
		return "", "", fmt.Errorf("agent %q not found in config", c.Agent)
	}
	if !agent.Enabled {
		return "", "", fmt.Errorf("agent %q does not have a2ui enabled", c.Agent)
	}
	if c.Token != "" {
		return agent.URL, c.Token, nil
	}
	return agent.URL, agent.AuthToken, nil
}

func printEvent(event processor.Event) {
	switch e := event.(type) {
	case processor.SurfaceCreated:
		fmt.Printf("  + surface %s\n", e.SurfaceID)
	case processor.SurfaceUpdated:
		fmt.Printf("  ~ surface %s (%d components)\n", e.SurfaceID, len(e.UpdatedComponents))
	case processor.SurfaceDeleted:
		fmt.Printf("  - surface %s\n", e.SurfaceID)
	case processor.DataModelUpdated:
		fmt.Printf("  ~ data %s %v\n", e.SurfaceID, e.UpdatedPaths)
	}
}

func (c *ChatCmd) printSurfaces(proc *processor.Processor) {
	ids := proc.SurfaceIDs()
	if len(ids) == 0 {
		fmt.Println("No surfaces")
		return
	}
	sort.Strings(ids)
	for _, id := range ids {
		surface := proc.Surface(id)
		fmt.Printf("\nSurface: %s (root %s)\n", surface.ID, surface.Root)

		componentIDs := surface.ComponentIDs()
		sort.Strings(componentIDs)
		for _, cid := range componentIDs {
			def, _ := surface.Component(cid)
			fmt.Printf("  %-20s %s\n", cid, def.Component.Kind())
		}
	}
}

func (c *ChatCmd) printModel(proc *processor.Processor, surfaceID string) {
	if surfaceID == "" {
		ids := proc.SurfaceIDs()
		if len(ids) == 0 {
			fmt.Println("No surfaces")
			return
		}
		sort.Strings(ids)
		surfaceID = ids[0]
	}
	model := proc.DataModel(surfaceID)
	if model == nil {
		fmt.Printf("No data model for surface %q\n", surfaceID)
		return
	}
	data, err := json.MarshalIndent(model.Data(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
