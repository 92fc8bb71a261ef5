// Package a2ui is a Go host engine for the A2UI protocol: agent-driven
// user interfaces streamed over the A2A protocol as progressive JSON
// updates.
//
// An agent describes a UI as a flat adjacency list of components bound to
// a JSON data model; the host renders it with native widgets and returns
// user actions with their context already resolved. This module implements
// the host side end to end, from wire schema to protocol client, leaving
// only the actual drawing to the embedding toolkit.
//
// # Packages
//
//   - pkg/a2ui: wire schema for the five protocol messages and the
//     component catalog, with lenient two-phase decoding.
//   - pkg/datamodel: JSON-Pointer-addressed document with dirty-path
//     tracking for incremental redraw.
//   - pkg/registry: catalog of component types mapped to host widgets.
//   - pkg/processor: applies protocol messages to surface state, repairs
//     malformed agent JSON, and resolves data bindings.
//   - pkg/sse, pkg/httpclient: streaming and retrying HTTP plumbing.
//   - pkg/client: A2A JSON-RPC client, event stream, and Host facade.
//   - pkg/mockagent: scripted agent endpoint for development and tests.
//
// # Quick Start
//
// Run a scripted agent and talk to it:
//
//	go run ./cmd/a2ui-mock --script examples/dashboard.json
//	go run ./cmd/a2ui chat --url http://localhost:8080
//
// Or embed the host in a renderer:
//
//	proc := processor.NewWithStandardCatalog()
//	host := client.NewHost(client.HostConfig{URL: url, Enabled: true}, proc)
//	if err := host.Connect(ctx, "show my orders"); err != nil {
//		return err
//	}
//	for _, event := range host.PollAll() {
//		// redraw the affected surface
//	}
package a2ui
