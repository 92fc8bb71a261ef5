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

package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/processor"
)

func TestHostConnectDisabled(t *testing.T) {
	host := NewHost(HostConfig{Enabled: false}, processor.NewWithStandardCatalog())
	err := host.Connect(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, host.IsConnected())
}

func TestHostPollAppliesMessages(t *testing.T) {
	agent := &sseAgent{frames: []string{
		`{"jsonrpc": "2.0", "id": 1, "result": {"kind": "task", "id": "task-1", "status": {"state": "working"}}}`,
		`{"jsonrpc": "2.0", "id": 1, "result": {"kind": "a2ui-event", "data": {"beginRendering": {"surfaceId": "main", "root": "root"}}}}`,
		`{"jsonrpc": "2.0", "id": 1, "result": {"kind": "a2ui-event", "data": {"dataModelUpdate": {"surfaceId": "main", "contents": [{"key": "name", "valueString": "Alice"}]}}}}`,
	}}
	server := httptest.NewServer(agent.handler())
	defer server.Close()

	host := NewHost(HostConfig{URL: server.URL, Enabled: true}, processor.NewWithStandardCatalog())
	require.NoError(t, host.Connect(context.Background(), "show me something"))
	defer host.Close()

	var events []processor.Event
	require.Eventually(t, func() bool {
		events = append(events, host.PollAll()...)
		return !host.IsConnected()
	}, 2*time.Second, time.Millisecond)

	require.Len(t, events, 2)
	assert.IsType(t, processor.SurfaceCreated{}, events[0])
	assert.IsType(t, processor.DataModelUpdated{}, events[1])

	name, ok := host.Processor().DataModel("main").GetString("/name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.NoError(t, host.Err())
}

func TestHostRecordsStreamError(t *testing.T) {
	agent := &sseAgent{frames: []string{
		`{"jsonrpc": "2.0", "id": 1, "error": {"code": -32000, "message": "boom"}}`,
	}}
	server := httptest.NewServer(agent.handler())
	defer server.Close()

	host := NewHost(HostConfig{URL: server.URL, Enabled: true}, processor.NewWithStandardCatalog())
	require.NoError(t, host.Connect(context.Background(), "hi"))
	defer host.Close()

	require.Eventually(t, func() bool {
		host.PollAll()
		return !host.IsConnected()
	}, 2*time.Second, time.Millisecond)

	assert.ErrorContains(t, host.Err(), "boom")
}

func TestHostSendAction(t *testing.T) {
	agent := &sseAgent{frames: []string{
		`{"jsonrpc": "2.0", "id": 1, "result": {"kind": "task", "id": "task-1", "status": {"state": "working"}}}`,
	}}
	server := httptest.NewServer(agent.handler())
	defer server.Close()

	proc := processor.NewWithStandardCatalog()
	proc.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})
	proc.DataModel("main").SetString("/user/name", "Bob")

	host := NewHost(HostConfig{URL: server.URL, Enabled: true}, proc)
	require.NoError(t, host.Connect(context.Background(), "hi"))
	defer host.Close()

	// Drain the stream so the task id is known before sending.
	require.Eventually(t, func() bool {
		host.PollAll()
		return !host.IsConnected()
	}, 2*time.Second, time.Millisecond)

	def := a2ui.ActionDefinition{
		Name: "greet",
		Context: []a2ui.ActionContextItem{
			{Key: "user", Value: a2ui.ActionValue{String: &a2ui.StringValue{Path: "/user/name"}}},
		},
	}
	require.NoError(t, host.SendAction(context.Background(), "main", "greet-btn", def, ""))

	require.Len(t, agent.requests, 2, "stream request plus action send")
	send := agent.requests[1]
	assert.Equal(t, "message/send", send.Method)

	event := send.Params.Message.Parts[0].Data["a2uiEvent"].(map[string]any)
	assert.Equal(t, "greet", event["actionName"])
	assert.Equal(t, map[string]any{"user": "Bob"}, event["resolvedContext"])
}

func TestHostSendActionNotConnected(t *testing.T) {
	host := NewHost(HostConfig{Enabled: true}, processor.NewWithStandardCatalog())
	err := host.SendAction(context.Background(), "main", "x", a2ui.ActionDefinition{}, "")
	assert.ErrorContains(t, err, "not connected")
}
