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

// Command a2ui-mock serves a scripted A2UI agent for local development.
//
// Usage:
//
//	a2ui-mock --script demo.json
//	a2ui-mock --script demo.json --addr :9090 --delay 250ms
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/kadirpekel/a2ui/pkg/logger"
	"github.com/kadirpekel/a2ui/pkg/mockagent"
)

// CLI defines the command-line interface.
type CLI struct {
	Addr     string        `help:"Address to listen on." default:":8080"`
	Script   string        `short:"s" required:"" help:"Path to a JSON script of UI messages." type:"path"`
	Delay    time.Duration `help:"Pause between streamed frames." default:"0s"`
	LogLevel string        `help:"Log level (debug, info, warn, error)." default:"info"`
}

func (c *CLI) Run() error {
	script, err := mockagent.LoadScript(c.Script)
	if err != nil {
		return err
	}

	agent := mockagent.New(
		mockagent.WithScript(script),
		mockagent.WithDelay(c.Delay),
	)

	server := &http.Server{
		Addr:    c.Addr,
		Handler: agent.Handler(),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Mock agent ready on %s (%d scripted frames)\n", c.Addr, len(script))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("a2ui-mock"),
		kong.Description("a2ui-mock - scripted A2UI agent for local development"),
		kong.UsageOnError(),
	)

	logger.Init(logger.ParseLevel(cli.LogLevel), os.Stderr, "text")

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
