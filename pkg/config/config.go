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

// Package config provides configuration types and loading for the A2UI
// host. A YAML file is the single entry point: agent endpoints, logging,
// and per-agent protocol switches.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete host configuration.
type Config struct {
	Version     string `yaml:"version,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Agent endpoints keyed by name.
	Agents map[string]AgentConfig `yaml:"agents,omitempty"`

	// DefaultAgent names the agent used when none is selected.
	DefaultAgent string `yaml:"default_agent,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Validate implements Config.Validate for Config.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	for name, agent := range c.Agents {
		if err := agent.Validate(); err != nil {
			return fmt.Errorf("agent '%s' validation failed: %w", name, err)
		}
	}

	if c.DefaultAgent != "" {
		if _, ok := c.Agents[c.DefaultAgent]; !ok {
			return fmt.Errorf("default_agent '%s' is not defined", c.DefaultAgent)
		}
	}

	return nil
}

// SetDefaults implements Config.SetDefaults for Config.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()

	if c.Agents == nil {
		c.Agents = make(map[string]AgentConfig)
	}
	for name := range c.Agents {
		agent := c.Agents[name]
		agent.SetDefaults()
		c.Agents[name] = agent
	}

	if c.DefaultAgent == "" && len(c.Agents) == 1 {
		for name := range c.Agents {
			c.DefaultAgent = name
		}
	}
}

// GetAgent returns an agent configuration by name. An empty name
// resolves to the default agent.
func (c *Config) GetAgent(name string) (*AgentConfig, bool) {
	if name == "" {
		name = c.DefaultAgent
	}
	agent, exists := c.Agents[name]
	return &agent, exists
}

// ListAgents returns the names of all configured agents.
func (c *Config) ListAgents() []string {
	agents := make([]string, 0, len(c.Agents))
	for name := range c.Agents {
		agents = append(agents, name)
	}
	return agents
}

// ============================================================================
// AGENT CONFIGURATION
// ============================================================================

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" as well as integer nanoseconds.
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %s", value.Value)
	}
	*d = Duration(n)
	return nil
}

// AgentConfig describes one agent endpoint. Enabled is an explicit
// per-agent protocol switch consulted by whoever opens a session.
type AgentConfig struct {
	URL       string   `yaml:"url"`
	AuthToken string   `yaml:"auth_token,omitempty"`
	Timeout   Duration `yaml:"timeout,omitempty"`
	Enabled   bool     `yaml:"enabled"`
}

// Validate implements Config.Validate for AgentConfig.
func (c *AgentConfig) Validate() error {
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("url is required when the agent is enabled")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// SetDefaults implements Config.SetDefaults for AgentConfig.
func (c *AgentConfig) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = Duration(60 * time.Second)
	}
}

// ============================================================================
// LOGGING CONFIGURATION
// ============================================================================

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`          // debug, info, warn, error
	Format string `yaml:"format"`         // text, json
	Output string `yaml:"output"`         // stdout, stderr, file
	File   string `yaml:"file,omitempty"` // log file path when output is file
}

// Validate implements Config.Validate for LoggingConfig.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
	validFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid log format: %s", c.Format)
	}
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output destination: %s", c.Output)
	}
	if c.Output == "file" && c.File == "" {
		return fmt.Errorf("file path is required when output is file")
	}
	return nil
}

// SetDefaults implements Config.SetDefaults for LoggingConfig.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// ============================================================================
// CONFIGURATION LOADING
// ============================================================================

// LoadConfig loads, defaults, and validates a configuration file.
// Environment variable references in the file are expanded first.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadConfigFromString(string(data))
}

// LoadConfigFromString loads configuration from a YAML string.
func LoadConfigFromString(yamlContent string) (*Config, error) {
	expanded := expandEnvVars(yamlContent)

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
